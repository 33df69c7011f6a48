// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// scanner is the cursor every grammar rule works on. Rules consume a prefix
// of buf starting at pos and either return a value or record the first
// failure in err and return false. Only the first failure is kept.
type scanner struct {
	ctx context.Context
	uri string
	buf []byte
	pos int
	err exc.Exception
}

func newScanner(ctx context.Context, uri string, b []byte) *scanner {
	s := &scanner{ctx: ctx, uri: uri, buf: b}
	if len(b) >= len(utf8BOM) && string(b[:len(utf8BOM)]) == string(utf8BOM) {
		s.pos = len(utf8BOM)
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}

func isNameByte(c byte) bool {
	return c > ' ' && c < 0x7F
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Text lines also take Latin-1 letters because shipped metrics often carry
// a © in their Notice line.
func isTextByte(c byte) bool {
	return c == '\t' || (c >= ' ' && c < 0x7F) || c >= 0xA0
}

func atBoundary(b []byte, i int) bool {
	return i >= len(b) || isSpace(b[i]) || isLineEnd(b[i]) || b[i] == ';'
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.buf)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.buf[s.pos]
}

func (s *scanner) location(offset int) exc.Location {
	line := int32(1)
	col := int32(1)
	for x := 0; x < offset && x < len(s.buf); x = x + 1 {
		switch s.buf[x] {
		case '\n':
			line = line + 1
			col = 1
		case '\r':
			if x+1 < len(s.buf) && s.buf[x+1] == '\n' {
				continue
			}
			line = line + 1
			col = 1
		default:
			col = col + 1
		}
	}
	return exc.Location{URI: s.uri, Offset: int64(offset), Line: line, Column: col}
}

func (s *scanner) failAt(offset int, code string, message string) bool {
	if s.err == nil {
		s.err = exc.New(s.location(offset), code, message)
	}
	return false
}

func (s *scanner) failf(code string, format string, args ...any) bool {
	return s.failAt(s.pos, code, fmt.Sprintf(format, args...))
}

// token returns the run of bytes at the cursor up to the next separator. It
// is only used to quote offending input in messages.
func (s *scanner) token() string {
	end := s.pos
	for end < len(s.buf) && !atBoundary(s.buf, end) {
		end = end + 1
	}
	if end == s.pos && !s.eof() {
		end = end + 1
	}
	return string(s.buf[s.pos:end])
}

func (s *scanner) describe() string {
	if s.eof() {
		return "unexpected end of input"
	}
	if isLineEnd(s.peek()) {
		return "unexpected end of line"
	}
	return fmt.Sprintf("unexpected %q", s.token())
}

// invalid reports a value that is either missing (grammar) or present but
// malformed (lexical).
func (s *scanner) invalid(what string) bool {
	if s.eof() || isLineEnd(s.peek()) || s.peek() == ';' {
		return s.failf(exc.CodeGrammar, "%s (expecting %s)", s.describe(), what)
	}
	return s.failf(exc.CodeLexical, "invalid %s %q", what, s.token())
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.buf[s.pos]) {
		s.pos = s.pos + 1
	}
}

// skipBlank skips whitespace and any number of line terminators.
func (s *scanner) skipBlank() {
	for !s.eof() && (isSpace(s.buf[s.pos]) || isLineEnd(s.buf[s.pos])) {
		s.pos = s.pos + 1
	}
}

// space consumes one or more horizontal whitespace bytes.
func (s *scanner) space() bool {
	if s.eof() || !isSpace(s.peek()) {
		return s.failf(exc.CodeGrammar, "%s (expecting whitespace)", s.describe())
	}
	s.skipSpace()
	return true
}

// atLineEnd reports whether only horizontal whitespace separates the cursor
// from the end of the line or the end of input.
func (s *scanner) atLineEnd() bool {
	x := s.pos
	for x < len(s.buf) && isSpace(s.buf[x]) {
		x = x + 1
	}
	return x >= len(s.buf) || isLineEnd(s.buf[x])
}

// eol consumes optional horizontal whitespace followed by one or more line
// terminators. Blank lines collapse into the same eol.
func (s *scanner) eol() bool {
	s.skipSpace()
	if s.eof() || !isLineEnd(s.peek()) {
		return s.failf(exc.CodeGrammar, "%s (expecting end of line)", s.describe())
	}
	s.skipBlank()
	return true
}

// lineEnd is eol that also accepts the end of input. Callers that need more
// input report the truncation themselves, which gives a better message.
func (s *scanner) lineEnd() bool {
	s.skipSpace()
	if s.eof() {
		return true
	}
	return s.eol()
}

// peekWord returns the keyword at the cursor without consuming it. Keywords
// are name runs that also stop at ';'.
func (s *scanner) peekWord() string {
	end := s.pos
	for end < len(s.buf) && isNameByte(s.buf[end]) && s.buf[end] != ';' {
		end = end + 1
	}
	return string(s.buf[s.pos:end])
}

// keyword consumes kw if the word at the cursor is exactly kw. It never
// records a failure so it can drive ordered choice.
func (s *scanner) keyword(kw string) bool {
	if s.peekWord() != kw {
		return false
	}
	s.pos = s.pos + len(kw)
	return true
}

func (s *scanner) expectKeyword(kw string) bool {
	if !s.keyword(kw) {
		return s.failf(exc.CodeGrammar, "%s (expecting %s)", s.describe(), kw)
	}
	return true
}

func (s *scanner) name() (string, bool) {
	return s.nameRun(false)
}

// recordName reads a name inside a semicolon separated record, where ';'
// ends the name even without whitespace in front of it.
func (s *scanner) recordName() (string, bool) {
	return s.nameRun(true)
}

func (s *scanner) nameRun(record bool) (string, bool) {
	end := s.pos
	for end < len(s.buf) && isNameByte(s.buf[end]) && !(record && s.buf[end] == ';') {
		end = end + 1
	}
	if end == s.pos {
		return "", s.invalid("name")
	}
	v := string(s.buf[s.pos:end])
	s.pos = end
	return v, true
}

// text reads the rest of the line. The value may be empty and keeps inner
// and trailing whitespace.
func (s *scanner) text() (string, bool) {
	start := s.pos
	wide := false
	for !s.eof() && isTextByte(s.peek()) {
		if s.peek() >= 0x80 {
			wide = true
		}
		s.pos = s.pos + 1
	}
	if !s.eof() && !isLineEnd(s.peek()) {
		return "", s.failf(exc.CodeLexical, "invalid byte 0x%02x in text", s.peek())
	}
	raw := s.buf[start:s.pos]
	if !wide {
		return string(raw), true
	}
	var b strings.Builder
	for _, c := range raw {
		_, _ = b.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return b.String(), true
}

func skipDigits(b []byte, x int) int {
	for x < len(b) && isDigit(b[x]) {
		x = x + 1
	}
	return x
}

// scanNumber matches -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? at x and
// returns the end offset. The match must end at a token boundary.
func scanNumber(b []byte, x int) (int, bool) {
	if x < len(b) && b[x] == '-' {
		x = x + 1
	}
	switch {
	case x < len(b) && b[x] == '0':
		x = x + 1
	case x < len(b) && isDigit(b[x]):
		x = skipDigits(b, x)
	default:
		return x, false
	}
	if x < len(b) && b[x] == '.' {
		x = x + 1
		if x >= len(b) || !isDigit(b[x]) {
			return x, false
		}
		x = skipDigits(b, x)
	}
	if x < len(b) && (b[x] == 'e' || b[x] == 'E') {
		x = x + 1
		if x < len(b) && (b[x] == '+' || b[x] == '-') {
			x = x + 1
		}
		if x >= len(b) || !isDigit(b[x]) {
			return x, false
		}
		x = skipDigits(b, x)
	}
	return x, atBoundary(b, x)
}

func scanInteger(b []byte, x int, signed bool) (int, bool) {
	if signed && x < len(b) && b[x] == '-' {
		x = x + 1
	}
	if x >= len(b) || !isDigit(b[x]) {
		return x, false
	}
	x = skipDigits(b, x)
	return x, atBoundary(b, x)
}

func (s *scanner) number() (float64, bool) {
	end, ok := scanNumber(s.buf, s.pos)
	if !ok {
		return 0, s.invalid("number")
	}
	v, err := strconv.ParseFloat(string(s.buf[s.pos:end]), 64)
	if err != nil {
		return 0, s.failf(exc.CodeLexical, "invalid number %q: out of range", s.buf[s.pos:end])
	}
	s.pos = end
	return v, true
}

func (s *scanner) integer() (int, bool) {
	end, ok := scanInteger(s.buf, s.pos, true)
	if !ok {
		return 0, s.invalid("integer")
	}
	v, err := strconv.ParseInt(string(s.buf[s.pos:end]), 10, 32)
	if err != nil {
		return 0, s.failf(exc.CodeLexical, "invalid integer %q: out of range", s.buf[s.pos:end])
	}
	s.pos = end
	return int(v), true
}

func (s *scanner) unsigned() (uint32, bool) {
	end, ok := scanInteger(s.buf, s.pos, false)
	if !ok {
		return 0, s.invalid("unsigned integer")
	}
	v, err := strconv.ParseUint(string(s.buf[s.pos:end]), 10, 32)
	if err != nil {
		return 0, s.failf(exc.CodeLexical, "invalid unsigned integer %q: out of range", s.buf[s.pos:end])
	}
	s.pos = end
	return uint32(v), true
}

func (s *scanner) boolean() (bool, bool) {
	switch s.peekWord() {
	case "true":
		s.pos = s.pos + len("true")
		return true, true
	case "false":
		s.pos = s.pos + len("false")
		return false, true
	default:
		return false, s.invalid("boolean")
	}
}

// hexDigits reads <...> at the cursor and returns the digits between the
// angle brackets.
func (s *scanner) hexDigits(what string) ([]byte, bool) {
	if s.peek() != '<' {
		return nil, s.invalid(what)
	}
	start := s.pos + 1
	x := start
	for x < len(s.buf) && s.buf[x] != '>' {
		if !isHexDigit(s.buf[x]) {
			if isSpace(s.buf[x]) || isLineEnd(s.buf[x]) {
				return nil, s.failAt(x, exc.CodeLexical, fmt.Sprintf("unterminated %s", what))
			}
			return nil, s.failAt(x, exc.CodeLexical, fmt.Sprintf("invalid hex digit %q in %s", s.buf[x], what))
		}
		x = x + 1
	}
	if x >= len(s.buf) {
		return nil, s.failAt(x, exc.CodeLexical, fmt.Sprintf("unterminated %s", what))
	}
	if x == start {
		return nil, s.failf(exc.CodeLexical, "empty %s", what)
	}
	if !atBoundary(s.buf, x+1) {
		return nil, s.failAt(x+1, exc.CodeLexical, fmt.Sprintf("invalid %s %q", what, s.buf[s.pos:x+1]))
	}
	digits := s.buf[start:x]
	s.pos = x + 1
	return digits, true
}

func (s *scanner) hexInteger() (int, bool) {
	start := s.pos
	digits, ok := s.hexDigits("hex integer")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(string(digits), 16, 32)
	if err != nil {
		return 0, s.failAt(start, exc.CodeLexical, fmt.Sprintf("invalid hex integer <%s>: out of range", digits))
	}
	return int(v), true
}

// hexName decodes <...> two digits at a time, each pair being one Unicode
// scalar value. Odd digit counts are rejected rather than truncated.
func (s *scanner) hexName() (string, bool) {
	start := s.pos
	digits, ok := s.hexDigits("hex name")
	if !ok {
		return "", false
	}
	if len(digits)%2 != 0 {
		return "", s.failAt(start, exc.CodeLexical, fmt.Sprintf("odd number of hex digits in <%s>", digits))
	}
	var b strings.Builder
	for x := 0; x < len(digits); x = x + 2 {
		v, err := strconv.ParseUint(string(digits[x:x+2]), 16, 32)
		if err != nil {
			return "", s.failAt(start+1+x, exc.CodeLexical, fmt.Sprintf("invalid hex digits %q", digits[x:x+2]))
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return "", s.failAt(start+1+x, exc.CodeLexical, fmt.Sprintf("<%s> does not encode a valid character", digits[x:x+2]))
		}
		_, _ = b.WriteRune(r)
	}
	return b.String(), true
}

// version reads major[.minor] of the StartFontMetrics header.
func (s *scanner) version() (afm.Version, bool) {
	x, ok := scanInteger(s.buf, s.pos, false)
	if !ok && (x >= len(s.buf) || s.buf[x] != '.') {
		return afm.Version{}, s.invalid("version")
	}
	major, err := strconv.ParseUint(string(s.buf[s.pos:x]), 10, 32)
	if err != nil {
		return afm.Version{}, s.invalid("version")
	}
	v := afm.Version{Major: uint32(major)}
	if x < len(s.buf) && s.buf[x] == '.' {
		end, ok := scanInteger(s.buf, x+1, false)
		if !ok {
			return afm.Version{}, s.invalid("version")
		}
		minor, err := strconv.ParseUint(string(s.buf[x+1:end]), 10, 32)
		if err != nil {
			return afm.Version{}, s.invalid("version")
		}
		v.Minor = uint32(minor)
		x = end
	}
	s.pos = x
	return v, true
}

func (s *scanner) bbox() (afm.BBox, bool) {
	var v [4]float64
	for x := range v {
		if x > 0 && !s.space() {
			return afm.BBox{}, false
		}
		n, ok := s.number()
		if !ok {
			return afm.BBox{}, false
		}
		v[x] = n
	}
	return afm.BBox{LLx: v[0], LLy: v[1], URx: v[2], URy: v[3]}, true
}

func (s *scanner) pair() (afm.Vector, bool) {
	x, ok := s.number()
	if !ok || !s.space() {
		return afm.Vector{}, false
	}
	y, ok := s.number()
	if !ok {
		return afm.Vector{}, false
	}
	return afm.Vector{X: x, Y: y}, true
}
