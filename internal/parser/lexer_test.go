// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
)

func TestPrimitives(t *testing.T) {
	t.Parallel()

	number := func(s *scanner) (any, bool) { return s.number() }
	integer := func(s *scanner) (any, bool) { return s.integer() }
	unsigned := func(s *scanner) (any, bool) { return s.unsigned() }
	hexInteger := func(s *scanner) (any, bool) { return s.hexInteger() }
	hexName := func(s *scanner) (any, bool) { return s.hexName() }
	boolean := func(s *scanner) (any, bool) { return s.boolean() }
	name := func(s *scanner) (any, bool) { return s.name() }
	recordName := func(s *scanner) (any, bool) { return s.recordName() }
	text := func(s *scanner) (any, bool) { return s.text() }
	version := func(s *scanner) (any, bool) { return s.version() }
	bbox := func(s *scanner) (any, bool) { return s.bbox() }
	pair := func(s *scanner) (any, bool) { return s.pair() }

	testCases := []struct {
		name     string
		input    string
		rule     func(s *scanner) (any, bool)
		expected any
		code     string
	}{
		{name: "integer number", input: "600", rule: number, expected: 600.0},
		{name: "negative fraction", input: "-12.5 ", rule: number, expected: -12.5},
		{name: "exponent", input: "1.5e3;", rule: number, expected: 1500.0},
		{name: "leading zero", input: "007", rule: number, code: exc.CodeLexical},
		{name: "dangling point", input: "1.", rule: number, code: exc.CodeLexical},
		{name: "bad exponent", input: "1e+", rule: number, code: exc.CodeLexical},
		{name: "number out of range", input: "1e999", rule: number, code: exc.CodeLexical},
		{name: "letters as number", input: "abc", rule: number, code: exc.CodeLexical},
		{name: "missing number", input: "", rule: number, code: exc.CodeGrammar},
		{name: "missing number at eol", input: "\n", rule: number, code: exc.CodeGrammar},
		{name: "negative integer", input: "-1 ;", rule: integer, expected: -1},
		{name: "fraction as integer", input: "1.5", rule: integer, code: exc.CodeLexical},
		{name: "unsigned", input: "315\n", rule: unsigned, expected: uint32(315)},
		{name: "negative unsigned", input: "-1", rule: unsigned, code: exc.CodeLexical},
		{name: "unsigned overflow", input: "4294967296", rule: unsigned, code: exc.CodeLexical},
		{name: "hex integer", input: "<20>", rule: hexInteger, expected: 32},
		{name: "upper hex integer", input: "<FF> ;", rule: hexInteger, expected: 255},
		{name: "empty hex integer", input: "<>", rule: hexInteger, code: exc.CodeLexical},
		{name: "bad hex digit", input: "<2G>", rule: hexInteger, code: exc.CodeLexical},
		{name: "hex name", input: "<416263>", rule: hexName, expected: "Abc"},
		{name: "latin hex name", input: "<e9>", rule: hexName, expected: "é"},
		{name: "odd hex name", input: "<41626>", rule: hexName, code: exc.CodeLexical},
		{name: "hex name bad digit", input: "<4X>", rule: hexName, code: exc.CodeLexical},
		{name: "unterminated hex name", input: "<41", rule: hexName, code: exc.CodeLexical},
		{name: "hex name space inside", input: "<41 42>", rule: hexName, code: exc.CodeLexical},
		{name: "hex name without brackets", input: "41", rule: hexName, code: exc.CodeLexical},
		{name: "hex name trailing junk", input: "<41>x", rule: hexName, code: exc.CodeLexical},
		{name: "true", input: "true", rule: boolean, expected: true},
		{name: "false", input: "false\n", rule: boolean, expected: false},
		{name: "not a boolean", input: "yes", rule: boolean, code: exc.CodeLexical},
		{name: "boolean prefix", input: "truex", rule: boolean, code: exc.CodeLexical},
		{name: "name keeps semicolon", input: "a;b c", rule: name, expected: "a;b"},
		{name: "record name stops at semicolon", input: "space;", rule: recordName, expected: "space"},
		{name: "missing name", input: " ", rule: name, code: exc.CodeLexical},
		{name: "text", input: "Copyright (c) 1989  Adobe \n", rule: text, expected: "Copyright (c) 1989  Adobe "},
		{name: "latin-1 text", input: "Copyright \xa9 1989", rule: text, expected: "Copyright © 1989"},
		{name: "empty text", input: "\n", rule: text, expected: ""},
		{name: "control byte in text", input: "abc\x01", rule: text, code: exc.CodeLexical},
		{name: "version", input: "4.1", rule: version, expected: afm.Version{Major: 4, Minor: 1}},
		{name: "major version", input: "3\n", rule: version, expected: afm.Version{Major: 3}},
		{name: "bad version", input: "4.x", rule: version, code: exc.CodeLexical},
		{name: "bbox", input: "-23 -250 715 805", rule: bbox, expected: afm.BBox{LLx: -23, LLy: -250, URx: 715, URy: 805}},
		{name: "short bbox", input: "1 2 3", rule: bbox, code: exc.CodeGrammar},
		{name: "pair", input: "0\t1000", rule: pair, expected: afm.Vector{X: 0, Y: 1000}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			s := newScanner(context.Background(), "/test.afm", []byte(testCase.input))
			v, ok := testCase.rule(s)
			if testCase.code != "" {
				require.False(t, ok)
				require.NotNil(t, s.err)
				require.Equal(t, testCase.code, s.err.Code(), s.err.Error())
				return
			}
			require.True(t, ok, "%v", s.err)
			require.Nil(t, s.err)
			require.Equal(t, testCase.expected, v)
		})
	}
}

func TestKeywordBoundary(t *testing.T) {
	t.Parallel()

	s := newScanner(context.Background(), "", []byte("KPX A V -40"))
	require.False(t, s.keyword("KP"))
	require.Equal(t, 0, s.pos)
	require.True(t, s.keyword("KPX"))
	require.Equal(t, 3, s.pos)
	require.Nil(t, s.err)
}

func TestLineEnds(t *testing.T) {
	t.Parallel()

	s := newScanner(context.Background(), "", []byte("a  \r\n\r\n \n\tb"))
	s.pos = 1
	require.True(t, s.eol())
	require.Equal(t, byte('b'), s.peek())

	s = newScanner(context.Background(), "", []byte("a b"))
	s.pos = 1
	require.False(t, s.eol())
	require.Equal(t, exc.CodeGrammar, s.err.Code())

	s = newScanner(context.Background(), "", []byte("a "))
	s.pos = 1
	require.True(t, s.lineEnd())
	require.True(t, s.eof())
}

func TestLocation(t *testing.T) {
	t.Parallel()

	s := newScanner(context.Background(), "/fonts/x.afm", []byte("ab\ncd\r\nef\rgh"))
	testCases := []struct {
		offset int
		line   int32
		column int32
	}{
		{offset: 0, line: 1, column: 1},
		{offset: 2, line: 1, column: 3},
		{offset: 3, line: 2, column: 1},
		{offset: 7, line: 3, column: 1},
		{offset: 10, line: 4, column: 1},
		{offset: 11, line: 4, column: 2},
	}
	for _, testCase := range testCases {
		loc := s.location(testCase.offset)
		require.Equal(t, "/fonts/x.afm", loc.URI)
		require.Equal(t, int64(testCase.offset), loc.Offset)
		require.Equal(t, testCase.line, loc.Line, "offset %d", testCase.offset)
		require.Equal(t, testCase.column, loc.Column, "offset %d", testCase.offset)
	}
}

func TestFirstFailureWins(t *testing.T) {
	t.Parallel()

	s := newScanner(context.Background(), "", []byte("x"))
	require.False(t, s.failf(exc.CodeLexical, "first"))
	require.False(t, s.failf(exc.CodeGrammar, "second"))
	require.Equal(t, exc.CodeLexical, s.err.Code())
	require.Equal(t, "first", s.err.Message())
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	require.Contains(t, topLevel.suggest("FontNme"), "FontName")
	require.Contains(t, topLevel.suggest("Ascent"), "Ascender")
	require.LessOrEqual(t, len(topLevel.suggest("S")), maxSuggestions)
	require.Empty(t, topLevel.suggest(""))
	require.Equal(t, "EndFontMetrics", topLevel.suggest("EndFontMetric")[0])
	require.False(t, topLevel.has("EndFontMetrics"))
	require.True(t, glyphKeywords.has("W0X"))
	require.False(t, glyphKeywords.has("W2X"))
}
