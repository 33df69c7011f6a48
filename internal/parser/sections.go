// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
	"gopkg.microglot.org/afm.go/internal/iter"
)

// Declared counts come from the input, so they only size the initial
// allocation up to this bound.
const maxPrealloc = 1024

// applyCounted parses exactly count elements followed by the end sentinel.
// The declared count is authoritative. Reaching end early, finding more
// elements than declared and running out of input are all count
// mismatches. isElement recognizes the first keyword of an element so
// surplus elements can be told apart from garbage.
func applyCounted[T any](s *scanner, start string, end string, count uint32, isElement func(string) bool, element func(*scanner) (T, bool)) ([]T, bool) {
	values := make([]T, 0, min(int(count), maxPrealloc))
	for x := uint32(0); x < count; x = x + 1 {
		s.skipBlank()
		word := s.peekWord()
		switch {
		case s.eof():
			return nil, s.failf(exc.CodeCountMismatch, "unexpected end of input in %s: found %d of %d elements", start, x, count)
		case word == end:
			return nil, s.failf(exc.CodeCountMismatch, "%s declares %d elements but %s follows %d", start, count, end, x)
		case sentinels[word]:
			return nil, s.failf(exc.CodeStructural, "unexpected %s in %s (expecting %s after %d elements)", word, start, end, count)
		}
		v, ok := element(s)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	s.skipBlank()
	word := s.peekWord()
	switch {
	case word == end:
		s.pos = s.pos + len(end)
		return values, true
	case s.eof():
		return nil, s.failf(exc.CodeCountMismatch, "unexpected end of input: missing %s after %d elements of %s", end, count, start)
	case sentinels[word]:
		return nil, s.failf(exc.CodeStructural, "unexpected %s in %s (expecting %s)", word, start, end)
	case isElement(word):
		return nil, s.failf(exc.CodeCountMismatch, "%s declares %d elements but more follow (expecting %s)", start, count, end)
	default:
		return nil, s.failf(exc.CodeGrammar, "%s (expecting %s)", s.describe(), end)
	}
}

// sectionCount reads the element count of a section header and the line
// end that follows it.
func sectionCount(s *scanner, start string) (uint32, bool) {
	if !s.space() {
		return 0, false
	}
	count, ok := s.unsigned()
	if !ok || !s.eol() {
		return 0, false
	}
	tracer().Debugf("%s %d at %s offset %d", start, count, s.uri, s.pos)
	return count, true
}

var glyphKeywords = newKeywordTable([]keywordEntry[commandRule]{
	{"C", intCommand},
	{"CH", hexCommand},
	{"WX", numberCommand},
	{"W0X", numberCommand},
	{"W1X", numberCommand},
	{"WY", numberCommand},
	{"W0Y", numberCommand},
	{"W1Y", numberCommand},
	{"W", pairCommand},
	{"W0", pairCommand},
	{"W1", pairCommand},
	{"VV", pairCommand},
	{"N", nameCommand},
	{"B", bboxCommand},
	{"L", ligatureCommand},
})

func charMetricsCommand(s *scanner, keyword string) (Command, bool) {
	count, ok := sectionCount(s, keyword)
	if !ok {
		return nil, false
	}
	metrics, ok := applyCounted(s, keyword, "EndCharMetrics", count, glyphKeywords.has, charMetric)
	if !ok {
		return nil, false
	}
	return commandCharMetrics{metrics: metrics}, true
}

// charMetric reads one record such as
//
//	C 32 ; WX 600 ; N space ; B 0 0 0 0 ;
//
// The trailing ';' is optional. Sub-commands fold onto a glyph with code -1.
func charMetric(s *scanner) (afm.GlyphMetric, bool) {
	subs := make([]Command, 0, 4)
	for {
		s.skipSpace()
		if s.atLineEnd() {
			break
		}
		word := s.peekWord()
		rule, ok := glyphKeywords.lookup(word)
		if !ok {
			if word == "" {
				return afm.GlyphMetric{}, s.failf(exc.CodeGrammar, "%s (expecting a char metric keyword)", s.describe())
			}
			return afm.GlyphMetric{}, s.failf(exc.CodeGrammar, "%s", glyphKeywords.unknown(word))
		}
		s.pos = s.pos + len(word)
		c, ok := rule(s, word)
		if !ok {
			return afm.GlyphMetric{}, false
		}
		subs = append(subs, c)
		s.skipSpace()
		if s.peek() == ';' {
			s.pos = s.pos + 1
			continue
		}
		if !s.atLineEnd() {
			return afm.GlyphMetric{}, s.failf(exc.CodeGrammar, "%s (expecting ';')", s.describe())
		}
	}
	if !s.lineEnd() {
		return afm.GlyphMetric{}, false
	}
	g := iter.Fold(s.ctx, iter.NewSlice(subs), newGlyphBuilder(), (*glyphBuilder).apply)
	return g.build(), true
}

func compositesCommand(s *scanner, keyword string) (Command, bool) {
	count, ok := sectionCount(s, keyword)
	if !ok {
		return nil, false
	}
	isComposite := func(word string) bool { return word == "CC" }
	composites, ok := applyCounted(s, keyword, "EndComposites", count, isComposite, composite)
	if !ok {
		return nil, false
	}
	return commandComposites{composites: composites}, true
}

// separator skips the ';' and whitespace between the parts of a composite.
// Parts may share a line or sit on lines of their own.
func (s *scanner) separator() {
	s.skipSpace()
	if s.peek() == ';' {
		s.pos = s.pos + 1
	}
	s.skipBlank()
}

// composite reads CC <name> <n> followed by exactly n PCC parts.
func composite(s *scanner) (afm.CompositeGlyph, bool) {
	if !s.expectKeyword("CC") || !s.space() {
		return afm.CompositeGlyph{}, false
	}
	name, ok := s.recordName()
	if !ok || !s.space() {
		return afm.CompositeGlyph{}, false
	}
	count, ok := s.unsigned()
	if !ok {
		return afm.CompositeGlyph{}, false
	}
	parts := make([]afm.CompositePart, 0, min(int(count), maxPrealloc))
	for x := uint32(0); x < count; x = x + 1 {
		s.separator()
		word := s.peekWord()
		if word != "PCC" {
			switch {
			case s.eof() || word == "CC" || word == "EndComposites":
				return afm.CompositeGlyph{}, s.failf(exc.CodeCountMismatch, "composite %s declares %d parts but has %d", name, count, x)
			case sentinels[word]:
				return afm.CompositeGlyph{}, s.failf(exc.CodeStructural, "unexpected %s in composite %s", word, name)
			default:
				return afm.CompositeGlyph{}, s.failf(exc.CodeGrammar, "%s (expecting PCC)", s.describe())
			}
		}
		part, ok := compositePart(s)
		if !ok {
			return afm.CompositeGlyph{}, false
		}
		parts = append(parts, part)
	}
	s.separator()
	if s.peekWord() == "PCC" {
		return afm.CompositeGlyph{}, s.failf(exc.CodeCountMismatch, "composite %s declares %d parts but more follow", name, count)
	}
	return afm.CompositeGlyph{Name: name, Parts: parts}, true
}

func compositePart(s *scanner) (afm.CompositePart, bool) {
	if !s.expectKeyword("PCC") || !s.space() {
		return afm.CompositePart{}, false
	}
	name, ok := s.recordName()
	if !ok || !s.space() {
		return afm.CompositePart{}, false
	}
	dx, ok := s.integer()
	if !ok || !s.space() {
		return afm.CompositePart{}, false
	}
	dy, ok := s.integer()
	if !ok {
		return afm.CompositePart{}, false
	}
	return afm.CompositePart{Name: name, DX: dx, DY: dy}, true
}

type kernPairRule func(s *scanner) (afm.KernPair, bool)

func newKernPairRule(name func(*scanner) (string, bool), adjust func(*scanner) (afm.Vector, bool)) kernPairRule {
	return func(s *scanner) (afm.KernPair, bool) {
		if !s.space() {
			return afm.KernPair{}, false
		}
		first, ok := name(s)
		if !ok || !s.space() {
			return afm.KernPair{}, false
		}
		second, ok := name(s)
		if !ok || !s.space() {
			return afm.KernPair{}, false
		}
		v, ok := adjust(s)
		if !ok {
			return afm.KernPair{}, false
		}
		return afm.KernPair{First: first, Second: second, X: v.X, Y: v.Y}, true
	}
}

func (s *scanner) adjustX() (afm.Vector, bool) {
	x, ok := s.number()
	return afm.Vector{X: x}, ok
}

func (s *scanner) adjustY() (afm.Vector, bool) {
	y, ok := s.number()
	return afm.Vector{Y: y}, ok
}

// kernPairSpellings are tried in this order. Keywords only match whole
// words so KP never claims a KPX line.
var kernPairSpellings = []keywordEntry[kernPairRule]{
	{"KPH", newKernPairRule((*scanner).hexName, (*scanner).pair)},
	{"KP", newKernPairRule((*scanner).name, (*scanner).pair)},
	{"KPX", newKernPairRule((*scanner).name, (*scanner).adjustX)},
	{"KPY", newKernPairRule((*scanner).name, (*scanner).adjustY)},
}

func isKernPair(word string) bool {
	for _, spelling := range kernPairSpellings {
		if spelling.keyword == word {
			return true
		}
	}
	return false
}

func kernPair(s *scanner) (afm.KernPair, bool) {
	for _, spelling := range kernPairSpellings {
		if !s.keyword(spelling.keyword) {
			continue
		}
		kp, ok := spelling.rule(s)
		if !ok || !s.lineEnd() {
			return afm.KernPair{}, false
		}
		return kp, true
	}
	return afm.KernPair{}, s.failf(exc.CodeGrammar, "%s (expecting KPH, KP, KPX or KPY)", s.describe())
}

func trackKern(s *scanner) (afm.TrackKern, bool) {
	if !s.expectKeyword("TrackKern") || !s.space() {
		return afm.TrackKern{}, false
	}
	degree, ok := s.integer()
	if !ok {
		return afm.TrackKern{}, false
	}
	var v [4]float64
	for x := range v {
		if !s.space() {
			return afm.TrackKern{}, false
		}
		n, ok := s.number()
		if !ok {
			return afm.TrackKern{}, false
		}
		v[x] = n
	}
	if !s.lineEnd() {
		return afm.TrackKern{}, false
	}
	return afm.TrackKern{
		Degree:       degree,
		MinPointSize: v[0],
		MinKern:      v[1],
		MaxPointSize: v[2],
		MaxKern:      v[3],
	}, true
}

var kernPairSelectors = map[string]afm.KernPairSelector{
	"StartKernPairs":  afm.KernPairsDefault,
	"StartKernPairs0": afm.KernPairs0,
	"StartKernPairs1": afm.KernPairs1,
}

// kernDataCommand reads the sub-blocks between StartKernData and
// EndKernData. Blocks may come in any order and may repeat.
func kernDataCommand(s *scanner, keyword string) (Command, bool) {
	if !s.eol() {
		return nil, false
	}
	var blocks []kernBlock
	for {
		s.skipBlank()
		word := s.peekWord()
		if word == "EndKernData" {
			if len(blocks) == 0 {
				return nil, s.failf(exc.CodeGrammar, "%s holds no StartTrackKern or StartKernPairs section", keyword)
			}
			s.pos = s.pos + len(word)
			return commandKernData{blocks: blocks}, true
		}
		if word == "StartTrackKern" {
			s.pos = s.pos + len(word)
			count, ok := sectionCount(s, word)
			if !ok {
				return nil, false
			}
			isTrackKern := func(w string) bool { return w == "TrackKern" }
			entries, ok := applyCounted(s, word, "EndTrackKern", count, isTrackKern, trackKern)
			if !ok || !s.lineEnd() {
				return nil, false
			}
			blocks = append(blocks, trackKernBlock{entries: entries})
			continue
		}
		if selector, ok := kernPairSelectors[word]; ok {
			s.pos = s.pos + len(word)
			count, ok := sectionCount(s, word)
			if !ok {
				return nil, false
			}
			pairs, ok := applyCounted(s, word, "EndKernPairs", count, isKernPair, kernPair)
			if !ok || !s.lineEnd() {
				return nil, false
			}
			blocks = append(blocks, kernPairBlock{selector: selector, pairs: pairs})
			continue
		}
		switch {
		case s.eof():
			return nil, s.failf(exc.CodeCountMismatch, "unexpected end of input: missing EndKernData")
		case sentinels[word]:
			return nil, s.failf(exc.CodeStructural, "unexpected %s in %s (expecting EndKernData)", word, keyword)
		default:
			return nil, s.failf(exc.CodeGrammar, "%s (expecting StartTrackKern, StartKernPairs or EndKernData)", s.describe())
		}
	}
}
