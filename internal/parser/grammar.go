// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
	"gopkg.microglot.org/afm.go/internal/optional"
)

// topLevel lists the keywords accepted between StartFontMetrics and
// EndFontMetrics, grouped by value kind. Dispatch is by exact keyword.
// Section sentinels are offered as suggestions for unknown keywords too.
var topLevel = newKeywordTable([]keywordEntry[commandRule]{
	{"Comment", textCommand},
	{"FontName", textCommand},
	{"FullName", textCommand},
	{"FamilyName", textCommand},
	{"Weight", textCommand},
	{"Version", textCommand},
	{"Notice", textCommand},
	{"EncodingScheme", textCommand},
	{"CharacterSet", textCommand},

	{"MappingScheme", unsignedCommand},
	{"EscChar", unsignedCommand},
	{"Characters", unsignedCommand},
	{"MetricsSets", unsignedCommand},

	{"IsBaseFont", boolCommand},
	{"IsFixedPitch", boolCommand},
	{"IsFixedV", boolCommand},

	{"CapHeight", numberCommand},
	{"XHeight", numberCommand},
	{"Ascender", numberCommand},
	{"Descender", numberCommand},
	{"UnderlinePosition", numberCommand},
	{"UnderlineThickness", numberCommand},
	{"ItalicAngle", numberCommand},
	{"StdHW", numberCommand},
	{"StdVW", numberCommand},

	{"FontBBox", bboxCommand},
	{"VVector", pairCommand},
	{"CharWidth", pairCommand},

	{"StartCharMetrics", charMetricsCommand},
	{"StartComposites", compositesCommand},
	{"StartKernData", kernDataCommand},
}).withHints(sentinels)

type streamState uint8

const (
	streamHeader streamState = iota
	streamBody
	streamDone
)

// CommandStream lazily parses the commands of one document. The first
// command is always the StartFontMetrics header. The stream ends at
// EndFontMetrics or at the first error, which Err returns afterwards.
type CommandStream struct {
	s        *scanner
	state    streamState
	reporter exc.Reporter
}

var _ afm.Iterator[Command] = (*CommandStream)(nil)

func (self *CommandStream) Next(ctx context.Context) optional.Optional[Command] {
	if self.state != streamDone && ctx.Err() != nil {
		self.s.failf(exc.CodeUnknownFatal, "parse cancelled: %s", ctx.Err())
		return self.stop()
	}
	switch self.state {
	case streamHeader:
		c, ok := self.header()
		if !ok {
			return self.stop()
		}
		self.state = streamBody
		return optional.Some(c)
	case streamBody:
		c, ok := self.command()
		if !ok {
			return self.stop()
		}
		if c == nil {
			self.state = streamDone
			return optional.None[Command]()
		}
		return optional.Some(c)
	default:
		return optional.None[Command]()
	}
}

func (self *CommandStream) Close(ctx context.Context) error {
	self.state = streamDone
	return nil
}

// Err returns the failure that ended the stream, if any.
func (self *CommandStream) Err() exc.Exception {
	return self.s.err
}

func (self *CommandStream) stop() optional.Optional[Command] {
	self.state = streamDone
	if self.s.err != nil && self.reporter != nil {
		_ = self.reporter.Report(self.s.err)
	}
	return optional.None[Command]()
}

func (self *CommandStream) header() (Command, bool) {
	s := self.s
	s.skipBlank()
	if !s.expectKeyword("StartFontMetrics") || !s.space() {
		return nil, false
	}
	v, ok := s.version()
	if !ok || !s.eol() {
		return nil, false
	}
	return commandValue[afm.Version]{keyword: "StartFontMetrics", value: v}, true
}

// command returns the next command, or a nil command once EndFontMetrics
// has been consumed.
func (self *CommandStream) command() (Command, bool) {
	s := self.s
	s.skipBlank()
	if s.eof() {
		return nil, s.failf(exc.CodeGrammar, "unexpected end of input (expecting EndFontMetrics)")
	}
	word := s.peekWord()
	if word == "EndFontMetrics" {
		s.pos = s.pos + len(word)
		s.skipBlank()
		if !s.eof() {
			return nil, s.failf(exc.CodeGrammar, "%s after EndFontMetrics", s.describe())
		}
		return nil, true
	}
	rule, ok := topLevel.lookup(word)
	if !ok {
		switch {
		case sentinels[word]:
			return nil, s.failf(exc.CodeStructural, "unexpected %s outside of its section", word)
		case word == "":
			return nil, s.failf(exc.CodeGrammar, "%s (expecting a keyword)", s.describe())
		default:
			return nil, s.failf(exc.CodeGrammar, "%s", topLevel.unknown(word))
		}
	}
	s.pos = s.pos + len(word)
	c, ok := rule(s, word)
	if !ok || !s.lineEnd() {
		return nil, false
	}
	return c, true
}
