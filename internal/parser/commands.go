// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"strings"

	"gopkg.microglot.org/afm.go/internal/afm"
)

// Command is one parsed top-level statement. Scalar keywords produce one
// command per line. Sections such as StartCharMetrics produce one command
// carrying everything up to their end sentinel.
type Command interface {
	fmt.Stringer
	Keyword() string
	command()
}

// commandRule parses the value of a keyword. The keyword itself has already
// been consumed when the rule runs.
type commandRule func(s *scanner, keyword string) (Command, bool)

type commandValue[T any] struct {
	keyword string
	value   T
}

func (c commandValue[T]) command() {}

func (c commandValue[T]) Keyword() string {
	return c.keyword
}

func (c commandValue[T]) String() string {
	return fmt.Sprintf("%s %v", c.keyword, c.value)
}

// textCommand reads the rest of the line. A keyword alone on its line yields
// an empty value.
func textCommand(s *scanner, keyword string) (Command, bool) {
	if s.atLineEnd() {
		return commandValue[string]{keyword: keyword}, true
	}
	if !s.space() {
		return nil, false
	}
	v, ok := s.text()
	if !ok {
		return nil, false
	}
	return commandValue[string]{keyword: keyword, value: v}, true
}

func valueCommand[T any](value func(*scanner) (T, bool)) commandRule {
	return func(s *scanner, keyword string) (Command, bool) {
		if !s.space() {
			return nil, false
		}
		v, ok := value(s)
		if !ok {
			return nil, false
		}
		return commandValue[T]{keyword: keyword, value: v}, true
	}
}

var (
	intCommand      = valueCommand((*scanner).integer)
	hexCommand      = valueCommand((*scanner).hexInteger)
	unsignedCommand = valueCommand((*scanner).unsigned)
	numberCommand   = valueCommand((*scanner).number)
	boolCommand     = valueCommand((*scanner).boolean)
	bboxCommand     = valueCommand((*scanner).bbox)
	pairCommand     = valueCommand((*scanner).pair)
	nameCommand     = valueCommand((*scanner).recordName)
	ligatureCommand = valueCommand((*scanner).ligature)
)

func (s *scanner) ligature() (afm.Ligature, bool) {
	successor, ok := s.recordName()
	if !ok || !s.space() {
		return afm.Ligature{}, false
	}
	ligature, ok := s.recordName()
	if !ok {
		return afm.Ligature{}, false
	}
	return afm.Ligature{Successor: successor, Ligature: ligature}, true
}

type commandCharMetrics struct {
	metrics []afm.GlyphMetric
}

func (commandCharMetrics) command() {}

func (commandCharMetrics) Keyword() string {
	return "StartCharMetrics"
}

func (c commandCharMetrics) String() string {
	return fmt.Sprintf("StartCharMetrics %d", len(c.metrics))
}

type commandComposites struct {
	composites []afm.CompositeGlyph
}

func (commandComposites) command() {}

func (commandComposites) Keyword() string {
	return "StartComposites"
}

func (c commandComposites) String() string {
	return fmt.Sprintf("StartComposites %d", len(c.composites))
}

type kernBlock interface {
	fmt.Stringer
	kernBlock()
}

type trackKernBlock struct {
	entries []afm.TrackKern
}

func (trackKernBlock) kernBlock() {}

func (b trackKernBlock) String() string {
	return fmt.Sprintf("StartTrackKern %d", len(b.entries))
}

type kernPairBlock struct {
	selector afm.KernPairSelector
	pairs    []afm.KernPair
}

func (kernPairBlock) kernBlock() {}

func (b kernPairBlock) String() string {
	return fmt.Sprintf("%s %d", b.selector, len(b.pairs))
}

type commandKernData struct {
	blocks []kernBlock
}

func (commandKernData) command() {}

func (commandKernData) Keyword() string {
	return "StartKernData"
}

func (c commandKernData) String() string {
	blocks := make([]string, 0, len(c.blocks))
	for _, b := range c.blocks {
		blocks = append(blocks, b.String())
	}
	return fmt.Sprintf("StartKernData [%s]", strings.Join(blocks, ", "))
}
