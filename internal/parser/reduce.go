// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"gopkg.microglot.org/afm.go/internal/afm"
)

// documentBuilder folds the command stream into a Document. Scalars take the
// last value seen, comments accumulate, char metrics and composites replace
// any earlier section and kern blocks append to the set they select.
type documentBuilder struct {
	doc afm.Document
}

func newDocumentBuilder() *documentBuilder {
	return &documentBuilder{}
}

func (b *documentBuilder) apply(c Command) *documentBuilder {
	switch c := c.(type) {
	case commandValue[afm.Version]:
		b.doc.FormatVersion = c.value
	case commandValue[string]:
		b.text(c.keyword, c.value)
	case commandValue[uint32]:
		b.unsigned(c.keyword, c.value)
	case commandValue[bool]:
		b.boolean(c.keyword, c.value)
	case commandValue[float64]:
		b.number(c.keyword, c.value)
	case commandValue[afm.BBox]:
		b.doc.FontBBox = c.value
	case commandValue[afm.Vector]:
		switch c.keyword {
		case "VVector":
			b.doc.VVector = c.value
		case "CharWidth":
			b.doc.CharWidth = c.value
		}
	case commandCharMetrics:
		b.doc.CharMetrics = c.metrics
	case commandComposites:
		b.doc.Composites = c.composites
	case commandKernData:
		for _, block := range c.blocks {
			b.kern(block)
		}
	}
	return b
}

func (b *documentBuilder) text(keyword string, v string) {
	switch keyword {
	case "Comment":
		b.doc.Comments = append(b.doc.Comments, v)
	case "FontName":
		b.doc.FontName = v
	case "FullName":
		b.doc.FullName = v
	case "FamilyName":
		b.doc.FamilyName = v
	case "Weight":
		b.doc.Weight = v
	case "Version":
		b.doc.Version = v
	case "Notice":
		b.doc.Notice = v
	case "EncodingScheme":
		b.doc.EncodingScheme = v
	case "CharacterSet":
		b.doc.CharacterSet = v
	}
}

func (b *documentBuilder) unsigned(keyword string, v uint32) {
	switch keyword {
	case "MappingScheme":
		b.doc.MappingScheme = v
	case "EscChar":
		b.doc.EscChar = v
	case "Characters":
		b.doc.Characters = v
	case "MetricsSets":
		b.doc.MetricsSets = v
	}
}

func (b *documentBuilder) boolean(keyword string, v bool) {
	switch keyword {
	case "IsBaseFont":
		b.doc.IsBaseFont = v
	case "IsFixedPitch":
		b.doc.IsFixedPitch = v
	case "IsFixedV":
		b.doc.IsFixedV = v
	}
}

func (b *documentBuilder) number(keyword string, v float64) {
	switch keyword {
	case "CapHeight":
		b.doc.CapHeight = v
	case "XHeight":
		b.doc.XHeight = v
	case "Ascender":
		b.doc.Ascender = v
	case "Descender":
		b.doc.Descender = v
	case "UnderlinePosition":
		b.doc.UnderlinePosition = v
	case "UnderlineThickness":
		b.doc.UnderlineThickness = v
	case "ItalicAngle":
		b.doc.ItalicAngle = v
	case "StdHW":
		b.doc.StdHW = v
	case "StdVW":
		b.doc.StdVW = v
	}
}

func (b *documentBuilder) kern(block kernBlock) {
	switch block := block.(type) {
	case trackKernBlock:
		b.doc.TrackKern = append(b.doc.TrackKern, block.entries...)
	case kernPairBlock:
		switch block.selector {
		case afm.KernPairs0:
			b.doc.KernPairs0 = append(b.doc.KernPairs0, block.pairs...)
		case afm.KernPairs1:
			b.doc.KernPairs1 = append(b.doc.KernPairs1, block.pairs...)
		default:
			b.doc.KernPairs = append(b.doc.KernPairs, block.pairs...)
		}
	}
}

func (b *documentBuilder) build() *afm.Document {
	return afm.NewDocument(b.doc)
}

// glyphBuilder folds the sub-commands of one char metrics record.
type glyphBuilder struct {
	glyph afm.GlyphMetric
}

func newGlyphBuilder() *glyphBuilder {
	return &glyphBuilder{glyph: afm.GlyphMetric{Code: -1}}
}

func (b *glyphBuilder) apply(c Command) *glyphBuilder {
	switch c := c.(type) {
	case commandValue[int]:
		b.glyph.Code = c.value
	case commandValue[string]:
		b.glyph.Name = c.value
	case commandValue[afm.BBox]:
		b.glyph.BBox = c.value
	case commandValue[afm.Ligature]:
		b.glyph.Ligatures = append(b.glyph.Ligatures, c.value)
	case commandValue[float64]:
		switch c.keyword {
		case "WX":
			b.glyph.WX = c.value
		case "W0X":
			b.glyph.W0X = c.value
		case "W1X":
			b.glyph.W1X = c.value
		case "WY":
			b.glyph.WY = c.value
		case "W0Y":
			b.glyph.W0Y = c.value
		case "W1Y":
			b.glyph.W1Y = c.value
		}
	case commandValue[afm.Vector]:
		switch c.keyword {
		case "W":
			b.glyph.W = c.value
		case "W0":
			b.glyph.W0 = c.value
		case "W1":
			b.glyph.W1 = c.value
		case "VV":
			b.glyph.VV = c.value
		}
	}
	return b
}

func (b *glyphBuilder) build() afm.GlyphMetric {
	return b.glyph
}
