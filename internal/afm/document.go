// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package afm

import "fmt"

// BBox is a bounding box given by its lower left and upper right corners.
type BBox struct {
	LLx, LLy, URx, URy float64
}

// Vector is an (x, y) pair such as an advance vector or a V vector.
type Vector struct {
	X, Y float64
}

// Version is the format version declared by StartFontMetrics.
type Version struct {
	Major uint32
	Minor uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// KernPairSelector picks one of the three kern pair collections of a
// document. StartKernPairs fills the default set, StartKernPairs0 and
// StartKernPairs1 the numbered ones.
type KernPairSelector uint8

const (
	KernPairsDefault KernPairSelector = iota
	KernPairs0
	KernPairs1
)

func (s KernPairSelector) String() string {
	switch s {
	case KernPairsDefault:
		return "StartKernPairs"
	case KernPairs0:
		return "StartKernPairs0"
	case KernPairs1:
		return "StartKernPairs1"
	default:
		return fmt.Sprintf("unknown-%d", s)
	}
}

type Ligature struct {
	Successor string
	Ligature  string
}

// GlyphMetric holds the metrics of one StartCharMetrics record. Code is -1
// for glyphs that are not encoded.
type GlyphMetric struct {
	Name      string
	Code      int
	BBox      BBox
	WX        float64
	W0X       float64
	W1X       float64
	WY        float64
	W0Y       float64
	W1Y       float64
	W         Vector
	W0        Vector
	W1        Vector
	VV        Vector
	Ligatures []Ligature
}

// KernPair adjusts the advance between First and Second. Pairs read from
// KPX lines have Y == 0, pairs read from KPY lines have X == 0.
type KernPair struct {
	First  string
	Second string
	X      float64
	Y      float64
}

type TrackKern struct {
	Degree       int
	MinPointSize float64
	MinKern      float64
	MaxPointSize float64
	MaxKern      float64
}

type CompositePart struct {
	Name string
	DX   int
	DY   int
}

type CompositeGlyph struct {
	Name  string
	Parts []CompositePart
}

// Document is a parsed AFM file. Documents are built in one pass by the
// parser and are not modified afterwards.
type Document struct {
	FormatVersion Version

	FontName       string
	FullName       string
	FamilyName     string
	Weight         string
	Version        string
	Notice         string
	EncodingScheme string
	CharacterSet   string

	MappingScheme uint32
	EscChar       uint32
	Characters    uint32
	MetricsSets   uint32

	IsBaseFont   bool
	IsFixedPitch bool
	IsFixedV     bool

	CapHeight          float64
	XHeight            float64
	Ascender           float64
	Descender          float64
	UnderlinePosition  float64
	UnderlineThickness float64
	ItalicAngle        float64
	StdHW              float64
	StdVW              float64

	FontBBox  BBox
	VVector   Vector
	CharWidth Vector

	Comments    []string
	CharMetrics []GlyphMetric
	Composites  []CompositeGlyph
	TrackKern   []TrackKern
	KernPairs   []KernPair
	KernPairs0  []KernPair
	KernPairs1  []KernPair

	byName map[string]int
	byPair map[[2]string]int
}

// NewDocument finalizes d and returns it with its lookup indexes built. The
// Glyph and Kerning lookups only work on documents returned from here. When
// two glyphs share a name the later one wins the lookup.
func NewDocument(d Document) *Document {
	d.byName = make(map[string]int, len(d.CharMetrics))
	for offset, g := range d.CharMetrics {
		d.byName[g.Name] = offset
	}
	d.byPair = make(map[[2]string]int, len(d.KernPairs))
	for offset, kp := range d.KernPairs {
		d.byPair[[2]string{kp.First, kp.Second}] = offset
	}
	return &d
}

// Glyph returns the metrics of the named glyph.
func (d *Document) Glyph(name string) (GlyphMetric, bool) {
	offset, ok := d.byName[name]
	if !ok {
		return GlyphMetric{}, false
	}
	return d.CharMetrics[offset], true
}

func (d *Document) KernPairSet(selector KernPairSelector) []KernPair {
	switch selector {
	case KernPairs0:
		return d.KernPairs0
	case KernPairs1:
		return d.KernPairs1
	default:
		return d.KernPairs
	}
}

// Kerning returns the adjustment for the pair (first, second) from the
// default kern pair set.
func (d *Document) Kerning(first string, second string) (Vector, bool) {
	offset, ok := d.byPair[[2]string{first, second}]
	if !ok {
		return Vector{}, false
	}
	kp := d.KernPairs[offset]
	return Vector{X: kp.X, Y: kp.Y}, true
}
