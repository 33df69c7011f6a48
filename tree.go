// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"gopkg.microglot.org/afm.go/internal/afm"
)

func summary(fonts []*afm.Font) pterm.TableData {
	data := pterm.TableData{
		{"File", "FontName", "Weight", "Glyphs", "Kern pairs", "Composites"},
	}
	for _, font := range fonts {
		d := font.Document
		data = append(data, []string{
			font.URI,
			d.FontName,
			d.Weight,
			strconv.Itoa(len(d.CharMetrics)),
			strconv.Itoa(len(d.KernPairs) + len(d.KernPairs0) + len(d.KernPairs1)),
			strconv.Itoa(len(d.Composites)),
		})
	}
	return data
}

func leaf(label string, v any) pterm.TreeNode {
	return pterm.TreeNode{Text: fmt.Sprintf("%s: %v", label, v)}
}

func branch(label string, n int, children []pterm.TreeNode) []pterm.TreeNode {
	if n == 0 {
		return nil
	}
	return []pterm.TreeNode{{Text: fmt.Sprintf("%s (%d)", label, n), Children: children}}
}

func bboxText(b afm.BBox) string {
	return fmt.Sprintf("[%g %g %g %g]", b.LLx, b.LLy, b.URx, b.URy)
}

// documentTree renders a document for --dump-tree. Zero valued scalars are
// shown, empty collections are left out.
func documentTree(font *afm.Font) pterm.TreeNode {
	d := font.Document
	children := []pterm.TreeNode{
		leaf("StartFontMetrics", d.FormatVersion),
		leaf("FontName", d.FontName),
		leaf("FullName", d.FullName),
		leaf("FamilyName", d.FamilyName),
		leaf("Weight", d.Weight),
		leaf("Version", d.Version),
		leaf("Notice", d.Notice),
		leaf("EncodingScheme", d.EncodingScheme),
		leaf("CharacterSet", d.CharacterSet),
		leaf("MappingScheme", d.MappingScheme),
		leaf("EscChar", d.EscChar),
		leaf("Characters", d.Characters),
		leaf("MetricsSets", d.MetricsSets),
		leaf("IsBaseFont", d.IsBaseFont),
		leaf("IsFixedPitch", d.IsFixedPitch),
		leaf("IsFixedV", d.IsFixedV),
		leaf("FontBBox", bboxText(d.FontBBox)),
		leaf("CapHeight", d.CapHeight),
		leaf("XHeight", d.XHeight),
		leaf("Ascender", d.Ascender),
		leaf("Descender", d.Descender),
		leaf("UnderlinePosition", d.UnderlinePosition),
		leaf("UnderlineThickness", d.UnderlineThickness),
		leaf("ItalicAngle", d.ItalicAngle),
		leaf("StdHW", d.StdHW),
		leaf("StdVW", d.StdVW),
	}

	comments := make([]pterm.TreeNode, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, pterm.TreeNode{Text: c})
	}
	children = append(children, branch("Comments", len(comments), comments)...)

	glyphs := make([]pterm.TreeNode, 0, len(d.CharMetrics))
	for _, g := range d.CharMetrics {
		node := pterm.TreeNode{Text: fmt.Sprintf("%s C=%d WX=%g B=%s", g.Name, g.Code, g.WX, bboxText(g.BBox))}
		for _, l := range g.Ligatures {
			node.Children = append(node.Children, pterm.TreeNode{Text: fmt.Sprintf("L %s %s", l.Successor, l.Ligature)})
		}
		glyphs = append(glyphs, node)
	}
	children = append(children, branch("CharMetrics", len(glyphs), glyphs)...)

	tracks := make([]pterm.TreeNode, 0, len(d.TrackKern))
	for _, tk := range d.TrackKern {
		tracks = append(tracks, pterm.TreeNode{Text: fmt.Sprintf("%d %g %g %g %g", tk.Degree, tk.MinPointSize, tk.MinKern, tk.MaxPointSize, tk.MaxKern)})
	}
	children = append(children, branch("TrackKern", len(tracks), tracks)...)

	for _, selector := range []afm.KernPairSelector{afm.KernPairsDefault, afm.KernPairs0, afm.KernPairs1} {
		set := d.KernPairSet(selector)
		pairs := make([]pterm.TreeNode, 0, len(set))
		for _, kp := range set {
			pairs = append(pairs, pterm.TreeNode{Text: fmt.Sprintf("%s %s %g %g", kp.First, kp.Second, kp.X, kp.Y)})
		}
		children = append(children, branch(selector.String(), len(pairs), pairs)...)
	}

	composites := make([]pterm.TreeNode, 0, len(d.Composites))
	for _, cc := range d.Composites {
		node := pterm.TreeNode{Text: cc.Name}
		for _, p := range cc.Parts {
			node.Children = append(node.Children, pterm.TreeNode{Text: fmt.Sprintf("PCC %s %d %d", p.Name, p.DX, p.DY)})
		}
		composites = append(composites, node)
	}
	children = append(children, branch("Composites", len(composites), composites)...)

	return pterm.TreeNode{Text: font.URI, Children: children}
}
