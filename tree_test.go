// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/parser"
)

const courier = `StartFontMetrics 4.1
Comment Core 14
FontName Courier
Weight Medium
StartCharMetrics 2
C 102 ; WX 600 ; N f ; B 95 0 563 629 ; L i fi ;
C 105 ; WX 600 ; N i ; B 95 0 505 657 ;
EndCharMetrics
StartKernData
StartKernPairs1 1
KPX f i -20
EndKernPairs
EndKernData
EndFontMetrics
`

func findNode(nodes []pterm.TreeNode, text string) (pterm.TreeNode, bool) {
	for _, n := range nodes {
		if n.Text == text {
			return n, true
		}
	}
	return pterm.TreeNode{}, false
}

func TestDocumentTree(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse([]byte(courier))
	require.NoError(t, err)
	root := documentTree(&afm.Font{URI: "/Courier.afm", Document: doc})
	require.Equal(t, "/Courier.afm", root.Text)

	_, ok := findNode(root.Children, "FontName: Courier")
	require.True(t, ok)
	_, ok = findNode(root.Children, "StartFontMetrics: 4.1")
	require.True(t, ok)

	glyphs, ok := findNode(root.Children, "CharMetrics (2)")
	require.True(t, ok)
	require.Len(t, glyphs.Children, 2)
	require.Equal(t, "f C=102 WX=600 B=[95 0 563 629]", glyphs.Children[0].Text)
	require.Equal(t, []pterm.TreeNode{{Text: "L i fi"}}, glyphs.Children[0].Children)

	pairs, ok := findNode(root.Children, "StartKernPairs1 (1)")
	require.True(t, ok)
	require.Equal(t, "f i -20 0", pairs.Children[0].Text)
	_, ok = findNode(root.Children, "StartKernPairs (0)")
	require.False(t, ok)
	_, ok = findNode(root.Children, "Composites (0)")
	require.False(t, ok)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse([]byte(courier))
	require.NoError(t, err)
	data := summary([]*afm.Font{{URI: "/Courier.afm", Document: doc}})
	require.Len(t, data, 2)
	require.Equal(t, []string{"/Courier.afm", "Courier", "Medium", "2", "1", "0"}, data[1])
}
