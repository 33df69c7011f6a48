// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package target

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "relative path", input: "Courier.afm", expected: "/Courier.afm"},
		{name: "nested relative path", input: "adobe/../core14/Courier.afm", expected: "/core14/Courier.afm"},
		{name: "absolute path", input: "/usr/share/fonts/afm/Courier.afm", expected: "/usr/share/fonts/afm/Courier.afm"},
		{name: "file uri", input: "file:///fonts/Courier.afm", expected: "/fonts/Courier.afm"},
		{name: "directory", input: "fonts/", expected: "/fonts"},
		{name: "current directory", input: ".", expected: "/"},
		{name: "other scheme", input: "https://example.com/Courier.afm", expected: "https://example.com/Courier.afm"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, testCase.expected, Normalize(testCase.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	sep := string(filepath.ListSeparator)
	list := strings.Join([]string{"/a", "", " /b ", "/c"}, sep)
	require.Equal(t, []string{"/a", "/b", "/c"}, SplitList(list))
	require.Empty(t, SplitList(""))
}
