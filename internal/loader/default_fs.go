// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"path/filepath"

	"gopkg.microglot.org/afm.go/internal/fs"
	"gopkg.microglot.org/afm.go/internal/target"
)

// NewDefaultFS searches $AFMPATH first, then the platform metrics
// directories and finally the user and system font directories.
func NewDefaultFS(lookup func(string) (string, bool)) (fs.FileSystemMulti, error) {
	roots := DefaultRoots(lookup)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			return nil, errAbs
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return append(f, fs.FileSystemFontDirs{}), nil
}

// DefaultRoots lists the directories searched for metrics files when no
// file system is configured.
func DefaultRoots(lookup func(string) (string, bool)) []string {
	var roots []string
	if afmPath, ok := lookup("AFMPATH"); ok {
		roots = append(roots, target.SplitList(afmPath)...)
	}
	return append(roots, platformRoots(lookup)...)
}
