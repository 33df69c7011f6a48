// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/flopp/go-findfont"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
)

var _ afm.FileSystem = FileSystemFontDirs{}

// FileSystemFontDirs looks metrics files up by base name in the user and
// system font directories. It only resolves single files, never
// directories, and is meant as the last entry of a FileSystemMulti.
type FileSystemFontDirs struct{}

func (FileSystemFontDirs) Open(ctx context.Context, uri string) ([]afm.File, error) {
	name := path.Base(filepath.ToSlash(uri))
	kind := KindOf(name)
	if kind == afm.FileKindNone {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, fmt.Sprintf("%s is not a font metrics file name", name))
	}
	p, err := findfont.Find(name)
	if err != nil {
		return nil, exc.Wrap(exc.Location{URI: uri}, exc.CodeFileNotFound, err)
	}
	f := NewFileFN(filepath.ToSlash(p), func() (io.ReadCloser, error) {
		return os.Open(p)
	}, kind)
	return []afm.File{f}, nil
}
