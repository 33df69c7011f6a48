// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package afm

import (
	"context"
	"fmt"

	"gopkg.microglot.org/afm.go/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindAFM
	FileKindACFM // composite font metrics
	FileKindAMFM // multiple master font metrics
)

func (k FileKind) String() string {
	switch k {
	case FileKindNone:
		return "none"
	case FileKindAFM:
		return "afm"
	case FileKindACFM:
		return "acfm"
	case FileKindAMFM:
		return "amfm"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
}

type Loader interface {
	Load(ctx context.Context, req *LoadRequest) (*LoadResponse, error)
}

type LoadRequest struct {
	Files        []string
	DumpCommands bool
	// Keywords restricts the command dump to the named keywords. An empty
	// set dumps every command.
	Keywords []string
}

type LoadResponse struct {
	Fonts []*Font
}

// Font pairs a parsed document with the path it was loaded from.
type Font struct {
	URI      string
	Document *Document
}
