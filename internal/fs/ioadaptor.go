// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
)

const readChunk = 32 * 1024

func bodyFromIO(v io.ReadCloser) afm.FileBody {
	return &ioFileBody{rc: v}
}

type ioFileBody struct {
	rc io.ReadCloser
	b  []byte
}

func (self *ioFileBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if len(self.b) < int(size) {
		self.b = make([]byte, size)
	}
	count, err := self.rc.Read(self.b[:size])
	if err != nil && err != io.EOF {
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
	if err == io.EOF {
		return self.b[:count], exc.Wrap(exc.Location{}, exc.CodeEOF, err)
	}
	return self.b[:count], nil
}

func (self *ioFileBody) Close(ctx context.Context) error {
	return self.rc.Close()
}

// ReadAll opens the body of f and reads it completely. AFM documents are
// parsed from memory, so every loader goes through here first.
func ReadAll(ctx context.Context, f afm.File) ([]byte, error) {
	body, err := f.Body(ctx)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: f.Path(ctx)}, err)
	}
	defer body.Close(ctx)
	var out []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := body.Read(ctx, readChunk)
		out = append(out, b...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, exc.WrapUnknown(exc.Location{URI: f.Path(ctx)}, err)
		}
	}
}
