// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"context"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
	"gopkg.microglot.org/afm.go/internal/iter"
)

// Parser parses AFM documents and reports failures to a shared reporter. A
// Parser holds no per-document state and is safe for concurrent use.
type Parser struct {
	reporter exc.Reporter
}

func NewParser(reporter exc.Reporter) *Parser {
	if reporter == nil {
		reporter = exc.NewReporter(nil)
	}
	return &Parser{reporter: reporter}
}

// Commands returns the lazy command stream of b. uri only labels
// diagnostics.
func (self *Parser) Commands(ctx context.Context, uri string, b []byte) *CommandStream {
	return &CommandStream{
		s:        newScanner(ctx, uri, b),
		reporter: self.reporter,
	}
}

func (self *Parser) Parse(ctx context.Context, uri string, b []byte) (*afm.Document, error) {
	stream := self.Commands(ctx, uri, b)
	defer stream.Close(ctx)
	builder := iter.Fold[Command](ctx, stream, newDocumentBuilder(), (*documentBuilder).apply)
	if err := stream.Err(); err != nil {
		tracer().Debugf("parse of %q failed: %s", uri, err)
		return nil, err
	}
	doc := builder.build()
	tracer().Debugf("parsed %q: %s, %d glyphs, %d kern pairs", uri, doc.FontName, len(doc.CharMetrics), len(doc.KernPairs))
	return doc, nil
}

// Parse parses one complete AFM document.
func Parse(b []byte) (*afm.Document, error) {
	return NewParser(nil).Parse(context.Background(), "", b)
}
