// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package parser reads Adobe Font Metrics (AFM) documents.
//
// Parsing happens in layers. Lexical primitives in lexer.go consume numbers,
// names, hex strings and text lines. Command rules in commands.go and
// sections.go turn keyword lines and counted sections into Command values.
// CommandStream yields those commands lazily and Parse folds them into an
// afm.Document.
//
// Every failure is an exc.Exception carrying the offending location. The
// first failure ends the parse and no partial document is returned.
package parser

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'afm.parser'
func tracer() tracing.Trace {
	return tracing.Select("afm.parser")
}
