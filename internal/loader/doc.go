// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package loader resolves load targets to AFM files, parses them
// concurrently and collects every failure into one MultiException.
package loader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'afm.loader'
func tracer() tracing.Trace {
	return tracing.Select("afm.loader")
}
