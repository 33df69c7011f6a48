// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package target turns the paths and URIs named on the command line into the
// rooted slash separated form the file systems in internal/fs expect.
package target

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Normalize processes a load target and converts it into a standard form.
//
// Targets may be file paths or any valid URI. File paths and file URIs become
// rooted, cleaned, slash separated paths that are resolved against the
// search roots. All other URIs are left as-is for file systems that
// understand them.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err == nil && len(u.Scheme) > 1 && u.Scheme != "file" {
		return target
	}
	if err == nil && u.Scheme == "file" {
		target = u.Path
	}
	target = filepath.ToSlash(target)
	if vol := filepath.VolumeName(target); vol != "" {
		target = strings.TrimPrefix(target, vol)
	}
	return path.Clean("/" + target)
}

// SplitList splits a search path such as $AFMPATH on the platform list
// separator. Empty elements are dropped.
func SplitList(list string) []string {
	parts := filepath.SplitList(list)
	roots := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		roots = append(roots, p)
	}
	return roots
}
