// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

//go:build aix || darwin || dragonfly || freebsd || (js && wasm) || linux || netbsd || openbsd || solaris

package loader

import (
	"os"
	"path/filepath"
	"strings"
)

func platformRoots(lookup func(string) (string, bool)) []string {
	xdgDirs, ok := lookup("XDG_DATA_DIRS")
	if !ok || xdgDirs == "" {
		xdgDirs = "/usr/local/share/:/usr/share/"
	}
	dataDirs := strings.Split(xdgDirs, ":")
	roots := make([]string, 0, len(dataDirs))
	for _, dataDir := range dataDirs {
		if dataDir == "" {
			continue
		}
		p := filepath.Join(dataDir, "fonts", "afm")
		p = os.Expand(p, func(s string) string {
			v, _ := lookup(s)
			return v
		})
		roots = append(roots, p)
	}
	return roots
}
