// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derekparker/trie"
)

const maxSuggestions = 3

type keywordEntry[R any] struct {
	keyword string
	rule    R
}

// keywordTable dispatches on exact keywords. A second trie answers the
// fuzzy and prefix queries behind "did you mean" hints and may hold words
// that are valid elsewhere but not dispatched by the table.
type keywordTable[R any] struct {
	trie  *trie.Trie
	hints *trie.Trie
}

func newKeywordTable[R any](entries []keywordEntry[R]) *keywordTable[R] {
	t := trie.New()
	hints := trie.New()
	for _, e := range entries {
		t.Add(e.keyword, e.rule)
		hints.Add(e.keyword, nil)
	}
	return &keywordTable[R]{trie: t, hints: hints}
}

// withHints adds words to the suggestions without making them dispatchable.
func (k *keywordTable[R]) withHints(words map[string]bool) *keywordTable[R] {
	for w := range words {
		k.hints.Add(w, nil)
	}
	return k
}

func (k *keywordTable[R]) lookup(word string) (R, bool) {
	var zero R
	if word == "" {
		return zero, false
	}
	node, ok := k.trie.Find(word)
	if !ok {
		return zero, false
	}
	rule, ok := node.Meta().(R)
	return rule, ok
}

func (k *keywordTable[R]) has(word string) bool {
	_, ok := k.lookup(word)
	return ok
}

// suggest returns up to maxSuggestions keywords that resemble word, closest
// in length first.
func (k *keywordTable[R]) suggest(word string) []string {
	if word == "" {
		return nil
	}
	found := k.hints.FuzzySearch(word)
	if len(found) == 0 && len(word) >= 3 {
		found = k.hints.PrefixSearch(word[:3])
	}
	if len(found) == 0 {
		found = k.hints.PrefixSearch(word[:1])
	}
	distance := func(s string) int {
		d := len(s) - len(word)
		if d < 0 {
			return -d
		}
		return d
	}
	sort.Slice(found, func(i, j int) bool {
		if distance(found[i]) != distance(found[j]) {
			return distance(found[i]) < distance(found[j])
		}
		return found[i] < found[j]
	})
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	return found
}

func (k *keywordTable[R]) unknown(word string) string {
	msg := fmt.Sprintf("unknown keyword %q", word)
	if hints := k.suggest(word); len(hints) > 0 {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, strings.Join(hints, ", "))
	}
	return msg
}

// sentinels open or close a section. Seeing one where a different one is
// expected is a structural error rather than a grammar error.
var sentinels = map[string]bool{
	"StartFontMetrics": true,
	"EndFontMetrics":   true,
	"StartCharMetrics": true,
	"EndCharMetrics":   true,
	"StartComposites":  true,
	"EndComposites":    true,
	"StartKernData":    true,
	"EndKernData":      true,
	"StartTrackKern":   true,
	"EndTrackKern":     true,
	"StartKernPairs":   true,
	"StartKernPairs0":  true,
	"StartKernPairs1":  true,
	"EndKernPairs":     true,
}
