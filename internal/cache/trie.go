// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package cache provides the in-memory structures behind typeahead
// suggestions and filter-option caching.
package cache

import (
	"sort"
	"strings"
	"sync"
)

// trieNode is one node of the suggestion trie.
type trieNode struct {
	children map[rune]*trieNode
	terminal bool
	value    string // original casing
	kind     string
	count    int
}

// SuggestionEntry is one indexed suggestion term.
type SuggestionEntry struct {
	Value string
	Kind  string
	Count int
}

// SuggestionTrie is a thread-safe, case-insensitive prefix tree over
// catalog terms. Each entry carries its kind (manufacturer or model) and
// the number of motorcycles it matches; lookups rank by count descending,
// then alphabetically. The index is rebuilt wholesale on catalog mutation,
// so Upsert sets counts rather than incrementing them.
type SuggestionTrie struct {
	mu   sync.RWMutex
	root *trieNode
	size int
}

// NewSuggestionTrie creates an empty index.
func NewSuggestionTrie() *SuggestionTrie {
	return &SuggestionTrie{root: newNode()}
}

func newNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Upsert inserts or updates a term with its kind and match count.
func (t *SuggestionTrie) Upsert(value, kind string, count int) {
	if value == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range strings.ToLower(value) {
		if node.children[ch] == nil {
			node.children[ch] = newNode()
		}
		node = node.children[ch]
	}

	if !node.terminal {
		t.size++
	}
	node.terminal = true
	node.value = value
	node.kind = kind
	node.count = count
}

// PrefixMatches returns the entries whose term starts with prefix, ranked
// by count descending then alphabetically, at most limit.
func (t *SuggestionTrie) PrefixMatches(prefix string, limit int) []SuggestionEntry {
	if prefix == "" || limit <= 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for _, ch := range strings.ToLower(prefix) {
		if node.children[ch] == nil {
			return nil
		}
		node = node.children[ch]
	}

	var results []SuggestionEntry
	collect(node, &results)
	rank(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SubstringMatches returns entries containing q anywhere other than as a
// prefix, ranked like PrefixMatches. The full walk is acceptable because
// the term set is small (distinct manufacturers and models).
func (t *SuggestionTrie) SubstringMatches(q string, limit int) []SuggestionEntry {
	if q == "" || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(q)

	t.mu.RLock()
	defer t.mu.RUnlock()

	var results []SuggestionEntry
	var all []SuggestionEntry
	collect(t.root, &all)
	for _, e := range all {
		lower := strings.ToLower(e.Value)
		if strings.Contains(lower, needle) && !strings.HasPrefix(lower, needle) {
			results = append(results, e)
		}
	}
	rank(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Size returns the number of indexed terms.
func (t *SuggestionTrie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Clear drops all entries. Used at the start of a rebuild.
func (t *SuggestionTrie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newNode()
	t.size = 0
}

func collect(node *trieNode, out *[]SuggestionEntry) {
	if node == nil {
		return
	}
	if node.terminal {
		*out = append(*out, SuggestionEntry{Value: node.value, Kind: node.kind, Count: node.count})
	}
	for _, child := range node.children {
		collect(child, out)
	}
}

func rank(results []SuggestionEntry) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Value < results[j].Value
	})
}
