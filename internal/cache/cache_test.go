// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriePrefixRanking(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Yamaha", "manufacturer", 12)
	tr.Upsert("Yam-Tech", "manufacturer", 3)
	tr.Upsert("Honda", "manufacturer", 9)

	got := tr.PrefixMatches("ya", 10)
	require.Len(t, got, 2)
	assert.Equal(t, "Yamaha", got[0].Value)
	assert.Equal(t, "Yam-Tech", got[1].Value)
}

func TestTrieCaseInsensitive(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Ducati", "manufacturer", 5)

	got := tr.PrefixMatches("DUC", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Ducati", got[0].Value)
}

func TestTrieSubstringExcludesPrefixHits(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Yamaha", "manufacturer", 12)
	tr.Upsert("Honda-Yamaha-Imports", "manufacturer", 2)

	got := tr.SubstringMatches("ya", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "Honda-Yamaha-Imports", got[0].Value)
}

func TestTrieUpsertReplacesCount(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Yamaha", "manufacturer", 5)
	tr.Upsert("Yamaha", "manufacturer", 7)

	assert.Equal(t, 1, tr.Size())
	got := tr.PrefixMatches("yamaha", 1)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Count)
}

func TestTrieRankTiesAlphabetical(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Beta", "manufacturer", 4)
	tr.Upsert("Benelli", "manufacturer", 4)

	got := tr.PrefixMatches("be", 10)
	require.Len(t, got, 2)
	assert.Equal(t, "Benelli", got[0].Value)
	assert.Equal(t, "Beta", got[1].Value)
}

func TestTrieClear(t *testing.T) {
	tr := NewSuggestionTrie()
	tr.Upsert("Yamaha", "manufacturer", 1)
	tr.Clear()

	assert.Zero(t, tr.Size())
	assert.Empty(t, tr.PrefixMatches("ya", 10))
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Add("c", 3)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRUCache(4, 5*time.Millisecond)
	c.Add("a", 1)

	_, ok := c.Get("a")
	require.True(t, ok)

	time.Sleep(10 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestLRUPurge(t *testing.T) {
	c := NewLRUCache(4, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Purge()

	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
