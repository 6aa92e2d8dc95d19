package kmp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitAndMiss(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	first := c.Get("ABAB")
	second := c.Get("ABAB")
	assert.Same(t, first, second)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCache_OptionsArePartOfKey(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	exact := c.Get("Hello")
	folded := c.Get("Hello", WithFoldCase())
	assert.NotSame(t, exact, folded)
	assert.False(t, exact.FoldCase())
	assert.True(t, folded.FoldCase())
	assert.Equal(t, 2, c.Len())
}

func TestCache_Eviction(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	c.Get("a")
	c.Get("b")
	c.Get("c") // evicts "a"

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)

	c.Get("a")
	assert.Equal(t, uint64(4), c.Stats().Misses)
}

func TestCache_DefaultSize(t *testing.T) {
	c, err := NewCache(0)
	require.NoError(t, err)

	for i := 0; i < DefaultCacheSize+10; i++ {
		c.Get(string(rune('a' + i%26)) + string(rune('0'+i/26)))
	}
	assert.Equal(t, DefaultCacheSize, c.Len())
}

func TestCache_Purge(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	c.Get("a")
	c.Get("b")
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c, err := NewCache(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := c.Get("AA")
			assert.Equal(t, []int{0, 1, 2}, m.FindAllString("AAAA"))
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, uint64(32), stats.Hits+stats.Misses)
	assert.Equal(t, 1, c.Len())
}
