package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := NewCache(path)
	key := CacheKey("abc123", "ollama", "gemma")
	c.Put(key, "Parses the input.")
	require.NoError(t, c.Save())

	reloaded := NewCache(path)
	desc, ok := reloaded.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Parses the input.", desc)
	assert.Equal(t, 1, reloaded.Len())
}

func TestCacheIgnoresEmptyDescriptions(t *testing.T) {
	c := NewCache("")
	c.Put("key", "")
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestCacheKeyDistinguishesProviderAndModel(t *testing.T) {
	base := CacheKey("hash", "ollama", "gemma")
	assert.NotEqual(t, base, CacheKey("hash", "openai", "gemma"))
	assert.NotEqual(t, base, CacheKey("hash", "ollama", "llama3"))
	assert.NotEqual(t, base, CacheKey("other", "ollama", "gemma"))
}

func TestCacheSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	c := NewCache(path)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryOnlyCacheSave(t *testing.T) {
	c := NewCache("")
	c.Put("key", "value")
	assert.NoError(t, c.Save())
}
