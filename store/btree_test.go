package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, kv ReadOnlyKVStore, key string) []byte {
	t.Helper()
	val, err := kv.Get([]byte(key))
	require.NoError(t, err)
	return val
}

func mustSet(t *testing.T, kv SetDeleter, key, value string) {
	t.Helper()
	require.NoError(t, kv.Set([]byte(key), []byte(value)))
}

func keys(models []Model) []string {
	var res []string
	for _, m := range models {
		res = append(res, string(m.Key))
	}
	return res
}

func TestCacheWrapWrite(t *testing.T) {
	base := MemStore()
	mustSet(t, base, "a", "1")

	cache := base.CacheWrap()
	mustSet(t, cache, "b", "2")
	require.NoError(t, cache.Delete([]byte("a")))

	// not visible in the parent before write
	assert.Equal(t, []byte("1"), mustGet(t, base, "a"))
	assert.Nil(t, mustGet(t, base, "b"))
	// visible in the cache
	assert.Nil(t, mustGet(t, cache, "a"))
	assert.Equal(t, []byte("2"), mustGet(t, cache, "b"))

	require.NoError(t, cache.Write())
	assert.Nil(t, mustGet(t, base, "a"))
	assert.Equal(t, []byte("2"), mustGet(t, base, "b"))

	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	mustSet(t, base, "a", "1")

	cache := base.CacheWrap()
	mustSet(t, cache, "a", "changed")
	mustSet(t, cache, "c", "3")
	cache.Discard()

	assert.Equal(t, []byte("1"), mustGet(t, base, "a"))
	assert.Nil(t, mustGet(t, base, "c"))

	// a discarded cache has nothing to write
	require.NoError(t, cache.Write())
	assert.Equal(t, []byte("1"), mustGet(t, base, "a"))
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	mustSet(t, inner, "k", "v")
	require.NoError(t, inner.Write())
	assert.Equal(t, []byte("v"), mustGet(t, outer, "k"))
	assert.Nil(t, mustGet(t, base, "k"))

	require.NoError(t, outer.Write())
	assert.Equal(t, []byte("v"), mustGet(t, base, "k"))
}

func TestCacheWrapIterator(t *testing.T) {
	base := MemStore()
	mustSet(t, base, "swap/1", "a")
	mustSet(t, base, "swap/2", "b")
	mustSet(t, base, "swap/4", "d")
	mustSet(t, base, "vault/1", "x")

	cache := base.CacheWrap()
	mustSet(t, cache, "swap/3", "c")
	require.NoError(t, cache.Delete([]byte("swap/2")))
	mustSet(t, cache, "swap/4", "dd")

	it, err := cache.Iterator([]byte("swap/"), []byte("swap0"))
	require.NoError(t, err)
	models := ReadAll(it)
	assert.Equal(t, []string{"swap/1", "swap/3", "swap/4"}, keys(models))
	assert.Equal(t, []byte("dd"), models[2].Value)

	rit, err := cache.ReverseIterator([]byte("swap/"), []byte("swap0"))
	require.NoError(t, err)
	assert.Equal(t, []string{"swap/4", "swap/3", "swap/1"}, keys(ReadAll(rit)))

	all, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"swap/1", "swap/3", "swap/4", "vault/1"}, keys(ReadAll(all)))

	tail, err := cache.Iterator([]byte("swap/4"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"swap/4", "vault/1"}, keys(ReadAll(tail)))

	head, err := cache.Iterator(nil, []byte("swap/3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"swap/1"}, keys(ReadAll(head)))
}

func TestSliceIteratorPanicsPastEnd(t *testing.T) {
	it := NewSliceIterator([]Model{{Key: []byte("a"), Value: []byte("1")}})
	assert.True(t, it.Valid())
	it.Next()
	assert.False(t, it.Valid())
	assert.Panics(t, func() { it.Next() })
}
