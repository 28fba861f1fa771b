package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitVersions(t *testing.T) {
	commit := MockCommitStore()

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("swap/1"), []byte("active")))
	require.NoError(t, cache.Write())

	first, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.NotEmpty(t, first.Hash)

	val, err := commit.Get([]byte("swap/1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("active"), val)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("swap/1"), []byte("redeemed")))
	require.NoError(t, cache.Write())
	second, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.NotEqual(t, first.Hash, second.Hash)
}

func TestDiscardedCacheNeverReachesTree(t *testing.T) {
	commit := MockCommitStore()

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("vault/ETH"), []byte("v")))
	cache.Discard()
	_, err := commit.Commit()
	require.NoError(t, err)

	val, err := commit.Get([]byte("vault/ETH"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestAdapterIterator(t *testing.T) {
	commit := MockCommitStore()
	cache := commit.CacheWrap()
	for _, k := range []string{"a/1", "a/2", "b/1"} {
		require.NoError(t, cache.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, cache.Write())
	_, err := commit.Commit()
	require.NoError(t, err)

	read := commit.CacheWrap()
	it, err := read.Iterator([]byte("a/"), []byte("a0"))
	require.NoError(t, err)
	models := store.ReadAll(it)
	require.Len(t, models, 2)
	assert.Equal(t, []byte("a/1"), models[0].Key)
	assert.Equal(t, []byte("a/2"), models[1].Key)

	rit, err := read.ReverseIterator(nil, nil)
	require.NoError(t, err)
	models = store.ReadAll(rit)
	require.Len(t, models, 3)
	assert.Equal(t, []byte("b/1"), models[0].Key)
}

func TestReloadFromDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "escrowd-iavl-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("k"), []byte("v")))
	require.NoError(t, cache.Write())
	saved, err := commit.Commit()
	require.NoError(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	id, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, saved.Version, id.Version)
	assert.Equal(t, saved.Hash, id.Hash)

	val, err := reopened.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}
