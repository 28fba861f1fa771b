//nolint
package store

import "github.com/iov-one/escrowd"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = escrowd.ReadOnlyKVStore
type SetDeleter = escrowd.SetDeleter
type KVStore = escrowd.KVStore
type Batch = escrowd.Batch
type Iterator = escrowd.Iterator
type CacheableKVStore = escrowd.CacheableKVStore
type KVCacheWrap = escrowd.KVCacheWrap
type CommitKVStore = escrowd.CommitKVStore
type CommitID = escrowd.CommitID
type Model = escrowd.Model
