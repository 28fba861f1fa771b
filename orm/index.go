package orm

import (
	"bytes"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
)

// Indexer calculates the secondary index key for a given object. Returning
// nil means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index is a non-unique secondary index. Each entry is stored as
//
//   prefix | len(value) | value | primary key
//
// with an empty value, so all primary keys for an index value can be found
// with a single prefix scan.
type Index struct {
	name    string
	prefix  []byte
	indexer Indexer
}

// NewIndex creates an index with the given name.
func NewIndex(name string, indexer Indexer) Index {
	return Index{
		name:    name,
		prefix:  append([]byte("_i."+name), ':'),
		indexer: indexer,
	}
}

// Update removes the entry of prev and adds the entry of save. Either may
// be nil on create and delete.
func (i Index) Update(db escrowd.KVStore, pk []byte, prev, save Object) error {
	var oldVal, newVal []byte
	var err error
	if prev != nil {
		if oldVal, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if newVal, err = i.indexer(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(oldVal, newVal) {
		return nil
	}

	if oldVal != nil {
		key, err := i.entryKey(oldVal, pk)
		if err != nil {
			return err
		}
		if err := db.Delete(key); err != nil {
			return err
		}
	}
	if newVal != nil {
		key, err := i.entryKey(newVal, pk)
		if err != nil {
			return err
		}
		if err := db.Set(key, []byte{}); err != nil {
			return err
		}
	}
	return nil
}

// GetAt returns all primary keys stored for the index value.
func (i Index) GetAt(db escrowd.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	prefix, err := i.entryKey(value, nil)
	if err != nil {
		return nil, err
	}
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var refs [][]byte
	for ; it.Valid(); it.Next() {
		refs = append(refs, append([]byte(nil), it.Key()[len(prefix):]...))
	}
	return refs, nil
}

func (i Index) entryKey(value, pk []byte) ([]byte, error) {
	if len(value) > 255 {
		return nil, errors.Wrapf(errors.ErrInput, "index %s value too long", i.name)
	}
	out := make([]byte, 0, len(i.prefix)+1+len(value)+len(pk))
	out = append(out, i.prefix...)
	out = append(out, byte(len(value)))
	out = append(out, value...)
	return append(out, pk...), nil
}

// indexQuery serves "<bucket>/<index>" queries, returning the stored
// objects referenced by the index value.
type indexQuery struct {
	idx    Index
	bucket Bucket
}

func (q indexQuery) Query(db escrowd.ReadOnlyKVStore, mod string, data []byte) ([]escrowd.Model, error) {
	if mod != escrowd.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %s", mod)
	}
	refs, err := q.idx.GetAt(db, data)
	if err != nil {
		return nil, err
	}
	var res []escrowd.Model
	for _, ref := range refs {
		key := q.bucket.DBKey(ref)
		val, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if val != nil {
			res = append(res, escrowd.Pair(key, val))
		}
	}
	return res, nil
}
