package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// note is a minimal protobuf model used to exercise buckets.
type note struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *note) Reset()         { *m = note{} }
func (m *note) String() string { return proto.CompactTextString(m) }
func (*note) ProtoMessage()    {}

func (m *note) Validate() error {
	if len(m.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	if m.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func (m *note) Copy() Model {
	cpy := *m
	cpy.Owner = append([]byte(nil), m.Owner...)
	return &cpy
}

func newNoteBucket() Bucket {
	return NewBucket("notes", NewSimpleObj(nil, new(note))).
		WithIndex("owner", func(obj Object) ([]byte, error) {
			n, ok := obj.Value().(*note)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
			}
			return n.Owner, nil
		})
}

func TestBucketSaveAndGet(t *testing.T) {
	db := store.MemStore()
	b := newNoteBucket()

	obj, err := b.Get(db, []byte("first"))
	require.NoError(t, err)
	assert.Nil(t, obj)

	require.NoError(t, b.Save(db, NewSimpleObj([]byte("first"), &note{Owner: []byte("alice"), Count: 7})))

	obj, err = b.Get(db, []byte("first"))
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, []byte("first"), obj.Key())
	assert.Equal(t, int64(7), obj.Value().(*note).Count)

	ok, err := b.Has(db, []byte("first"))
	require.NoError(t, err)
	assert.True(t, ok)

	// the raw key is prefixed with the bucket name
	raw, err := db.Get([]byte("notes:first"))
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := newNoteBucket()

	err := b.Save(db, NewSimpleObj([]byte("bad"), &note{Count: 1}))
	assert.True(t, errors.ErrEmpty.Is(err))

	err = b.Save(db, NewSimpleObj(nil, &note{Owner: []byte("x")}))
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestBucketCreateDuplicate(t *testing.T) {
	db := store.MemStore()
	b := newNoteBucket()

	obj := NewSimpleObj([]byte("k"), &note{Owner: []byte("alice")})
	require.NoError(t, b.Create(db, obj))
	err := b.Create(db, obj)
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := newNoteBucket()

	require.NoError(t, b.Save(db, NewSimpleObj([]byte("a"), &note{Owner: []byte("alice")})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("b"), &note{Owner: []byte("alice")})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("c"), &note{Owner: []byte("bob")})))

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, []byte("a"), objs[0].Key())
	assert.Equal(t, []byte("b"), objs[1].Key())

	// a prefix of another owner must not match
	objs, err = b.GetIndexed(db, "owner", []byte("ali"))
	require.NoError(t, err)
	assert.Len(t, objs, 0)

	// moving an object updates the index
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("a"), &note{Owner: []byte("bob")})))
	objs, err = b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Len(t, objs, 1)
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	require.NoError(t, err)
	assert.Len(t, objs, 2)

	require.NoError(t, b.Delete(db, []byte("c")))
	objs, err = b.GetIndexed(db, "owner", []byte("bob"))
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, []byte("a"), objs[0].Key())

	_, err = b.GetIndexed(db, "missing", []byte("bob"))
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newNoteBucket()
	qr := escrowd.NewQueryRouter()
	b.Register("", qr)

	for _, k := range []string{"eth/1", "eth/2", "btc/1"} {
		require.NoError(t, b.Save(db, NewSimpleObj([]byte(k), &note{Owner: []byte("carl")})))
	}

	h := qr.Handler("/notes")
	require.NotNil(t, h)

	res, err := h.Query(db, escrowd.KeyQueryMod, []byte("eth/1"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("notes:eth/1"), res[0].Key)

	res, err = h.Query(db, escrowd.KeyQueryMod, []byte("eth/9"))
	require.NoError(t, err)
	assert.Len(t, res, 0)

	res, err = h.Query(db, escrowd.PrefixQueryMod, []byte("eth/"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	_, err = h.Query(db, "unknown", nil)
	assert.True(t, errors.ErrInput.Is(err))

	idx := qr.Handler("/notes/owner")
	require.NotNil(t, idx)
	res, err = idx.Query(db, escrowd.KeyQueryMod, []byte("carl"))
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		end    []byte
	}{
		"empty":     {nil, nil},
		"simple":    {[]byte("ab"), []byte("ac")},
		"carry":     {[]byte{1, 0xff}, []byte{2, 0}},
		"unbounded": {[]byte{0xff, 0xff}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestIllegalBucketName(t *testing.T) {
	assert.Panics(t, func() { NewBucket("No", NewSimpleObj(nil, new(note))) })
	assert.Panics(t, func() { newNoteBucket().WithIndex("owner", nil) })
}
