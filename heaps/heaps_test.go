package heaps

import (
	"testing"

	"ecmameta/blob"
	"ecmameta/handles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrings_Offsets_And_Dedup(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, handles.StringHandle(0), b.GetOrAddString(""))

	foo := b.GetOrAddString("Foo")
	bar := b.GetOrAddString("Bar")
	assert.Equal(t, handles.StringHandle(1), foo)
	assert.Equal(t, handles.StringHandle(5), bar)
	assert.Equal(t, foo, b.GetOrAddString("Foo"))

	w := blob.NewBuilder(0)
	b.WriteStrings(w)
	assert.Equal(t, []byte("\x00Foo\x00Bar\x00\x00\x00\x00"), w.Bytes())
	assert.Equal(t, 12, b.Sizes().String)
}

func TestBlobs_Have_Compressed_Length_Prefix(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, handles.BlobHandle(0), b.GetOrAddBlob(nil))

	small := b.GetOrAddBlob([]byte{0x06, 0x08})
	large := b.GetOrAddBlob(make([]byte, 0x80))
	assert.Equal(t, handles.BlobHandle(1), small)
	assert.Equal(t, handles.BlobHandle(4), large)
	assert.Equal(t, small, b.GetOrAddBlob([]byte{0x06, 0x08}))

	w := blob.NewBuilder(0)
	b.WriteBlobs(w)
	data := w.Bytes()
	assert.Equal(t, []byte{0x00, 0x02, 0x06, 0x08, 0x80, 0x80}, data[:6])
	assert.Equal(t, blob.AlignUp(1+3+2+0x80, 4), len(data))
	assert.Equal(t, len(data), b.Sizes().Blob)
}

func TestGuids_Are_One_Based(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, handles.GuidHandle(0), b.GetOrAddGuid(uuid.Nil))

	id := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	assert.Equal(t, handles.GuidHandle(1), b.GetOrAddGuid(id))
	assert.Equal(t, handles.GuidHandle(1), b.GetOrAddGuid(id))

	mvid, h := b.NewModuleVersionID()
	assert.NotEqual(t, uuid.Nil, mvid)
	assert.Equal(t, handles.GuidHandle(2), h)
	assert.Equal(t, 32, b.Sizes().Guid)

	w := blob.NewBuilder(0)
	b.WriteGuids(w)
	require.Equal(t, 32, w.Count())
	assert.Equal(t, []byte{
		0x33, 0x22, 0x11, 0x00, 0x55, 0x44, 0x77, 0x66,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
	}, w.Bytes()[:16])
}
