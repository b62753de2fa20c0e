// Package heaps builds the #Strings, #Blob and #GUID heaps whose handles the
// metadata tables store.
package heaps

import (
	"ecmameta/blob"
	"ecmameta/handles"
	"ecmameta/sizes"

	"github.com/google/uuid"
)

// Builder accumulates heap entries. Equal values share one entry.
type Builder struct {
	strings     []byte
	stringIndex map[string]handles.StringHandle

	blobs     []byte
	blobIndex map[string]handles.BlobHandle

	guids     []uuid.UUID
	guidIndex map[uuid.UUID]handles.GuidHandle
}

func NewBuilder() *Builder {
	return &Builder{
		// offset 0 of #Strings and #Blob is the empty value
		strings:     []byte{0},
		stringIndex: map[string]handles.StringHandle{"": 0},
		blobs:       []byte{0},
		blobIndex:   map[string]handles.BlobHandle{"": 0},
		guidIndex:   map[uuid.UUID]handles.GuidHandle{uuid.Nil: 0},
	}
}

// GetOrAddString returns the handle of s, adding it as a NUL-terminated UTF-8
// entry when it is new. The contents are not validated.
func (b *Builder) GetOrAddString(s string) handles.StringHandle {
	if h, ok := b.stringIndex[s]; ok {
		return h
	}
	h := handles.StringHandle(len(b.strings))
	b.strings = append(b.strings, s...)
	b.strings = append(b.strings, 0)
	b.stringIndex[s] = h
	return h
}

// GetOrAddBlob returns the handle of value, adding it with a compressed length
// prefix when it is new.
func (b *Builder) GetOrAddBlob(value []byte) handles.BlobHandle {
	key := string(value)
	if h, ok := b.blobIndex[key]; ok {
		return h
	}
	h := handles.BlobHandle(len(b.blobs))
	var prefix blob.Builder
	prefix.WriteCompressedInteger(uint32(len(value)))
	b.blobs = append(b.blobs, prefix.Bytes()...)
	b.blobs = append(b.blobs, value...)
	b.blobIndex[key] = h
	return h
}

// GetOrAddGuid returns the 1-based index of id. The nil GUID maps to 0.
func (b *Builder) GetOrAddGuid(id uuid.UUID) handles.GuidHandle {
	if h, ok := b.guidIndex[id]; ok {
		return h
	}
	b.guids = append(b.guids, id)
	h := handles.GuidHandle(len(b.guids))
	b.guidIndex[id] = h
	return h
}

// NewModuleVersionID adds a freshly generated module version id.
func (b *Builder) NewModuleVersionID() (uuid.UUID, handles.GuidHandle) {
	id := uuid.New()
	return id, b.GetOrAddGuid(id)
}

// Sizes reports the aligned heap sizes for the layout decision.
func (b *Builder) Sizes() sizes.HeapSizes {
	return sizes.HeapSizes{
		String: blob.AlignUp(len(b.strings), 4),
		Guid:   len(b.guids) * 16,
		Blob:   blob.AlignUp(len(b.blobs), 4),
	}
}

func (b *Builder) WriteStrings(w *blob.Builder) {
	w.WriteBytes(b.strings)
	w.Align(4)
}

func (b *Builder) WriteBlobs(w *blob.Builder) {
	w.WriteBytes(b.blobs)
	w.Align(4)
}

// WriteGuids writes each GUID in its 16-byte mixed-endian wire form.
func (b *Builder) WriteGuids(w *blob.Builder) {
	for _, id := range b.guids {
		w.WriteBytes(guidBytes(id))
	}
}

// guidBytes converts the RFC 4122 byte order of id to the little-endian
// Data1/Data2/Data3 layout of the #GUID heap.
func guidBytes(id uuid.UUID) []byte {
	res := make([]byte, 16)
	res[0], res[1], res[2], res[3] = id[3], id[2], id[1], id[0]
	res[4], res[5] = id[5], id[4]
	res[6], res[7] = id[7], id[6]
	copy(res[8:], id[8:])
	return res
}
