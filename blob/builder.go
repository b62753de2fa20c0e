// Package blob implements the growable little-endian byte sink the metadata
// serializers write into.
package blob

import (
	"encoding/binary"
	"io"

	"ecmameta/common"
)

// Builder is an append-only byte buffer. The zero value is ready to use.
type Builder struct {
	buf []byte
}

func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// Count returns the number of bytes written so far.
func (b *Builder) Count() int {
	return len(b.buf)
}

// Bytes returns the written bytes. The slice aliases the builder's storage.
func (b *Builder) Bytes() []byte {
	return b.buf
}

func (b *Builder) WriteByte(v byte) error {
	b.buf = append(b.buf, v)
	return nil
}

func (b *Builder) WriteUint8(v uint8) {
	b.buf = append(b.buf, v)
}

func (b *Builder) WriteUint16(v uint16) {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
}

func (b *Builder) WriteUint32(v uint32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
}

func (b *Builder) WriteInt32(v int32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

func (b *Builder) WriteUint64(v uint64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
}

func (b *Builder) WriteBytes(p []byte) {
	b.buf = append(b.buf, p...)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteZeros appends n zero bytes.
func (b *Builder) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, 0)
	}
}

// WriteReference writes a table or heap reference using 2 bytes when small and
// 4 bytes otherwise. A small reference keeps only the low 16 bits of v.
func (b *Builder) WriteReference(v uint32, small bool) {
	if small {
		b.WriteUint16(uint16(v))
		return
	}
	b.WriteUint32(v)
}

// WriteCompressedInteger writes v using the ECMA-335 compressed unsigned
// integer encoding (1, 2 or 4 bytes, big-endian).
func (b *Builder) WriteCompressedInteger(v uint32) {
	switch {
	case v <= 0x7F:
		b.buf = append(b.buf, byte(v))
	case v <= 0x3FFF:
		b.buf = binary.BigEndian.AppendUint16(b.buf, uint16(v)|0x8000)
	default:
		common.Assert(v <= 0x1FFFFFFF, "compressed integer %#x out of range", v)
		b.buf = binary.BigEndian.AppendUint32(b.buf, v|0xC0000000)
	}
}

// Align pads with zero bytes up to the next multiple of alignment.
func (b *Builder) Align(alignment int) {
	common.Assert(alignment > 0 && alignment&(alignment-1) == 0, "alignment %d is not a power of two", alignment)
	b.WriteZeros(AlignUp(len(b.buf), alignment) - len(b.buf))
}

// WriteTo implements io.WriterTo.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// AlignUp rounds n up to a multiple of alignment, which must be a power of two.
func AlignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// CompressedIntegerSize is the number of bytes WriteCompressedInteger uses for v.
func CompressedIntegerSize(v uint32) int {
	switch {
	case v <= 0x7F:
		return 1
	case v <= 0x3FFF:
		return 2
	default:
		return 4
	}
}
