package blob

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Writes_Little_Endian(t *testing.T) {
	b := NewBuilder(0)
	b.WriteUint8(0x01)
	b.WriteUint16(0x0302)
	b.WriteUint32(0x07060504)
	b.WriteUint64(0x0f0e0d0c0b0a0908)
	b.WriteInt32(-1)

	want := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		0xff, 0xff, 0xff, 0xff,
	}
	assert.Equal(t, want, b.Bytes())
	assert.Equal(t, len(want), b.Count())
}

func TestBuilder_WriteReference(t *testing.T) {
	var b Builder
	b.WriteReference(0x1234, true)
	b.WriteReference(0x1234, false)
	assert.Equal(t, []byte{0x34, 0x12, 0x34, 0x12, 0x00, 0x00}, b.Bytes())

	b.WriteReference(0x12345, true)
	assert.Equal(t, []byte{0x45, 0x23}, b.Bytes()[6:])
}

func TestBuilder_Align(t *testing.T) {
	var b Builder
	b.Align(4)
	assert.Equal(t, 0, b.Count())

	b.WriteUint8(1)
	b.Align(4)
	assert.Equal(t, []byte{1, 0, 0, 0}, b.Bytes())

	b.WriteUint32(2)
	b.Align(4)
	assert.Equal(t, 8, b.Count())

	assert.Panics(t, func() { b.Align(3) })
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 4))
	assert.Equal(t, 4, AlignUp(1, 4))
	assert.Equal(t, 4, AlignUp(4, 4))
	assert.Equal(t, 8, AlignUp(5, 4))
	assert.Equal(t, 16, AlignUp(9, 8))
}

func TestBuilder_WriteCompressedInteger(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0x03, []byte{0x03}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0x80, 0x80}},
		{0x2E57, []byte{0xAE, 0x57}},
		{0x3FFF, []byte{0xBF, 0xFF}},
		{0x4000, []byte{0xC0, 0x00, 0x40, 0x00}},
		{0x1FFFFFFF, []byte{0xDF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		var b Builder
		b.WriteCompressedInteger(tt.v)
		assert.Equal(t, tt.want, b.Bytes(), "%#x", tt.v)
		assert.Equal(t, len(tt.want), CompressedIntegerSize(tt.v), "%#x", tt.v)
	}
}

func TestBuilder_WriteTo(t *testing.T) {
	b := NewBuilder(8)
	_, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	b.WriteZeros(2)
	require.NoError(t, b.WriteByte('z'))

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 0, 'z'}, out.Bytes())
}
