package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuild(t *testing.T) {
	w, err := build(zap.NewNop())
	require.NoError(t, err)

	data := w.Bytes()
	require.Greater(t, len(data), 24)
	assert.Zero(t, len(data)%4)
	// table stream version 2.0
	assert.Equal(t, []byte{2, 0}, data[4:6])
}

func TestRun_Writes_Plain_And_Compressed_Output(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "tables.bin")
	compressed := filepath.Join(dir, "tables.sz")

	require.NoError(t, run(zap.NewNop(), plain))
	require.NoError(t, run(zap.NewNop(), compressed))

	raw, err := os.ReadFile(plain)
	require.NoError(t, err)
	packed, err := os.ReadFile(compressed)
	require.NoError(t, err)
	unpacked, err := snappy.Decode(nil, packed)
	require.NoError(t, err)

	// module version ids differ between runs, sizes do not
	assert.Len(t, unpacked, len(raw))
	assert.Equal(t, raw[:24], unpacked[:24])
}

func TestRun_Should_Report_Unwritable_Output(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "tables.bin")

	err := run(zap.NewNop(), out)

	assert.ErrorContains(t, err, "create output")
}
