package sizes

import (
	"testing"

	"ecmameta/codedindex"
	"ecmameta/handles"

	"github.com/stretchr/testify/assert"
)

func counts(pairs map[handles.TableIndex]int) [handles.TableCount]int {
	var res [handles.TableCount]int
	for t, n := range pairs {
		res[t] = n
	}
	return res
}

func TestNew_Small_Layout(t *testing.T) {
	ms := New(counts(map[handles.TableIndex]int{
		handles.Module:  1,
		handles.TypeDef: 1,
	}), HeapSizes{String: 100, Guid: 16, Blob: 10})

	assert.True(t, ms.IsPresent(handles.Module))
	assert.True(t, ms.IsPresent(handles.TypeDef))
	assert.False(t, ms.IsPresent(handles.Field))
	assert.Equal(t, uint64(1<<0|1<<2), ms.PresentTablesMask())

	assert.True(t, ms.StringReferenceIsSmall())
	assert.True(t, ms.GuidReferenceIsSmall())
	assert.True(t, ms.BlobReferenceIsSmall())
	assert.Equal(t, byte(0), ms.HeapSizeFlags())

	assert.Equal(t, 10, ms.RowSize(handles.Module))
	assert.Equal(t, 14, ms.RowSize(handles.TypeDef))

	assert.Equal(t, 24+2*4, ms.TableStreamHeaderSize())
	// header + module + typedef + terminator, aligned to 4
	assert.Equal(t, 60, ms.MetadataTableStreamSize())
}

func TestNew_Large_Heaps(t *testing.T) {
	ms := New(counts(map[handles.TableIndex]int{handles.Module: 1}),
		HeapSizes{String: 0x10000, Guid: 16, Blob: 0x20000})

	assert.False(t, ms.StringReferenceIsSmall())
	assert.True(t, ms.GuidReferenceIsSmall())
	assert.False(t, ms.BlobReferenceIsSmall())
	assert.Equal(t, StringHeapLarge|BlobHeapLarge, ms.HeapSizeFlags())
	assert.Equal(t, 2+4+2+2+2, ms.RowSize(handles.Module))
}

func TestNew_Coded_Index_Width_Depends_On_Tag_Bits(t *testing.T) {
	// HasCustomAttribute uses 5 tag bits: 2^11 rows is the first large count.
	ms := New(counts(map[handles.TableIndex]int{handles.MethodDef: 1<<11 - 1}), HeapSizes{})
	assert.True(t, ms.CodedIndexIsSmall(codedindex.HasCustomAttribute))

	ms = New(counts(map[handles.TableIndex]int{handles.MethodDef: 1 << 11}), HeapSizes{})
	assert.False(t, ms.CodedIndexIsSmall(codedindex.HasCustomAttribute))
	assert.True(t, ms.CodedIndexIsSmall(codedindex.TypeDefOrRefOrSpec))
	// MethodDefOrRef has a single tag bit.
	assert.True(t, ms.CodedIndexIsSmall(codedindex.MethodDefOrRef))
	assert.True(t, ms.ReferenceIsSmall(handles.MethodDef))

	ms = New(counts(map[handles.TableIndex]int{handles.MethodDef: 1 << 16}), HeapSizes{})
	assert.False(t, ms.ReferenceIsSmall(handles.MethodDef))
	assert.False(t, ms.CodedIndexIsSmall(codedindex.MethodDefOrRef))
	assert.Equal(t, 4+2+2+2+2+2, ms.RowSize(handles.MethodDef))
	assert.Equal(t, 4+2+2+2+2+4, ms.RowSize(handles.TypeDef))
}

func TestNew_Minimal_Delta_Uses_Large_References(t *testing.T) {
	ms := New(counts(map[handles.TableIndex]int{handles.Module: 1, handles.EncLog: 2}), HeapSizes{}, WithMinimalDelta())

	assert.True(t, ms.IsMinimalDelta())
	assert.False(t, ms.StringReferenceIsSmall())
	assert.False(t, ms.ReferenceIsSmall(handles.TypeDef))
	assert.False(t, ms.CodedIndexIsSmall(codedindex.TypeOrMethodDef))
	assert.Equal(t, StringHeapLarge|GuidHeapLarge|BlobHeapLarge|EnCDeltas|DeletedMarks, ms.HeapSizeFlags())
	assert.Equal(t, 2+4*4, ms.RowSize(handles.Module))
	assert.Equal(t, 8, ms.RowSize(handles.EncLog))
}

func TestSortedTablesMask(t *testing.T) {
	ms := New(counts(map[handles.TableIndex]int{
		handles.LocalScope: 1,
		handles.Document:   1,
	}), HeapSizes{})
	assert.Equal(t, SortedTypeSystemTables|handles.LocalScope.Mask(), ms.SortedTablesMask())

	var external [handles.TableCount]int
	external[handles.MethodDef] = 1 << 16
	ms = New(counts(map[handles.TableIndex]int{
		handles.LocalScope:             1,
		handles.CustomDebugInformation: 1,
	}), HeapSizes{}, WithExternalRowCounts(external))

	assert.True(t, ms.IsStandaloneDebugMetadata())
	assert.Equal(t, handles.LocalScope.Mask()|handles.CustomDebugInformation.Mask(), ms.SortedTablesMask())
	assert.False(t, ms.IsPresent(handles.MethodDef))
	assert.False(t, ms.ReferenceIsSmall(handles.MethodDef))
	assert.False(t, ms.CodedIndexIsSmall(codedindex.HasCustomDebugInformation))
}

func TestSortedTypeSystemTables_Bits(t *testing.T) {
	var want uint64
	for _, table := range []handles.TableIndex{
		handles.InterfaceImpl, handles.Constant, handles.CustomAttribute, handles.FieldMarshal,
		handles.DeclSecurity, handles.ClassLayout, handles.FieldLayout, handles.MethodSemantics,
		handles.MethodImpl, handles.ImplMap, handles.FieldRva, handles.NestedClass,
		handles.GenericParam, handles.GenericParamConstraint,
	} {
		want |= table.Mask()
	}
	assert.Equal(t, want, SortedTypeSystemTables)
}

func TestRowSize_Every_Serialized_Table_Is_Non_Zero(t *testing.T) {
	ms := New([handles.TableCount]int{}, HeapSizes{})
	for _, table := range handles.SerializationOrder {
		assert.Greater(t, ms.RowSize(table), 0, table.String())
	}
	assert.Equal(t, 0, ms.RowSize(handles.FieldPtr))
	// empty stream is the header plus terminator
	assert.Equal(t, 28, ms.MetadataTableStreamSize())
}

func TestComputeRowSize_Should_Panic_On_Unwritten_Table(t *testing.T) {
	ms := New([handles.TableCount]int{}, HeapSizes{})

	assert.Panics(t, func() { ms.computeRowSize(handles.FieldPtr) })
	assert.Panics(t, func() { ms.computeRowSize(handles.TableIndex(0x2D)) })
}
