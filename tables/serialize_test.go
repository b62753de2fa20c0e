package tables

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ecmameta/blob"
	"ecmameta/handles"
	"ecmameta/sizes"
)

func serialize(t *testing.T, b *Builder, opts ...sizes.Option) ([]byte, *sizes.MetadataSizes) {
	t.Helper()
	ms := sizes.New(b.RowCounts(), sizes.HeapSizes{}, opts...)
	w := blob.NewBuilder(0)
	require.NoError(t, b.Serialize(w, ms, 0x2000, 0x4000))
	return w.Bytes(), ms
}

func u16(data []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(data[off:])
}

func u32(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off:])
}

func TestSerialize_Module_And_Type_Definition(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddModule(0, 1, 1, 0, 0)
	require.NoError(t, err)
	_, err = b.AddTypeDefinition(0x1, 0, 0x0A, handles.Nil, handles.FieldDefinition(1), handles.MethodDefinition(1))
	require.NoError(t, err)

	data, ms := serialize(t, b)

	expected := []byte{
		// reserved, version 2.0, heap sizes, reserved
		0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x01,
		// present: Module, TypeDef
		0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// sorted
		0x00, 0xfa, 0x01, 0x33, 0x00, 0x16, 0x00, 0x00,
		// row counts
		0x01, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		// Module: generation, name, mvid, encId, encBaseId
		0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
		// TypeDef: flags, name, namespace, extends, field list, method list
		0x01, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
		// terminator and padding
		0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, expected, data)
	assert.Equal(t, ms.MetadataTableStreamSize(), len(data))
}

func TestSerialize_Should_Echo_Row_Counts(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		_, err := b.AddTypeReference(handles.ModuleDefinition, 0, 1)
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := b.AddModuleReference(1)
		require.NoError(t, err)
	}

	data, _ := serialize(t, b)

	assert.Equal(t, handles.TypeRef.Mask()|handles.ModuleRef.Mask(), binary.LittleEndian.Uint64(data[8:]))
	assert.Equal(t, uint32(3), u32(data, 24))
	assert.Equal(t, uint32(2), u32(data, 28))
}

func TestSerialize_Should_Sort_Dirty_Table_Stably(t *testing.T) {
	b := NewBuilder()
	ctor := handles.MemberReference(1)
	for i, row := range []int{5, 3, 5, 1} {
		_, err := b.AddCustomAttribute(handles.MethodDefinition(row), ctor, handles.BlobHandle(10*(i+1)))
		require.NoError(t, err)
	}
	require.True(t, b.NeedsSorting(handles.CustomAttribute))

	data, _ := serialize(t, b)

	// header is 24 bytes plus one row count, rows are 3 small columns
	const start, rowSize = 28, 6
	var parents []uint16
	var values []uint16
	for i := 0; i < 4; i++ {
		off := start + i*rowSize
		parents = append(parents, u16(data, off))
		assert.Equal(t, uint16(1<<3|3), u16(data, off+2))
		values = append(values, u16(data, off+4))
	}
	assert.Equal(t, []uint16{1 << 5, 3 << 5, 5 << 5, 5 << 5}, parents)
	assert.Equal(t, []uint16{40, 20, 10, 30}, values, "equal keys keep insertion order")

	// the builder itself is untouched
	assert.Equal(t, handles.BlobHandle(10), b.customAttributeTable[0].value)
	again, _ := serialize(t, b)
	assert.Equal(t, data, again)
}

func TestSerialize_Clean_Table_Keeps_Insertion_Order(t *testing.T) {
	b := NewBuilder()
	for i, row := range []int{1, 1, 2} {
		_, err := b.AddMarshallingDescriptor(handles.Parameter(row), handles.BlobHandle(i+1))
		require.NoError(t, err)
	}
	require.False(t, b.NeedsSorting(handles.FieldMarshal))

	data, _ := serialize(t, b)

	const start = 28
	assert.Equal(t, []uint16{1<<1 | 1, 1}, []uint16{u16(data, start), u16(data, start+2)})
	assert.Equal(t, []uint16{1<<1 | 1, 2}, []uint16{u16(data, start+4), u16(data, start+6)})
	assert.Equal(t, []uint16{2<<1 | 1, 3}, []uint16{u16(data, start+8), u16(data, start+10)})
}

func TestSerialize_Should_Write_Nil_References_As_Zero(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddTypeDefinition(0, 0, 1, handles.Nil, handles.Nil, handles.Nil)
	require.NoError(t, err)

	data, _ := serialize(t, b)

	// flags, name, namespace precede extends
	assert.Equal(t, uint16(0), u16(data, 28+4+2+2))
}

func TestSerialize_Should_Follow_Canonical_Table_Order(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddCustomAttribute(handles.TypeDefinition(1), handles.MethodDefinition(1), 0x33)
	require.NoError(t, err)
	_, err = b.AddTypeDefinition(0x77, 0, 1, handles.Nil, handles.Nil, handles.Nil)
	require.NoError(t, err)

	data, ms := serialize(t, b)

	typeDefAt := ms.TableStreamHeaderSize()
	customAttributeAt := typeDefAt + ms.RowSize(handles.TypeDef)
	assert.Equal(t, uint32(0x77), u32(data, typeDefAt))
	assert.Equal(t, uint16(1<<5|3), u16(data, customAttributeAt))
	assert.Equal(t, uint16(1<<3|2), u16(data, customAttributeAt+2))
	assert.Equal(t, uint16(0x33), u16(data, customAttributeAt+4))
}

func TestSerialize_Method_And_Field_RVAs(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddMethodDefinition(0, 0, 1, 1, -1, handles.Nil)
	require.NoError(t, err)
	_, err = b.AddMethodDefinition(0, 0, 1, 1, 0x10, handles.Nil)
	require.NoError(t, err)
	_, err = b.AddFieldRelativeVirtualAddress(handles.FieldDefinition(1), 8)
	require.NoError(t, err)

	data, ms := serialize(t, b)

	methods := ms.TableStreamHeaderSize()
	assert.Equal(t, uint32(0), u32(data, methods))
	assert.Equal(t, uint32(0x2010), u32(data, methods+ms.RowSize(handles.MethodDef)))

	fieldRvas := methods + 2*ms.RowSize(handles.MethodDef)
	assert.Equal(t, uint32(0x4008), u32(data, fieldRvas))
	assert.Equal(t, uint16(1), u16(data, fieldRvas+4))
}

func TestSerialize_Constant_And_EncLog_Layout(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddConstant(handles.PropertyDefinition(2), ConstantString, 0x21)
	require.NoError(t, err)
	_, err = b.AddEncLogEntry(handles.TypeDefinition(4), EditAndContinueAddField)
	require.NoError(t, err)

	data, ms := serialize(t, b)

	constants := ms.TableStreamHeaderSize()
	assert.Equal(t, []byte{byte(ConstantString), 0x00}, data[constants:constants+2])
	assert.Equal(t, uint16(2<<2|2), u16(data, constants+2))
	assert.Equal(t, uint16(0x21), u16(data, constants+4))

	encLog := constants + ms.RowSize(handles.Constant)
	assert.Equal(t, uint32(0x02000004), u32(data, encLog))
	assert.Equal(t, uint32(EditAndContinueAddField), u32(data, encLog+4))
}

func TestSerialize_Custom_Debug_Information_Sorted_By_Parent_And_Kind(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddCustomDebugInformation(handles.MethodDefinition(2), 1, 0x10)
	require.NoError(t, err)
	_, err = b.AddCustomDebugInformation(handles.MethodDefinition(1), 2, 0x20)
	require.NoError(t, err)
	_, err = b.AddCustomDebugInformation(handles.MethodDefinition(1), 1, 0x30)
	require.NoError(t, err)

	data, ms := serialize(t, b)

	start := ms.TableStreamHeaderSize()
	rowSize := ms.RowSize(handles.CustomDebugInformation)
	var values []uint16
	for i := 0; i < 3; i++ {
		values = append(values, u16(data, start+i*rowSize+4))
	}
	assert.Equal(t, []uint16{0x30, 0x20, 0x10}, values)
	assert.Equal(t, handles.CustomDebugInformation.Mask(), binary.LittleEndian.Uint64(data[16:])&handles.CustomDebugInformation.Mask())
}

func TestSerialize_Standalone_Debug_Metadata(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddDocument(1, 1, 2, 2)
	require.NoError(t, err)
	_, err = b.AddMethodDebugInformation(handles.DocumentRow(1), 3)
	require.NoError(t, err)
	_, err = b.AddLocalScope(handles.MethodDefinition(1), handles.Nil, handles.Nil, handles.Nil, 0, 10)
	require.NoError(t, err)

	var external [handles.TableCount]int
	external[handles.MethodDef] = 0x10000
	data, ms := serialize(t, b, sizes.WithExternalRowCounts(external))

	assert.Equal(t, handles.LocalScope.Mask(), binary.LittleEndian.Uint64(data[16:]))
	scope := ms.TableStreamHeaderSize() + ms.RowSize(handles.Document) + ms.RowSize(handles.MethodDebugInformation)
	// method column is 4 bytes wide because of the external MethodDef count
	assert.Equal(t, uint32(1), u32(data, scope))
	assert.Equal(t, len(data), ms.MetadataTableStreamSize())
}

func TestSerialize_Rejects_Missing_Collaborators(t *testing.T) {
	b := NewBuilder()
	ms := sizes.New(b.RowCounts(), sizes.HeapSizes{})

	assert.Error(t, b.Serialize(nil, ms, 0, 0))
	assert.Error(t, b.Serialize(blob.NewBuilder(0), nil, 0, 0))
}

func TestSerialize_Empty_Builder(t *testing.T) {
	data, ms := serialize(t, NewBuilder())

	assert.Len(t, data, 28)
	assert.Equal(t, 24, ms.TableStreamHeaderSize())
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(data[8:]))
}

func TestSerialize_Skips_Tables_Absent_From_Layout(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddModuleReference(0x1234)
	require.NoError(t, err)
	var none [handles.TableCount]int
	ms := sizes.New(none, sizes.HeapSizes{})
	w := blob.NewBuilder(0)

	require.NoError(t, b.Serialize(w, ms, 0, 0))

	empty, _ := serialize(t, NewBuilder())
	assert.Equal(t, empty, w.Bytes(), "no row bytes follow a header that declares no tables")
}

func TestSerialize_Logs_Sort_Passes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBuilder(WithLogger(zap.New(core)))
	_, err := b.AddDeclarativeSecurityAttribute(handles.MethodDefinition(2), 2, 1)
	require.NoError(t, err)
	_, err = b.AddDeclarativeSecurityAttribute(handles.TypeDefinition(1), 2, 1)
	require.NoError(t, err)

	serialize(t, b)

	sorts := logs.FilterMessage("sorting table").All()
	require.Len(t, sorts, 1)
	assert.Equal(t, "DeclSecurity", sorts[0].ContextMap()["table"])
}
