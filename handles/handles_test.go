package handles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityHandle_Nil(t *testing.T) {
	assert.True(t, Nil.IsNil())
	assert.True(t, TypeDefinition(0).IsNil())
	assert.False(t, TypeDefinition(1).IsNil())
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "TypeDef(3)", TypeDefinition(3).String())
}

func TestEntityHandle_Token(t *testing.T) {
	assert.Equal(t, uint32(0x02000001), TypeDefinition(1).Token())
	assert.Equal(t, uint32(0x06000102), MethodDefinition(0x102).Token())
	assert.Equal(t, uint32(0x37000005), CustomDebugInformationRow(5).Token())
}

func TestTableIndex_Names_And_Validity(t *testing.T) {
	assert.Equal(t, "CustomAttribute", CustomAttribute.String())
	assert.Equal(t, "Table(46)", TableIndex(0x2E).String())
	assert.False(t, TableIndex(0x2E).Valid())
	assert.False(t, TableIndex(TableCount).Valid())
	assert.True(t, FieldPtr.Valid())
	assert.False(t, FieldPtr.IsSerialized())
	assert.True(t, Field.IsSerialized())
	assert.True(t, LocalScope.IsDebug())
	assert.False(t, GenericParamConstraint.IsDebug())
}

func TestSerializationOrder_Covers_Every_Serialized_Table_Once(t *testing.T) {
	seen := map[TableIndex]bool{}
	for _, table := range SerializationOrder {
		assert.False(t, seen[table], "duplicate %s", table)
		seen[table] = true
	}

	for i := 0; i < TableCount; i++ {
		table := TableIndex(i)
		assert.Equal(t, table.IsSerialized(), seen[table], "table %s", table)
	}

	assert.Equal(t, 44, len(SerializationOrder))
	assert.Equal(t, Module, SerializationOrder[0])
	assert.Equal(t, CustomDebugInformation, SerializationOrder[len(SerializationOrder)-1])
}
