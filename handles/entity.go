package handles

import "fmt"

// EntityHandle refers to a row of a metadata table. RowID is 1-based; a handle
// with RowID 0 is nil regardless of its table. Handles never own row data.
type EntityHandle struct {
	Table TableIndex
	RowID int
}

// Nil is the handle that refers to nothing.
var Nil = EntityHandle{}

func NewEntityHandle(table TableIndex, rowID int) EntityHandle {
	return EntityHandle{Table: table, RowID: rowID}
}

func (h EntityHandle) IsNil() bool {
	return h.RowID == 0
}

// Kind returns the table the handle refers to.
func (h EntityHandle) Kind() TableIndex {
	return h.Table
}

// Token is the 32-bit metadata token: table number in the high byte, row id in
// the low three bytes.
func (h EntityHandle) Token() uint32 {
	return uint32(h.Table)<<24 | uint32(h.RowID)&0x00FFFFFF
}

func (h EntityHandle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%s(%d)", h.Table, h.RowID)
}

// ModuleDefinition is the only row of the Module table.
var ModuleDefinition = EntityHandle{Table: Module, RowID: 1}

// AssemblyDefinition is the only row of the Assembly table.
var AssemblyDefinition = EntityHandle{Table: Assembly, RowID: 1}

func TypeReference(rowID int) EntityHandle {
	return EntityHandle{Table: TypeRef, RowID: rowID}
}

func TypeDefinition(rowID int) EntityHandle {
	return EntityHandle{Table: TypeDef, RowID: rowID}
}

func FieldDefinition(rowID int) EntityHandle {
	return EntityHandle{Table: Field, RowID: rowID}
}

func MethodDefinition(rowID int) EntityHandle {
	return EntityHandle{Table: MethodDef, RowID: rowID}
}

func Parameter(rowID int) EntityHandle {
	return EntityHandle{Table: Param, RowID: rowID}
}

func InterfaceImplementation(rowID int) EntityHandle {
	return EntityHandle{Table: InterfaceImpl, RowID: rowID}
}

func MemberReference(rowID int) EntityHandle {
	return EntityHandle{Table: MemberRef, RowID: rowID}
}

func ConstantRow(rowID int) EntityHandle {
	return EntityHandle{Table: Constant, RowID: rowID}
}

func CustomAttributeRow(rowID int) EntityHandle {
	return EntityHandle{Table: CustomAttribute, RowID: rowID}
}

func DeclarativeSecurityAttribute(rowID int) EntityHandle {
	return EntityHandle{Table: DeclSecurity, RowID: rowID}
}

func StandaloneSignature(rowID int) EntityHandle {
	return EntityHandle{Table: StandAloneSig, RowID: rowID}
}

func EventDefinition(rowID int) EntityHandle {
	return EntityHandle{Table: Event, RowID: rowID}
}

func PropertyDefinition(rowID int) EntityHandle {
	return EntityHandle{Table: Property, RowID: rowID}
}

func MethodImplementation(rowID int) EntityHandle {
	return EntityHandle{Table: MethodImpl, RowID: rowID}
}

func ModuleReference(rowID int) EntityHandle {
	return EntityHandle{Table: ModuleRef, RowID: rowID}
}

func TypeSpecification(rowID int) EntityHandle {
	return EntityHandle{Table: TypeSpec, RowID: rowID}
}

func AssemblyReference(rowID int) EntityHandle {
	return EntityHandle{Table: AssemblyRef, RowID: rowID}
}

func AssemblyFile(rowID int) EntityHandle {
	return EntityHandle{Table: File, RowID: rowID}
}

func ExportedTypeRow(rowID int) EntityHandle {
	return EntityHandle{Table: ExportedType, RowID: rowID}
}

func ManifestResourceRow(rowID int) EntityHandle {
	return EntityHandle{Table: ManifestResource, RowID: rowID}
}

func GenericParameter(rowID int) EntityHandle {
	return EntityHandle{Table: GenericParam, RowID: rowID}
}

func MethodSpecification(rowID int) EntityHandle {
	return EntityHandle{Table: MethodSpec, RowID: rowID}
}

func GenericParameterConstraint(rowID int) EntityHandle {
	return EntityHandle{Table: GenericParamConstraint, RowID: rowID}
}

func DocumentRow(rowID int) EntityHandle {
	return EntityHandle{Table: Document, RowID: rowID}
}

func MethodDebugInformationRow(rowID int) EntityHandle {
	return EntityHandle{Table: MethodDebugInformation, RowID: rowID}
}

func LocalScopeRow(rowID int) EntityHandle {
	return EntityHandle{Table: LocalScope, RowID: rowID}
}

func LocalVariableRow(rowID int) EntityHandle {
	return EntityHandle{Table: LocalVariable, RowID: rowID}
}

func LocalConstantRow(rowID int) EntityHandle {
	return EntityHandle{Table: LocalConstant, RowID: rowID}
}

func ImportScopeRow(rowID int) EntityHandle {
	return EntityHandle{Table: ImportScope, RowID: rowID}
}

func CustomDebugInformationRow(rowID int) EntityHandle {
	return EntityHandle{Table: CustomDebugInformation, RowID: rowID}
}
