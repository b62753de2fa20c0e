// Package codedindex translates entity handles into the tagged integers that
// metadata tables store when a column may reference more than one table.
//
// A coded index is rowID<<TagBits | tag, where tag is the position of the
// handle's table within the family. Translation is a pure function of the
// handle; it never looks at row data. A nil handle always translates to 0.
package codedindex

import (
	"math"

	"ecmameta/common"
	"ecmameta/handles"
)

// none marks tag values a family does not use.
const none = handles.TableIndex(0xFF)

// Family describes one coded index kind.
type Family struct {
	Name    string
	TagBits uint
	// Tables lists member tables by tag. Unused tags hold an invalid index.
	Tables []handles.TableIndex
}

var (
	TypeDefOrRefOrSpec = &Family{"TypeDefOrRefOrSpec", 2, []handles.TableIndex{
		handles.TypeDef, handles.TypeRef, handles.TypeSpec,
	}}

	HasConstant = &Family{"HasConstant", 2, []handles.TableIndex{
		handles.Field, handles.Param, handles.Property,
	}}

	HasCustomAttribute = &Family{"HasCustomAttribute", 5, hasCustomAttributeTables}

	HasFieldMarshal = &Family{"HasFieldMarshal", 1, []handles.TableIndex{
		handles.Field, handles.Param,
	}}

	HasDeclSecurity = &Family{"HasDeclSecurity", 2, []handles.TableIndex{
		handles.TypeDef, handles.MethodDef, handles.Assembly,
	}}

	MemberRefParent = &Family{"MemberRefParent", 3, []handles.TableIndex{
		handles.TypeDef, handles.TypeRef, handles.ModuleRef, handles.MethodDef, handles.TypeSpec,
	}}

	HasSemantics = &Family{"HasSemantics", 1, []handles.TableIndex{
		handles.Event, handles.Property,
	}}

	MethodDefOrRef = &Family{"MethodDefOrRef", 1, []handles.TableIndex{
		handles.MethodDef, handles.MemberRef,
	}}

	MemberForwarded = &Family{"MemberForwarded", 1, []handles.TableIndex{
		handles.Field, handles.MethodDef,
	}}

	Implementation = &Family{"Implementation", 2, []handles.TableIndex{
		handles.File, handles.AssemblyRef, handles.ExportedType,
	}}

	// Tags 0, 1 and 4 are reserved by the format.
	CustomAttributeType = &Family{"CustomAttributeType", 3, []handles.TableIndex{
		none, none, handles.MethodDef, handles.MemberRef,
	}}

	ResolutionScope = &Family{"ResolutionScope", 2, []handles.TableIndex{
		handles.Module, handles.ModuleRef, handles.AssemblyRef, handles.TypeRef,
	}}

	TypeOrMethodDef = &Family{"TypeOrMethodDef", 1, []handles.TableIndex{
		handles.TypeDef, handles.MethodDef,
	}}

	HasCustomDebugInformation = &Family{"HasCustomDebugInformation", 5, append(
		append([]handles.TableIndex{}, hasCustomAttributeTables...),
		handles.Document,
		handles.LocalScope,
		handles.LocalVariable,
		handles.LocalConstant,
		handles.ImportScope,
	)}
)

var hasCustomAttributeTables = []handles.TableIndex{
	handles.MethodDef,
	handles.Field,
	handles.TypeRef,
	handles.TypeDef,
	handles.Param,
	handles.InterfaceImpl,
	handles.MemberRef,
	handles.Module,
	handles.DeclSecurity,
	handles.Property,
	handles.Event,
	handles.StandAloneSig,
	handles.ModuleRef,
	handles.TypeSpec,
	handles.Assembly,
	handles.AssemblyRef,
	handles.File,
	handles.ExportedType,
	handles.ManifestResource,
	handles.GenericParam,
	handles.GenericParamConstraint,
	handles.MethodSpec,
}

// Families lists every coded index family, in the order the sizing layer
// reports them.
var Families = []*Family{
	TypeDefOrRefOrSpec,
	HasConstant,
	HasCustomAttribute,
	HasFieldMarshal,
	HasDeclSecurity,
	MemberRefParent,
	HasSemantics,
	MethodDefOrRef,
	MemberForwarded,
	Implementation,
	CustomAttributeType,
	ResolutionScope,
	TypeOrMethodDef,
	HasCustomDebugInformation,
}

// Tag returns the tag of table within the family.
func (f *Family) Tag(table handles.TableIndex) (int, bool) {
	for tag, t := range f.Tables {
		if t == table && t != none {
			return tag, true
		}
	}
	return 0, false
}

// Members returns the member tables without reserved tags.
func (f *Family) Members() []handles.TableIndex {
	res := make([]handles.TableIndex, 0, len(f.Tables))
	for _, t := range f.Tables {
		if t != none {
			res = append(res, t)
		}
	}
	return res
}

// Encode returns the coded index of h, or 0 when h is nil. param names the
// caller's argument in the returned error.
func (f *Family) Encode(h handles.EntityHandle, param string) (int, error) {
	if h.IsNil() {
		return 0, nil
	}
	tag, ok := f.Tag(h.Table)
	if !ok {
		return 0, common.InvalidArgument(param, "%s is not a %s handle", h, f.Name)
	}
	if h.RowID < 0 || h.RowID >= 1<<(32-f.TagBits) {
		return 0, common.InvalidArgument(param, "row id %d out of range for %s", h.RowID, f.Name)
	}
	return h.RowID<<f.TagBits | tag, nil
}

// Decode splits a coded index into its handle. It is the inverse of Encode and
// exists for diagnostics and tests.
func (f *Family) Decode(value int) handles.EntityHandle {
	if value == 0 {
		return handles.Nil
	}
	tag := value & (1<<f.TagBits - 1)
	if tag >= len(f.Tables) || f.Tables[tag] == none {
		return handles.Nil
	}
	return handles.NewEntityHandle(f.Tables[tag], value>>f.TagBits)
}

func (f *Family) String() string {
	return f.Name
}

func ToTypeDefOrRefOrSpec(h handles.EntityHandle, param string) (int, error) {
	return TypeDefOrRefOrSpec.Encode(h, param)
}

func ToHasConstant(h handles.EntityHandle, param string) (int, error) {
	return HasConstant.Encode(h, param)
}

func ToHasCustomAttribute(h handles.EntityHandle, param string) (int, error) {
	return HasCustomAttribute.Encode(h, param)
}

func ToHasFieldMarshal(h handles.EntityHandle, param string) (int, error) {
	return HasFieldMarshal.Encode(h, param)
}

func ToHasDeclSecurity(h handles.EntityHandle, param string) (int, error) {
	return HasDeclSecurity.Encode(h, param)
}

func ToMemberRefParent(h handles.EntityHandle, param string) (int, error) {
	return MemberRefParent.Encode(h, param)
}

func ToHasSemantics(h handles.EntityHandle, param string) (int, error) {
	return HasSemantics.Encode(h, param)
}

func ToMethodDefOrRef(h handles.EntityHandle, param string) (int, error) {
	return MethodDefOrRef.Encode(h, param)
}

func ToMemberForwarded(h handles.EntityHandle, param string) (int, error) {
	return MemberForwarded.Encode(h, param)
}

func ToImplementation(h handles.EntityHandle, param string) (int, error) {
	return Implementation.Encode(h, param)
}

func ToCustomAttributeType(h handles.EntityHandle, param string) (int, error) {
	return CustomAttributeType.Encode(h, param)
}

func ToResolutionScope(h handles.EntityHandle, param string) (int, error) {
	return ResolutionScope.Encode(h, param)
}

func ToTypeOrMethodDef(h handles.EntityHandle, param string) (int, error) {
	return TypeOrMethodDef.Encode(h, param)
}

func ToHasCustomDebugInformation(h handles.EntityHandle, param string) (int, error) {
	return HasCustomDebugInformation.Encode(h, param)
}

// RowID checks that h is nil or refers to table and returns its row id. It is
// the translation used by columns that reference a single table.
func RowID(h handles.EntityHandle, table handles.TableIndex, param string) (int, error) {
	if h.IsNil() {
		return 0, nil
	}
	if h.Table != table {
		return 0, common.InvalidArgument(param, "%s is not a %s handle", h, table)
	}
	if h.RowID < 0 || uint64(h.RowID) > math.MaxUint32 {
		return 0, common.InvalidArgument(param, "row id %d out of range for %s", h.RowID, table)
	}
	return h.RowID, nil
}
