// Package tables accumulates metadata table rows and serializes them as the
// table stream of an ECMA-335 metadata image, optionally followed by the
// portable debug tables.
//
// Rows are appended through Add* methods, each returning a 1-based handle to
// the new row. Rows are never removed or edited. Most tables must be filled in
// the order the format requires; six tables (Constant, CustomAttribute,
// FieldMarshal, DeclSecurity, MethodSemantics, CustomDebugInformation) accept
// rows in any order and are sorted when serialized.
package tables

import (
	"slices"

	"go.uber.org/zap"

	"ecmameta/common"
	"ecmameta/handles"
)

// Builder is not safe for concurrent use.
type Builder struct {
	opts Options

	// type system tables
	moduleTable                 []moduleRow
	typeRefTable                []typeRefRow
	typeDefTable                []typeDefRow
	fieldTable                  []fieldDefRow
	methodDefTable              []methodRow
	paramTable                  []paramRow
	interfaceImplTable          []interfaceImplRow
	memberRefTable              []memberRefRow
	constantTable               []constantRow
	customAttributeTable        []customAttributeRow
	fieldMarshalTable           []fieldMarshalRow
	declSecurityTable           []declSecurityRow
	classLayoutTable            []classLayoutRow
	fieldLayoutTable            []fieldLayoutRow
	standAloneSigTable          []standaloneSigRow
	eventMapTable               []eventMapRow
	eventTable                  []eventRow
	propertyMapTable            []propertyMapRow
	propertyTable               []propertyRow
	methodSemanticsTable        []methodSemanticsRow
	methodImplTable             []methodImplRow
	moduleRefTable              []moduleRefRow
	typeSpecTable               []typeSpecRow
	implMapTable                []implMapRow
	fieldRvaTable               []fieldRvaRow
	encLogTable                 []encLogRow
	encMapTable                 []encMapRow
	assemblyTable               []assemblyRow
	assemblyRefTable            []assemblyRefRow
	fileTable                   []fileRow
	exportedTypeTable           []exportedTypeRow
	manifestResourceTable       []manifestResourceRow
	nestedClassTable            []nestedClassRow
	genericParamTable           []genericParamRow
	methodSpecTable             []methodSpecRow
	genericParamConstraintTable []genericParamConstraintRow

	// debug tables
	documentTable               []documentRow
	methodDebugInformationTable []methodDebugInformationRow
	localScopeTable             []localScopeRow
	localVariableTable          []localVariableRow
	localConstantTable          []localConstantRow
	importScopeTable            []importScopeRow
	stateMachineMethodTable     []stateMachineMethodRow
	customDebugInformationTable []customDebugInformationRow

	constantSort               sortTracker
	customAttributeSort        sortTracker
	fieldMarshalSort           sortTracker
	declSecuritySort           sortTracker
	methodSemanticsSort        sortTracker
	customDebugInformationSort sortTracker
}

func NewBuilder(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o}
}

func (b *Builder) logger() *zap.Logger {
	return b.opts.logger
}

// SetCapacity reserves room for rowCount rows of table. It has no observable
// effect other than allocation. The indirection, processor and OS tables are
// accepted and ignored since the builder never writes them.
func (b *Builder) SetCapacity(table handles.TableIndex, rowCount int) error {
	if rowCount < 0 {
		return common.InvalidArgument("rowCount", "negative row count %d", rowCount)
	}

	switch table {
	case handles.Module:
		b.moduleTable = reserve(b.moduleTable, rowCount)
	case handles.TypeRef:
		b.typeRefTable = reserve(b.typeRefTable, rowCount)
	case handles.TypeDef:
		b.typeDefTable = reserve(b.typeDefTable, rowCount)
	case handles.Field:
		b.fieldTable = reserve(b.fieldTable, rowCount)
	case handles.MethodDef:
		b.methodDefTable = reserve(b.methodDefTable, rowCount)
	case handles.Param:
		b.paramTable = reserve(b.paramTable, rowCount)
	case handles.InterfaceImpl:
		b.interfaceImplTable = reserve(b.interfaceImplTable, rowCount)
	case handles.MemberRef:
		b.memberRefTable = reserve(b.memberRefTable, rowCount)
	case handles.Constant:
		b.constantTable = reserve(b.constantTable, rowCount)
	case handles.CustomAttribute:
		b.customAttributeTable = reserve(b.customAttributeTable, rowCount)
	case handles.FieldMarshal:
		b.fieldMarshalTable = reserve(b.fieldMarshalTable, rowCount)
	case handles.DeclSecurity:
		b.declSecurityTable = reserve(b.declSecurityTable, rowCount)
	case handles.ClassLayout:
		b.classLayoutTable = reserve(b.classLayoutTable, rowCount)
	case handles.FieldLayout:
		b.fieldLayoutTable = reserve(b.fieldLayoutTable, rowCount)
	case handles.StandAloneSig:
		b.standAloneSigTable = reserve(b.standAloneSigTable, rowCount)
	case handles.EventMap:
		b.eventMapTable = reserve(b.eventMapTable, rowCount)
	case handles.Event:
		b.eventTable = reserve(b.eventTable, rowCount)
	case handles.PropertyMap:
		b.propertyMapTable = reserve(b.propertyMapTable, rowCount)
	case handles.Property:
		b.propertyTable = reserve(b.propertyTable, rowCount)
	case handles.MethodSemantics:
		b.methodSemanticsTable = reserve(b.methodSemanticsTable, rowCount)
	case handles.MethodImpl:
		b.methodImplTable = reserve(b.methodImplTable, rowCount)
	case handles.ModuleRef:
		b.moduleRefTable = reserve(b.moduleRefTable, rowCount)
	case handles.TypeSpec:
		b.typeSpecTable = reserve(b.typeSpecTable, rowCount)
	case handles.ImplMap:
		b.implMapTable = reserve(b.implMapTable, rowCount)
	case handles.FieldRva:
		b.fieldRvaTable = reserve(b.fieldRvaTable, rowCount)
	case handles.EncLog:
		b.encLogTable = reserve(b.encLogTable, rowCount)
	case handles.EncMap:
		b.encMapTable = reserve(b.encMapTable, rowCount)
	case handles.Assembly:
		b.assemblyTable = reserve(b.assemblyTable, rowCount)
	case handles.AssemblyRef:
		b.assemblyRefTable = reserve(b.assemblyRefTable, rowCount)
	case handles.File:
		b.fileTable = reserve(b.fileTable, rowCount)
	case handles.ExportedType:
		b.exportedTypeTable = reserve(b.exportedTypeTable, rowCount)
	case handles.ManifestResource:
		b.manifestResourceTable = reserve(b.manifestResourceTable, rowCount)
	case handles.NestedClass:
		b.nestedClassTable = reserve(b.nestedClassTable, rowCount)
	case handles.GenericParam:
		b.genericParamTable = reserve(b.genericParamTable, rowCount)
	case handles.MethodSpec:
		b.methodSpecTable = reserve(b.methodSpecTable, rowCount)
	case handles.GenericParamConstraint:
		b.genericParamConstraintTable = reserve(b.genericParamConstraintTable, rowCount)
	case handles.Document:
		b.documentTable = reserve(b.documentTable, rowCount)
	case handles.MethodDebugInformation:
		b.methodDebugInformationTable = reserve(b.methodDebugInformationTable, rowCount)
	case handles.LocalScope:
		b.localScopeTable = reserve(b.localScopeTable, rowCount)
	case handles.LocalVariable:
		b.localVariableTable = reserve(b.localVariableTable, rowCount)
	case handles.LocalConstant:
		b.localConstantTable = reserve(b.localConstantTable, rowCount)
	case handles.ImportScope:
		b.importScopeTable = reserve(b.importScopeTable, rowCount)
	case handles.StateMachineMethod:
		b.stateMachineMethodTable = reserve(b.stateMachineMethodTable, rowCount)
	case handles.CustomDebugInformation:
		b.customDebugInformationTable = reserve(b.customDebugInformationTable, rowCount)
	default:
		if !common.OneOf(table, unwrittenTables...) {
			return common.InvalidArgument("table", "unknown table %s", table)
		}
	}
	return nil
}

// unwrittenTables exist in the format but are never produced by the builder.
var unwrittenTables = []handles.TableIndex{
	handles.FieldPtr,
	handles.MethodPtr,
	handles.ParamPtr,
	handles.EventPtr,
	handles.PropertyPtr,
	handles.AssemblyProcessor,
	handles.AssemblyOS,
	handles.AssemblyRefProcessor,
	handles.AssemblyRefOS,
}

func reserve[T any](rows []T, rowCount int) []T {
	if rowCount <= cap(rows) {
		return rows
	}
	return slices.Grow(rows, rowCount-len(rows))
}

// RowCounts returns the number of rows of every table, indexed by table
// number. Tables the builder never writes report zero.
func (b *Builder) RowCounts() [handles.TableCount]int {
	var counts [handles.TableCount]int

	counts[handles.Module] = len(b.moduleTable)
	counts[handles.TypeRef] = len(b.typeRefTable)
	counts[handles.TypeDef] = len(b.typeDefTable)
	counts[handles.Field] = len(b.fieldTable)
	counts[handles.MethodDef] = len(b.methodDefTable)
	counts[handles.Param] = len(b.paramTable)
	counts[handles.InterfaceImpl] = len(b.interfaceImplTable)
	counts[handles.MemberRef] = len(b.memberRefTable)
	counts[handles.Constant] = len(b.constantTable)
	counts[handles.CustomAttribute] = len(b.customAttributeTable)
	counts[handles.FieldMarshal] = len(b.fieldMarshalTable)
	counts[handles.DeclSecurity] = len(b.declSecurityTable)
	counts[handles.ClassLayout] = len(b.classLayoutTable)
	counts[handles.FieldLayout] = len(b.fieldLayoutTable)
	counts[handles.StandAloneSig] = len(b.standAloneSigTable)
	counts[handles.EventMap] = len(b.eventMapTable)
	counts[handles.Event] = len(b.eventTable)
	counts[handles.PropertyMap] = len(b.propertyMapTable)
	counts[handles.Property] = len(b.propertyTable)
	counts[handles.MethodSemantics] = len(b.methodSemanticsTable)
	counts[handles.MethodImpl] = len(b.methodImplTable)
	counts[handles.ModuleRef] = len(b.moduleRefTable)
	counts[handles.TypeSpec] = len(b.typeSpecTable)
	counts[handles.ImplMap] = len(b.implMapTable)
	counts[handles.FieldRva] = len(b.fieldRvaTable)
	counts[handles.EncLog] = len(b.encLogTable)
	counts[handles.EncMap] = len(b.encMapTable)
	counts[handles.Assembly] = len(b.assemblyTable)
	counts[handles.AssemblyRef] = len(b.assemblyRefTable)
	counts[handles.File] = len(b.fileTable)
	counts[handles.ExportedType] = len(b.exportedTypeTable)
	counts[handles.ManifestResource] = len(b.manifestResourceTable)
	counts[handles.NestedClass] = len(b.nestedClassTable)
	counts[handles.GenericParam] = len(b.genericParamTable)
	counts[handles.MethodSpec] = len(b.methodSpecTable)
	counts[handles.GenericParamConstraint] = len(b.genericParamConstraintTable)

	counts[handles.Document] = len(b.documentTable)
	counts[handles.MethodDebugInformation] = len(b.methodDebugInformationTable)
	counts[handles.LocalScope] = len(b.localScopeTable)
	counts[handles.LocalVariable] = len(b.localVariableTable)
	counts[handles.LocalConstant] = len(b.localConstantTable)
	counts[handles.ImportScope] = len(b.importScopeTable)
	counts[handles.StateMachineMethod] = len(b.stateMachineMethodTable)
	counts[handles.CustomDebugInformation] = len(b.customDebugInformationTable)

	return counts
}

// NeedsSorting reports whether rows of a self-sorting table were added out of
// key order. It is false for every other table.
func (b *Builder) NeedsSorting(table handles.TableIndex) bool {
	if t := b.tracker(table); t != nil {
		return t.dirty
	}
	return false
}

func (b *Builder) tracker(table handles.TableIndex) *sortTracker {
	switch table {
	case handles.Constant:
		return &b.constantSort
	case handles.CustomAttribute:
		return &b.customAttributeSort
	case handles.FieldMarshal:
		return &b.fieldMarshalSort
	case handles.DeclSecurity:
		return &b.declSecuritySort
	case handles.MethodSemantics:
		return &b.methodSemanticsSort
	case handles.CustomDebugInformation:
		return &b.customDebugInformationSort
	}
	return nil
}

// handle returns the handle of the row just appended to table.
func handle(table handles.TableIndex, count int) handles.EntityHandle {
	return handles.NewEntityHandle(table, count)
}
