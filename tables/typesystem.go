package tables

import (
	"ecmameta/codedindex"
	"ecmameta/common"
	"ecmameta/handles"
)

// AddModule adds the Module row. generation must fit in 16 bits.
func (b *Builder) AddModule(
	generation int,
	name handles.StringHandle,
	mvid handles.GuidHandle,
	encID handles.GuidHandle,
	encBaseID handles.GuidHandle,
) (handles.EntityHandle, error) {
	var a args
	gen := a.u16(generation, "generation")
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.moduleTable = append(b.moduleTable, moduleRow{
		generation:      gen,
		name:            name,
		moduleVersionID: mvid,
		encID:           encID,
		encBaseID:       encBaseID,
	})
	return handle(handles.Module, len(b.moduleTable)), nil
}

func (b *Builder) AddAssembly(
	name handles.StringHandle,
	version *Version,
	culture handles.StringHandle,
	publicKey handles.BlobHandle,
	flags AssemblyFlags,
	hashAlgorithm AssemblyHashAlgorithm,
) (handles.EntityHandle, error) {
	if version == nil {
		return handles.Nil, common.InvalidArgument("version", "version is required")
	}

	b.assemblyTable = append(b.assemblyTable, assemblyRow{
		hashAlgorithm: uint32(hashAlgorithm),
		version:       *version,
		flags:         uint32(flags),
		publicKey:     publicKey,
		name:          name,
		culture:       culture,
	})
	return handle(handles.Assembly, len(b.assemblyTable)), nil
}

func (b *Builder) AddAssemblyReference(
	name handles.StringHandle,
	version *Version,
	culture handles.StringHandle,
	publicKeyOrToken handles.BlobHandle,
	flags AssemblyFlags,
	hashValue handles.BlobHandle,
) (handles.EntityHandle, error) {
	if version == nil {
		return handles.Nil, common.InvalidArgument("version", "version is required")
	}

	b.assemblyRefTable = append(b.assemblyRefTable, assemblyRefRow{
		version:          *version,
		flags:            uint32(flags),
		publicKeyOrToken: publicKeyOrToken,
		name:             name,
		culture:          culture,
		hashValue:        hashValue,
	})
	return handle(handles.AssemblyRef, len(b.assemblyRefTable)), nil
}

// AddTypeDefinition adds a TypeDef row. baseType may be nil, a TypeDef, a
// TypeRef or a TypeSpec. fieldList and methodList point at the first field and
// method owned by the type.
func (b *Builder) AddTypeDefinition(
	attrs TypeAttributes,
	namespace handles.StringHandle,
	name handles.StringHandle,
	baseType handles.EntityHandle,
	fieldList handles.EntityHandle,
	methodList handles.EntityHandle,
) (handles.EntityHandle, error) {
	var a args
	row := typeDefRow{
		flags:      uint32(attrs),
		name:       name,
		namespace:  namespace,
		extends:    a.coded(codedindex.TypeDefOrRefOrSpec, baseType, "baseType"),
		fieldList:  a.row(fieldList, handles.Field, "fieldList"),
		methodList: a.row(methodList, handles.MethodDef, "methodList"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.typeDefTable = append(b.typeDefTable, row)
	return handle(handles.TypeDef, len(b.typeDefTable)), nil
}

// AddTypeLayout adds a ClassLayout row. Rows must be added in type order.
func (b *Builder) AddTypeLayout(typ handles.EntityHandle, packingSize uint16, size uint32) (handles.EntityHandle, error) {
	var a args
	row := classLayoutRow{
		packingSize: packingSize,
		classSize:   size,
		parent:      a.row(typ, handles.TypeDef, "type"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.classLayoutTable = append(b.classLayoutTable, row)
	return handle(handles.ClassLayout, len(b.classLayoutTable)), nil
}

func (b *Builder) AddInterfaceImplementation(typ, iface handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := interfaceImplRow{
		class: a.row(typ, handles.TypeDef, "type"),
		iface: a.coded(codedindex.TypeDefOrRefOrSpec, iface, "implementedInterface"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.interfaceImplTable = append(b.interfaceImplTable, row)
	return handle(handles.InterfaceImpl, len(b.interfaceImplTable)), nil
}

// AddNestedType adds a NestedClass row. Rows must be added in nested type
// order.
func (b *Builder) AddNestedType(typ, enclosingType handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := nestedClassRow{
		nestedClass:    a.row(typ, handles.TypeDef, "type"),
		enclosingClass: a.row(enclosingType, handles.TypeDef, "enclosingType"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.nestedClassTable = append(b.nestedClassTable, row)
	return handle(handles.NestedClass, len(b.nestedClassTable)), nil
}

// AddTypeReference adds a TypeRef row. resolutionScope may be nil, a Module,
// ModuleRef, AssemblyRef or TypeRef.
func (b *Builder) AddTypeReference(
	resolutionScope handles.EntityHandle,
	namespace handles.StringHandle,
	name handles.StringHandle,
) (handles.EntityHandle, error) {
	var a args
	row := typeRefRow{
		resolutionScope: a.coded(codedindex.ResolutionScope, resolutionScope, "resolutionScope"),
		name:            name,
		namespace:       namespace,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.typeRefTable = append(b.typeRefTable, row)
	return handle(handles.TypeRef, len(b.typeRefTable)), nil
}

func (b *Builder) AddTypeSpecification(signature handles.BlobHandle) (handles.EntityHandle, error) {
	b.typeSpecTable = append(b.typeSpecTable, typeSpecRow{signature: signature})
	return handle(handles.TypeSpec, len(b.typeSpecTable)), nil
}

func (b *Builder) AddStandaloneSignature(signature handles.BlobHandle) (handles.EntityHandle, error) {
	b.standAloneSigTable = append(b.standAloneSigTable, standaloneSigRow{signature: signature})
	return handle(handles.StandAloneSig, len(b.standAloneSigTable)), nil
}

func (b *Builder) AddProperty(
	attrs PropertyAttributes,
	name handles.StringHandle,
	signature handles.BlobHandle,
) (handles.EntityHandle, error) {
	b.propertyTable = append(b.propertyTable, propertyRow{
		flags:     uint16(attrs),
		name:      name,
		signature: signature,
	})
	return handle(handles.Property, len(b.propertyTable)), nil
}

func (b *Builder) AddPropertyMap(typ, propertyList handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := propertyMapRow{
		parent:       a.row(typ, handles.TypeDef, "type"),
		propertyList: a.row(propertyList, handles.Property, "propertyList"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.propertyMapTable = append(b.propertyMapTable, row)
	return handle(handles.PropertyMap, len(b.propertyMapTable)), nil
}

// AddEvent adds an Event row. typ is a TypeDef, TypeRef or TypeSpec.
func (b *Builder) AddEvent(attrs EventAttributes, name handles.StringHandle, typ handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := eventRow{
		flags:     uint16(attrs),
		name:      name,
		eventType: a.coded(codedindex.TypeDefOrRefOrSpec, typ, "type"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.eventTable = append(b.eventTable, row)
	return handle(handles.Event, len(b.eventTable)), nil
}

func (b *Builder) AddEventMap(typ, eventList handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := eventMapRow{
		parent:    a.row(typ, handles.TypeDef, "type"),
		eventList: a.row(eventList, handles.Event, "eventList"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.eventMapTable = append(b.eventMapTable, row)
	return handle(handles.EventMap, len(b.eventMapTable)), nil
}

// AddConstant adds a Constant row for a Field, Param or Property. Rows may be
// added in any order.
func (b *Builder) AddConstant(
	parent handles.EntityHandle,
	typeCode ConstantTypeCode,
	value handles.BlobHandle,
) (handles.EntityHandle, error) {
	var a args
	row := constantRow{
		typeCode: uint8(typeCode),
		parent:   a.coded(codedindex.HasConstant, parent, "parent"),
		value:    value,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.constantSort.observe(uint64(row.parent))
	b.constantTable = append(b.constantTable, row)
	return handle(handles.Constant, len(b.constantTable)), nil
}

// AddMethodSemantics associates method with an Event or Property. Rows may be
// added in any order.
func (b *Builder) AddMethodSemantics(
	association handles.EntityHandle,
	semantics MethodSemanticsAttributes,
	method handles.EntityHandle,
) (handles.EntityHandle, error) {
	var a args
	row := methodSemanticsRow{
		semantic:    uint16(semantics),
		method:      a.row(method, handles.MethodDef, "methodDefinition"),
		association: a.coded(codedindex.HasSemantics, association, "association"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.methodSemanticsSort.observe(uint64(row.association))
	b.methodSemanticsTable = append(b.methodSemanticsTable, row)
	return handle(handles.MethodSemantics, len(b.methodSemanticsTable)), nil
}

// AddCustomAttribute adds a CustomAttribute row. constructor is a MethodDef or
// MemberRef. Rows may be added in any order.
func (b *Builder) AddCustomAttribute(
	parent handles.EntityHandle,
	constructor handles.EntityHandle,
	value handles.BlobHandle,
) (handles.EntityHandle, error) {
	var a args
	row := customAttributeRow{
		parent: a.coded(codedindex.HasCustomAttribute, parent, "parent"),
		typ:    a.coded(codedindex.CustomAttributeType, constructor, "constructor"),
		value:  value,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.customAttributeSort.observe(uint64(row.parent))
	b.customAttributeTable = append(b.customAttributeTable, row)
	return handle(handles.CustomAttribute, len(b.customAttributeTable)), nil
}

func (b *Builder) AddMethodSpecification(method handles.EntityHandle, instantiation handles.BlobHandle) (handles.EntityHandle, error) {
	var a args
	row := methodSpecRow{
		method:        a.coded(codedindex.MethodDefOrRef, method, "method"),
		instantiation: instantiation,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.methodSpecTable = append(b.methodSpecTable, row)
	return handle(handles.MethodSpec, len(b.methodSpecTable)), nil
}

func (b *Builder) AddModuleReference(moduleName handles.StringHandle) (handles.EntityHandle, error) {
	b.moduleRefTable = append(b.moduleRefTable, moduleRefRow{name: moduleName})
	return handle(handles.ModuleRef, len(b.moduleRefTable)), nil
}

// AddParameter adds a Param row. sequenceNumber must fit in 16 bits; 0 names
// the return value.
func (b *Builder) AddParameter(attrs ParameterAttributes, name handles.StringHandle, sequenceNumber int) (handles.EntityHandle, error) {
	var a args
	row := paramRow{
		flags:    uint16(attrs),
		sequence: a.u16(sequenceNumber, "sequenceNumber"),
		name:     name,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.paramTable = append(b.paramTable, row)
	return handle(handles.Param, len(b.paramTable)), nil
}

// AddGenericParameter adds a GenericParam row owned by a TypeDef or MethodDef.
// Rows must be added in (owner, index) order.
func (b *Builder) AddGenericParameter(
	parent handles.EntityHandle,
	attrs GenericParameterAttributes,
	name handles.StringHandle,
	index int,
) (handles.EntityHandle, error) {
	var a args
	row := genericParamRow{
		number: a.u16(index, "index"),
		flags:  uint16(attrs),
		owner:  a.coded(codedindex.TypeOrMethodDef, parent, "parent"),
		name:   name,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.genericParamTable = append(b.genericParamTable, row)
	return handle(handles.GenericParam, len(b.genericParamTable)), nil
}

// AddGenericParameterConstraint adds a GenericParamConstraint row. Rows must be
// added in generic parameter order.
func (b *Builder) AddGenericParameterConstraint(genericParameter, constraint handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := genericParamConstraintRow{
		owner:      a.row(genericParameter, handles.GenericParam, "genericParameter"),
		constraint: a.coded(codedindex.TypeDefOrRefOrSpec, constraint, "constraint"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.genericParamConstraintTable = append(b.genericParamConstraintTable, row)
	return handle(handles.GenericParamConstraint, len(b.genericParamConstraintTable)), nil
}

func (b *Builder) AddFieldDefinition(
	attrs FieldAttributes,
	name handles.StringHandle,
	signature handles.BlobHandle,
) (handles.EntityHandle, error) {
	b.fieldTable = append(b.fieldTable, fieldDefRow{
		flags:     uint16(attrs),
		name:      name,
		signature: signature,
	})
	return handle(handles.Field, len(b.fieldTable)), nil
}

// AddFieldLayout adds a FieldLayout row. Rows must be added in field order.
func (b *Builder) AddFieldLayout(field handles.EntityHandle, offset int) (handles.EntityHandle, error) {
	var a args
	row := fieldLayoutRow{
		offset: a.i32(offset, "offset"),
		field:  a.row(field, handles.Field, "field"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.fieldLayoutTable = append(b.fieldLayoutTable, row)
	return handle(handles.FieldLayout, len(b.fieldLayoutTable)), nil
}

// AddMarshallingDescriptor adds a FieldMarshal row for a Field or Param. Rows
// may be added in any order.
func (b *Builder) AddMarshallingDescriptor(parent handles.EntityHandle, descriptor handles.BlobHandle) (handles.EntityHandle, error) {
	var a args
	row := fieldMarshalRow{
		parent:     a.coded(codedindex.HasFieldMarshal, parent, "parent"),
		nativeType: descriptor,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.fieldMarshalSort.observe(uint64(row.parent))
	b.fieldMarshalTable = append(b.fieldMarshalTable, row)
	return handle(handles.FieldMarshal, len(b.fieldMarshalTable)), nil
}

// AddFieldRelativeVirtualAddress adds a FieldRva row. offset is relative to the
// start of the mapped field data stream. Rows must be added in field order.
func (b *Builder) AddFieldRelativeVirtualAddress(field handles.EntityHandle, offset int) (handles.EntityHandle, error) {
	var a args
	row := fieldRvaRow{
		offset: a.u32(offset, "offset"),
		field:  a.row(field, handles.Field, "field"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.fieldRvaTable = append(b.fieldRvaTable, row)
	return handle(handles.FieldRva, len(b.fieldRvaTable)), nil
}

// AddMethodDefinition adds a MethodDef row. bodyOffset is relative to the start
// of the method body stream, or -1 for a method without a body.
func (b *Builder) AddMethodDefinition(
	attrs MethodAttributes,
	implAttrs MethodImplAttributes,
	name handles.StringHandle,
	signature handles.BlobHandle,
	bodyOffset int,
	paramList handles.EntityHandle,
) (handles.EntityHandle, error) {
	var a args
	if bodyOffset < -1 {
		a.fail("bodyOffset", "negative offset %d", bodyOffset)
	}
	row := methodRow{
		bodyOffset: a.i32(bodyOffset, "bodyOffset"),
		implFlags:  uint16(implAttrs),
		flags:      uint16(attrs),
		name:       name,
		signature:  signature,
		paramList:  a.row(paramList, handles.Param, "parameterList"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.methodDefTable = append(b.methodDefTable, row)
	return handle(handles.MethodDef, len(b.methodDefTable)), nil
}

// AddMethodImport adds an ImplMap row forwarding method to an unmanaged entry
// point of module. Rows must be added in method order.
func (b *Builder) AddMethodImport(
	method handles.EntityHandle,
	attrs MethodImportAttributes,
	name handles.StringHandle,
	module handles.EntityHandle,
) (handles.EntityHandle, error) {
	var a args
	row := implMapRow{
		mappingFlags:    uint16(attrs),
		memberForwarded: a.coded(codedindex.MemberForwarded, method, "method"),
		importName:      name,
		importScope:     a.row(module, handles.ModuleRef, "module"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.implMapTable = append(b.implMapTable, row)
	return handle(handles.ImplMap, len(b.implMapTable)), nil
}

// AddMethodImplementation adds a MethodImpl row. body and declaration are
// MethodDef or MemberRef handles. Rows must be added in type order.
func (b *Builder) AddMethodImplementation(typ, body, declaration handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := methodImplRow{
		class:      a.row(typ, handles.TypeDef, "type"),
		methodBody: a.coded(codedindex.MethodDefOrRef, body, "methodBody"),
		methodDecl: a.coded(codedindex.MethodDefOrRef, declaration, "methodDeclaration"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.methodImplTable = append(b.methodImplTable, row)
	return handle(handles.MethodImpl, len(b.methodImplTable)), nil
}

func (b *Builder) AddMemberReference(
	parent handles.EntityHandle,
	name handles.StringHandle,
	signature handles.BlobHandle,
) (handles.EntityHandle, error) {
	var a args
	row := memberRefRow{
		class:     a.coded(codedindex.MemberRefParent, parent, "parent"),
		name:      name,
		signature: signature,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.memberRefTable = append(b.memberRefTable, row)
	return handle(handles.MemberRef, len(b.memberRefTable)), nil
}

// AddManifestResource adds a ManifestResource row. implementation is nil for a
// resource embedded in this image, otherwise a File or AssemblyRef.
func (b *Builder) AddManifestResource(
	attrs ManifestResourceAttributes,
	name handles.StringHandle,
	implementation handles.EntityHandle,
	offset uint32,
) (handles.EntityHandle, error) {
	var a args
	row := manifestResourceRow{
		offset:         offset,
		flags:          uint32(attrs),
		name:           name,
		implementation: a.coded(codedindex.Implementation, implementation, "implementation"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.manifestResourceTable = append(b.manifestResourceTable, row)
	return handle(handles.ManifestResource, len(b.manifestResourceTable)), nil
}

func (b *Builder) AddAssemblyFile(
	name handles.StringHandle,
	hashValue handles.BlobHandle,
	containsMetadata bool,
) (handles.EntityHandle, error) {
	b.fileTable = append(b.fileTable, fileRow{
		flags:     common.Ternary[uint32](containsMetadata, fileContainsMetadata, fileContainsNoMetadata),
		name:      name,
		hashValue: hashValue,
	})
	return handle(handles.File, len(b.fileTable)), nil
}

const (
	fileContainsMetadata   uint32 = 0
	fileContainsNoMetadata uint32 = 1
)

// AddExportedType adds an ExportedType row. typeDefinitionID is a hint the
// format stores verbatim.
func (b *Builder) AddExportedType(
	attrs TypeAttributes,
	namespace handles.StringHandle,
	name handles.StringHandle,
	implementation handles.EntityHandle,
	typeDefinitionID int,
) (handles.EntityHandle, error) {
	var a args
	row := exportedTypeRow{
		flags:          uint32(attrs),
		typeDefID:      uint32(a.i32(typeDefinitionID, "typeDefinitionId")),
		name:           name,
		namespace:      namespace,
		implementation: a.coded(codedindex.Implementation, implementation, "implementation"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.exportedTypeTable = append(b.exportedTypeTable, row)
	return handle(handles.ExportedType, len(b.exportedTypeTable)), nil
}

// AddDeclarativeSecurityAttribute adds a DeclSecurity row for a TypeDef,
// MethodDef or Assembly. Rows may be added in any order.
func (b *Builder) AddDeclarativeSecurityAttribute(
	parent handles.EntityHandle,
	action DeclarativeSecurityAction,
	permissionSet handles.BlobHandle,
) (handles.EntityHandle, error) {
	var a args
	row := declSecurityRow{
		action:        uint16(action),
		parent:        a.coded(codedindex.HasDeclSecurity, parent, "parent"),
		permissionSet: permissionSet,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.declSecuritySort.observe(uint64(row.parent))
	b.declSecurityTable = append(b.declSecurityTable, row)
	return handle(handles.DeclSecurity, len(b.declSecurityTable)), nil
}

// AddEncLogEntry records an edit of entity in an EnC delta.
func (b *Builder) AddEncLogEntry(entity handles.EntityHandle, code EditAndContinueOperation) (handles.EntityHandle, error) {
	var a args
	token := a.token(entity, "entity")
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.encLogTable = append(b.encLogTable, encLogRow{
		token:    token,
		funcCode: uint8(code),
	})
	return handle(handles.EncLog, len(b.encLogTable)), nil
}

// AddEncMapEntry maps a row of an EnC delta to entity.
func (b *Builder) AddEncMapEntry(entity handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	token := a.token(entity, "entity")
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.encMapTable = append(b.encMapTable, encMapRow{token: token})
	return handle(handles.EncMap, len(b.encMapTable)), nil
}
