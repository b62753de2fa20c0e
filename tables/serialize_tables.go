package tables

import (
	"ecmameta/codedindex"
	"ecmameta/handles"
)

func (b *Builder) writeTables(tw *tableWriter, methodBodyStreamRVA, mappedFieldDataStreamRVA int) error {
	for _, t := range handles.SerializationOrder {
		if !tw.ms.IsPresent(t) {
			continue
		}

		var err error
		switch t {
		case handles.Module:
			b.writeModuleTable(tw)
		case handles.TypeRef:
			b.writeTypeRefTable(tw)
		case handles.TypeDef:
			b.writeTypeDefTable(tw)
		case handles.Field:
			b.writeFieldTable(tw)
		case handles.MethodDef:
			b.writeMethodDefTable(tw, methodBodyStreamRVA)
		case handles.Param:
			b.writeParamTable(tw)
		case handles.InterfaceImpl:
			b.writeInterfaceImplTable(tw)
		case handles.MemberRef:
			b.writeMemberRefTable(tw)
		case handles.Constant:
			err = b.writeConstantTable(tw)
		case handles.CustomAttribute:
			err = b.writeCustomAttributeTable(tw)
		case handles.FieldMarshal:
			err = b.writeFieldMarshalTable(tw)
		case handles.DeclSecurity:
			err = b.writeDeclSecurityTable(tw)
		case handles.ClassLayout:
			b.writeClassLayoutTable(tw)
		case handles.FieldLayout:
			b.writeFieldLayoutTable(tw)
		case handles.StandAloneSig:
			b.writeStandAloneSigTable(tw)
		case handles.EventMap:
			b.writeEventMapTable(tw)
		case handles.Event:
			b.writeEventTable(tw)
		case handles.PropertyMap:
			b.writePropertyMapTable(tw)
		case handles.Property:
			b.writePropertyTable(tw)
		case handles.MethodSemantics:
			err = b.writeMethodSemanticsTable(tw)
		case handles.MethodImpl:
			b.writeMethodImplTable(tw)
		case handles.ModuleRef:
			b.writeModuleRefTable(tw)
		case handles.TypeSpec:
			b.writeTypeSpecTable(tw)
		case handles.ImplMap:
			b.writeImplMapTable(tw)
		case handles.FieldRva:
			b.writeFieldRvaTable(tw, mappedFieldDataStreamRVA)
		case handles.EncLog:
			b.writeEncLogTable(tw)
		case handles.EncMap:
			b.writeEncMapTable(tw)
		case handles.Assembly:
			b.writeAssemblyTable(tw)
		case handles.AssemblyRef:
			b.writeAssemblyRefTable(tw)
		case handles.File:
			b.writeFileTable(tw)
		case handles.ExportedType:
			b.writeExportedTypeTable(tw)
		case handles.ManifestResource:
			b.writeManifestResourceTable(tw)
		case handles.NestedClass:
			b.writeNestedClassTable(tw)
		case handles.GenericParam:
			b.writeGenericParamTable(tw)
		case handles.MethodSpec:
			b.writeMethodSpecTable(tw)
		case handles.GenericParamConstraint:
			b.writeGenericParamConstraintTable(tw)
		case handles.Document:
			b.writeDocumentTable(tw)
		case handles.MethodDebugInformation:
			b.writeMethodDebugInformationTable(tw)
		case handles.LocalScope:
			b.writeLocalScopeTable(tw)
		case handles.LocalVariable:
			b.writeLocalVariableTable(tw)
		case handles.LocalConstant:
			b.writeLocalConstantTable(tw)
		case handles.ImportScope:
			b.writeImportScopeTable(tw)
		case handles.StateMachineMethod:
			b.writeStateMachineMethodTable(tw)
		case handles.CustomDebugInformation:
			err = b.writeCustomDebugInformationTable(tw)
		}
		if err != nil {
			return err
		}
		if tw.err != nil {
			return tw.err
		}
	}
	return nil
}

func (b *Builder) writeModuleTable(tw *tableWriter) {
	for _, r := range b.moduleTable {
		tw.w.WriteUint16(r.generation)
		tw.str(r.name)
		tw.guid(r.moduleVersionID)
		tw.guid(r.encID)
		tw.guid(r.encBaseID)
	}
}

func (b *Builder) writeTypeRefTable(tw *tableWriter) {
	for _, r := range b.typeRefTable {
		tw.coded(r.resolutionScope, codedindex.ResolutionScope)
		tw.str(r.name)
		tw.str(r.namespace)
	}
}

func (b *Builder) writeTypeDefTable(tw *tableWriter) {
	for _, r := range b.typeDefTable {
		tw.w.WriteUint32(r.flags)
		tw.str(r.name)
		tw.str(r.namespace)
		tw.coded(r.extends, codedindex.TypeDefOrRefOrSpec)
		tw.ref(r.fieldList, handles.Field)
		tw.ref(r.methodList, handles.MethodDef)
	}
}

func (b *Builder) writeFieldTable(tw *tableWriter) {
	for _, r := range b.fieldTable {
		tw.w.WriteUint16(r.flags)
		tw.str(r.name)
		tw.blob(r.signature)
	}
}

func (b *Builder) writeMethodDefTable(tw *tableWriter, methodBodyStreamRVA int) {
	for _, r := range b.methodDefTable {
		if r.bodyOffset == -1 {
			tw.w.WriteUint32(0)
		} else {
			tw.w.WriteInt32(int32(methodBodyStreamRVA) + r.bodyOffset)
		}
		tw.w.WriteUint16(r.implFlags)
		tw.w.WriteUint16(r.flags)
		tw.str(r.name)
		tw.blob(r.signature)
		tw.ref(r.paramList, handles.Param)
	}
}

func (b *Builder) writeParamTable(tw *tableWriter) {
	for _, r := range b.paramTable {
		tw.w.WriteUint16(r.flags)
		tw.w.WriteUint16(r.sequence)
		tw.str(r.name)
	}
}

func (b *Builder) writeInterfaceImplTable(tw *tableWriter) {
	for _, r := range b.interfaceImplTable {
		tw.ref(r.class, handles.TypeDef)
		tw.coded(r.iface, codedindex.TypeDefOrRefOrSpec)
	}
}

func (b *Builder) writeMemberRefTable(tw *tableWriter) {
	for _, r := range b.memberRefTable {
		tw.coded(r.class, codedindex.MemberRefParent)
		tw.str(r.name)
		tw.blob(r.signature)
	}
}

func (r *constantRow) sortKey() uint64        { return uint64(r.parent) }
func (r *customAttributeRow) sortKey() uint64 { return uint64(r.parent) }
func (r *fieldMarshalRow) sortKey() uint64    { return uint64(r.parent) }
func (r *declSecurityRow) sortKey() uint64    { return uint64(r.parent) }
func (r *methodSemanticsRow) sortKey() uint64 { return uint64(r.association) }

func (b *Builder) writeConstantTable(tw *tableWriter) error {
	rows := ordered(b, handles.Constant, b.constantTable, (*constantRow).sortKey)
	if err := checkOrdered(b, handles.Constant, rows, (*constantRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.w.WriteUint8(r.typeCode)
		// padding
		tw.w.WriteUint8(0)
		tw.coded(r.parent, codedindex.HasConstant)
		tw.blob(r.value)
	}
	return nil
}

func (b *Builder) writeCustomAttributeTable(tw *tableWriter) error {
	rows := ordered(b, handles.CustomAttribute, b.customAttributeTable, (*customAttributeRow).sortKey)
	if err := checkOrdered(b, handles.CustomAttribute, rows, (*customAttributeRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.coded(r.parent, codedindex.HasCustomAttribute)
		tw.coded(r.typ, codedindex.CustomAttributeType)
		tw.blob(r.value)
	}
	return nil
}

func (b *Builder) writeFieldMarshalTable(tw *tableWriter) error {
	rows := ordered(b, handles.FieldMarshal, b.fieldMarshalTable, (*fieldMarshalRow).sortKey)
	if err := checkOrdered(b, handles.FieldMarshal, rows, (*fieldMarshalRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.coded(r.parent, codedindex.HasFieldMarshal)
		tw.blob(r.nativeType)
	}
	return nil
}

func (b *Builder) writeDeclSecurityTable(tw *tableWriter) error {
	rows := ordered(b, handles.DeclSecurity, b.declSecurityTable, (*declSecurityRow).sortKey)
	if err := checkOrdered(b, handles.DeclSecurity, rows, (*declSecurityRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.w.WriteUint16(r.action)
		tw.coded(r.parent, codedindex.HasDeclSecurity)
		tw.blob(r.permissionSet)
	}
	return nil
}

func (b *Builder) writeClassLayoutTable(tw *tableWriter) {
	for _, r := range b.classLayoutTable {
		tw.w.WriteUint16(r.packingSize)
		tw.w.WriteUint32(r.classSize)
		tw.ref(r.parent, handles.TypeDef)
	}
}

func (b *Builder) writeFieldLayoutTable(tw *tableWriter) {
	for _, r := range b.fieldLayoutTable {
		tw.w.WriteInt32(r.offset)
		tw.ref(r.field, handles.Field)
	}
}

func (b *Builder) writeStandAloneSigTable(tw *tableWriter) {
	for _, r := range b.standAloneSigTable {
		tw.blob(r.signature)
	}
}

func (b *Builder) writeEventMapTable(tw *tableWriter) {
	for _, r := range b.eventMapTable {
		tw.ref(r.parent, handles.TypeDef)
		tw.ref(r.eventList, handles.Event)
	}
}

func (b *Builder) writeEventTable(tw *tableWriter) {
	for _, r := range b.eventTable {
		tw.w.WriteUint16(r.flags)
		tw.str(r.name)
		tw.coded(r.eventType, codedindex.TypeDefOrRefOrSpec)
	}
}

func (b *Builder) writePropertyMapTable(tw *tableWriter) {
	for _, r := range b.propertyMapTable {
		tw.ref(r.parent, handles.TypeDef)
		tw.ref(r.propertyList, handles.Property)
	}
}

func (b *Builder) writePropertyTable(tw *tableWriter) {
	for _, r := range b.propertyTable {
		tw.w.WriteUint16(r.flags)
		tw.str(r.name)
		tw.blob(r.signature)
	}
}

func (b *Builder) writeMethodSemanticsTable(tw *tableWriter) error {
	rows := ordered(b, handles.MethodSemantics, b.methodSemanticsTable, (*methodSemanticsRow).sortKey)
	if err := checkOrdered(b, handles.MethodSemantics, rows, (*methodSemanticsRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.w.WriteUint16(r.semantic)
		tw.ref(r.method, handles.MethodDef)
		tw.coded(r.association, codedindex.HasSemantics)
	}
	return nil
}

func (b *Builder) writeMethodImplTable(tw *tableWriter) {
	for _, r := range b.methodImplTable {
		tw.ref(r.class, handles.TypeDef)
		tw.coded(r.methodBody, codedindex.MethodDefOrRef)
		tw.coded(r.methodDecl, codedindex.MethodDefOrRef)
	}
}

func (b *Builder) writeModuleRefTable(tw *tableWriter) {
	for _, r := range b.moduleRefTable {
		tw.str(r.name)
	}
}

func (b *Builder) writeTypeSpecTable(tw *tableWriter) {
	for _, r := range b.typeSpecTable {
		tw.blob(r.signature)
	}
}

func (b *Builder) writeImplMapTable(tw *tableWriter) {
	for _, r := range b.implMapTable {
		tw.w.WriteUint16(r.mappingFlags)
		tw.coded(r.memberForwarded, codedindex.MemberForwarded)
		tw.str(r.importName)
		tw.ref(r.importScope, handles.ModuleRef)
	}
}

func (b *Builder) writeFieldRvaTable(tw *tableWriter, mappedFieldDataStreamRVA int) {
	for _, r := range b.fieldRvaTable {
		tw.w.WriteUint32(uint32(mappedFieldDataStreamRVA) + r.offset)
		tw.ref(r.field, handles.Field)
	}
}

func (b *Builder) writeEncLogTable(tw *tableWriter) {
	for _, r := range b.encLogTable {
		tw.w.WriteUint32(r.token)
		tw.w.WriteUint32(uint32(r.funcCode))
	}
}

func (b *Builder) writeEncMapTable(tw *tableWriter) {
	for _, r := range b.encMapTable {
		tw.w.WriteUint32(r.token)
	}
}

func (b *Builder) writeAssemblyTable(tw *tableWriter) {
	for _, r := range b.assemblyTable {
		tw.w.WriteUint32(r.hashAlgorithm)
		writeVersion(tw, r.version)
		tw.w.WriteUint32(r.flags)
		tw.blob(r.publicKey)
		tw.str(r.name)
		tw.str(r.culture)
	}
}

func (b *Builder) writeAssemblyRefTable(tw *tableWriter) {
	for _, r := range b.assemblyRefTable {
		writeVersion(tw, r.version)
		tw.w.WriteUint32(r.flags)
		tw.blob(r.publicKeyOrToken)
		tw.str(r.name)
		tw.str(r.culture)
		tw.blob(r.hashValue)
	}
}

func writeVersion(tw *tableWriter, v Version) {
	tw.w.WriteUint16(v.Major)
	tw.w.WriteUint16(v.Minor)
	tw.w.WriteUint16(v.Build)
	tw.w.WriteUint16(v.Revision)
}

func (b *Builder) writeFileTable(tw *tableWriter) {
	for _, r := range b.fileTable {
		tw.w.WriteUint32(r.flags)
		tw.str(r.name)
		tw.blob(r.hashValue)
	}
}

func (b *Builder) writeExportedTypeTable(tw *tableWriter) {
	for _, r := range b.exportedTypeTable {
		tw.w.WriteUint32(r.flags)
		tw.w.WriteUint32(r.typeDefID)
		tw.str(r.name)
		tw.str(r.namespace)
		tw.coded(r.implementation, codedindex.Implementation)
	}
}

func (b *Builder) writeManifestResourceTable(tw *tableWriter) {
	for _, r := range b.manifestResourceTable {
		tw.w.WriteUint32(r.offset)
		tw.w.WriteUint32(r.flags)
		tw.str(r.name)
		tw.coded(r.implementation, codedindex.Implementation)
	}
}

func (b *Builder) writeNestedClassTable(tw *tableWriter) {
	for _, r := range b.nestedClassTable {
		tw.ref(r.nestedClass, handles.TypeDef)
		tw.ref(r.enclosingClass, handles.TypeDef)
	}
}

func (b *Builder) writeGenericParamTable(tw *tableWriter) {
	for _, r := range b.genericParamTable {
		tw.w.WriteUint16(r.number)
		tw.w.WriteUint16(r.flags)
		tw.coded(r.owner, codedindex.TypeOrMethodDef)
		tw.str(r.name)
	}
}

func (b *Builder) writeMethodSpecTable(tw *tableWriter) {
	for _, r := range b.methodSpecTable {
		tw.coded(r.method, codedindex.MethodDefOrRef)
		tw.blob(r.instantiation)
	}
}

func (b *Builder) writeGenericParamConstraintTable(tw *tableWriter) {
	for _, r := range b.genericParamConstraintTable {
		tw.ref(r.owner, handles.GenericParam)
		tw.coded(r.constraint, codedindex.TypeDefOrRefOrSpec)
	}
}

func (b *Builder) writeDocumentTable(tw *tableWriter) {
	for _, r := range b.documentTable {
		tw.blob(r.name)
		tw.guid(r.hashAlgorithm)
		tw.blob(r.hash)
		tw.guid(r.language)
	}
}

func (b *Builder) writeMethodDebugInformationTable(tw *tableWriter) {
	for _, r := range b.methodDebugInformationTable {
		tw.ref(r.document, handles.Document)
		tw.blob(r.sequencePoints)
	}
}

func (b *Builder) writeLocalScopeTable(tw *tableWriter) {
	for _, r := range b.localScopeTable {
		tw.ref(r.method, handles.MethodDef)
		tw.ref(r.importScope, handles.ImportScope)
		tw.ref(r.variableList, handles.LocalVariable)
		tw.ref(r.constantList, handles.LocalConstant)
		tw.w.WriteUint32(r.startOffset)
		tw.w.WriteUint32(r.length)
	}
}

func (b *Builder) writeLocalVariableTable(tw *tableWriter) {
	for _, r := range b.localVariableTable {
		tw.w.WriteUint16(r.attributes)
		tw.w.WriteUint16(r.index)
		tw.str(r.name)
	}
}

func (b *Builder) writeLocalConstantTable(tw *tableWriter) {
	for _, r := range b.localConstantTable {
		tw.str(r.name)
		tw.blob(r.signature)
	}
}

func (b *Builder) writeImportScopeTable(tw *tableWriter) {
	for _, r := range b.importScopeTable {
		tw.ref(r.parent, handles.ImportScope)
		tw.blob(r.imports)
	}
}

func (b *Builder) writeStateMachineMethodTable(tw *tableWriter) {
	for _, r := range b.stateMachineMethodTable {
		tw.ref(r.moveNextMethod, handles.MethodDef)
		tw.ref(r.kickoffMethod, handles.MethodDef)
	}
}

func (b *Builder) writeCustomDebugInformationTable(tw *tableWriter) error {
	rows := ordered(b, handles.CustomDebugInformation, b.customDebugInformationTable, (*customDebugInformationRow).sortKey)
	if err := checkOrdered(b, handles.CustomDebugInformation, rows, (*customDebugInformationRow).sortKey); err != nil {
		return err
	}
	for _, r := range rows {
		tw.coded(r.parent, codedindex.HasCustomDebugInformation)
		tw.guid(r.kind)
		tw.blob(r.value)
	}
	return nil
}
