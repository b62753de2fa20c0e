package sizes

import (
	"ecmameta/codedindex"
	"ecmameta/common"
	"ecmameta/handles"
)

func (ms *MetadataSizes) computeRowSize(t handles.TableIndex) int {
	s := ms.width(ms.stringSmall)
	g := ms.width(ms.guidSmall)
	b := ms.width(ms.blobSmall)
	ref := func(t handles.TableIndex) int { return ms.width(ms.tableSmall[t]) }
	coded := func(f *codedindex.Family) int { return ms.width(ms.codedSmall[f]) }

	switch t {
	case handles.Module:
		return 2 + s + g + g + g
	case handles.TypeRef:
		return coded(codedindex.ResolutionScope) + s + s
	case handles.TypeDef:
		return 4 + s + s + coded(codedindex.TypeDefOrRefOrSpec) + ref(handles.Field) + ref(handles.MethodDef)
	case handles.Field:
		return 2 + s + b
	case handles.MethodDef:
		return 4 + 2 + 2 + s + b + ref(handles.Param)
	case handles.Param:
		return 2 + 2 + s
	case handles.InterfaceImpl:
		return ref(handles.TypeDef) + coded(codedindex.TypeDefOrRefOrSpec)
	case handles.MemberRef:
		return coded(codedindex.MemberRefParent) + s + b
	case handles.Constant:
		return 1 + 1 + coded(codedindex.HasConstant) + b
	case handles.CustomAttribute:
		return coded(codedindex.HasCustomAttribute) + coded(codedindex.CustomAttributeType) + b
	case handles.FieldMarshal:
		return coded(codedindex.HasFieldMarshal) + b
	case handles.DeclSecurity:
		return 2 + coded(codedindex.HasDeclSecurity) + b
	case handles.ClassLayout:
		return 2 + 4 + ref(handles.TypeDef)
	case handles.FieldLayout:
		return 4 + ref(handles.Field)
	case handles.StandAloneSig:
		return b
	case handles.EventMap:
		return ref(handles.TypeDef) + ref(handles.Event)
	case handles.Event:
		return 2 + s + coded(codedindex.TypeDefOrRefOrSpec)
	case handles.PropertyMap:
		return ref(handles.TypeDef) + ref(handles.Property)
	case handles.Property:
		return 2 + s + b
	case handles.MethodSemantics:
		return 2 + ref(handles.MethodDef) + coded(codedindex.HasSemantics)
	case handles.MethodImpl:
		return ref(handles.TypeDef) + 2*coded(codedindex.MethodDefOrRef)
	case handles.ModuleRef:
		return s
	case handles.TypeSpec:
		return b
	case handles.ImplMap:
		return 2 + coded(codedindex.MemberForwarded) + s + ref(handles.ModuleRef)
	case handles.FieldRva:
		return 4 + ref(handles.Field)
	case handles.EncLog:
		return 4 + 4
	case handles.EncMap:
		return 4
	case handles.Assembly:
		return 4 + 2*4 + 4 + b + s + s
	case handles.AssemblyRef:
		return 2*4 + 4 + b + s + s + b
	case handles.File:
		return 4 + s + b
	case handles.ExportedType:
		return 4 + 4 + s + s + coded(codedindex.Implementation)
	case handles.ManifestResource:
		return 4 + 4 + s + coded(codedindex.Implementation)
	case handles.NestedClass:
		return 2 * ref(handles.TypeDef)
	case handles.GenericParam:
		return 2 + 2 + coded(codedindex.TypeOrMethodDef) + s
	case handles.MethodSpec:
		return coded(codedindex.MethodDefOrRef) + b
	case handles.GenericParamConstraint:
		return ref(handles.GenericParam) + coded(codedindex.TypeDefOrRefOrSpec)

	case handles.Document:
		return b + g + b + g
	case handles.MethodDebugInformation:
		return ref(handles.Document) + b
	case handles.LocalScope:
		return ref(handles.MethodDef) + ref(handles.ImportScope) + ref(handles.LocalVariable) + ref(handles.LocalConstant) + 4 + 4
	case handles.LocalVariable:
		return 2 + 2 + s
	case handles.LocalConstant:
		return s + b
	case handles.ImportScope:
		return ref(handles.ImportScope) + b
	case handles.StateMachineMethod:
		return 2 * ref(handles.MethodDef)
	case handles.CustomDebugInformation:
		return coded(codedindex.HasCustomDebugInformation) + g + b
	}
	common.Assert(false, "no row layout for table %s", t)
	return 0
}

func (ms *MetadataSizes) width(small bool) int {
	if small {
		return 2
	}
	return 4
}
