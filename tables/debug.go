package tables

import (
	"ecmameta/codedindex"
	"ecmameta/handles"
)

func (b *Builder) AddDocument(
	name handles.BlobHandle,
	hashAlgorithm handles.GuidHandle,
	hash handles.BlobHandle,
	language handles.GuidHandle,
) (handles.EntityHandle, error) {
	b.documentTable = append(b.documentTable, documentRow{
		name:          name,
		hashAlgorithm: hashAlgorithm,
		hash:          hash,
		language:      language,
	})
	return handle(handles.Document, len(b.documentTable)), nil
}

// AddMethodDebugInformation adds the debug row of the method with the same row
// id. document is nil when the sequence points span several documents.
func (b *Builder) AddMethodDebugInformation(document handles.EntityHandle, sequencePoints handles.BlobHandle) (handles.EntityHandle, error) {
	var a args
	row := methodDebugInformationRow{
		document:       a.row(document, handles.Document, "document"),
		sequencePoints: sequencePoints,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.methodDebugInformationTable = append(b.methodDebugInformationTable, row)
	return handle(handles.MethodDebugInformation, len(b.methodDebugInformationTable)), nil
}

// AddLocalScope adds a LocalScope row. Rows must be added ordered by method,
// then by ascending start offset, then by descending length.
func (b *Builder) AddLocalScope(
	method handles.EntityHandle,
	importScope handles.EntityHandle,
	variableList handles.EntityHandle,
	constantList handles.EntityHandle,
	startOffset int,
	length int,
) (handles.EntityHandle, error) {
	var a args
	row := localScopeRow{
		method:       a.row(method, handles.MethodDef, "method"),
		importScope:  a.row(importScope, handles.ImportScope, "importScope"),
		variableList: a.row(variableList, handles.LocalVariable, "variableList"),
		constantList: a.row(constantList, handles.LocalConstant, "constantList"),
		startOffset:  uint32(a.i32(startOffset, "startOffset")),
		length:       uint32(a.i32(length, "length")),
	}
	if startOffset < 0 {
		a.fail("startOffset", "negative offset %d", startOffset)
	}
	if length < 0 {
		a.fail("length", "negative length %d", length)
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.localScopeTable = append(b.localScopeTable, row)
	return handle(handles.LocalScope, len(b.localScopeTable)), nil
}

// AddLocalVariable adds a LocalVariable row. index is the slot in the method's
// local signature and must fit in 16 bits.
func (b *Builder) AddLocalVariable(
	attrs LocalVariableAttributes,
	index int,
	name handles.StringHandle,
) (handles.EntityHandle, error) {
	var a args
	row := localVariableRow{
		attributes: uint16(attrs),
		index:      a.u16(index, "index"),
		name:       name,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.localVariableTable = append(b.localVariableTable, row)
	return handle(handles.LocalVariable, len(b.localVariableTable)), nil
}

func (b *Builder) AddLocalConstant(name handles.StringHandle, signature handles.BlobHandle) (handles.EntityHandle, error) {
	b.localConstantTable = append(b.localConstantTable, localConstantRow{
		name:      name,
		signature: signature,
	})
	return handle(handles.LocalConstant, len(b.localConstantTable)), nil
}

// AddImportScope adds an ImportScope row. parent is nil for the root scope.
func (b *Builder) AddImportScope(parent handles.EntityHandle, imports handles.BlobHandle) (handles.EntityHandle, error) {
	var a args
	row := importScopeRow{
		parent:  a.row(parent, handles.ImportScope, "parentScope"),
		imports: imports,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.importScopeTable = append(b.importScopeTable, row)
	return handle(handles.ImportScope, len(b.importScopeTable)), nil
}

// AddStateMachineMethod links an async or iterator MoveNext method to the
// method that started it. Rows must be added in MoveNext order.
func (b *Builder) AddStateMachineMethod(moveNextMethod, kickoffMethod handles.EntityHandle) (handles.EntityHandle, error) {
	var a args
	row := stateMachineMethodRow{
		moveNextMethod: a.row(moveNextMethod, handles.MethodDef, "moveNextMethod"),
		kickoffMethod:  a.row(kickoffMethod, handles.MethodDef, "kickoffMethod"),
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.stateMachineMethodTable = append(b.stateMachineMethodTable, row)
	return handle(handles.StateMachineMethod, len(b.stateMachineMethodTable)), nil
}

// AddCustomDebugInformation adds a CustomDebugInformation row. Rows may be
// added in any order; they are written sorted by parent, then kind.
func (b *Builder) AddCustomDebugInformation(
	parent handles.EntityHandle,
	kind handles.GuidHandle,
	value handles.BlobHandle,
) (handles.EntityHandle, error) {
	var a args
	row := customDebugInformationRow{
		parent: a.coded(codedindex.HasCustomDebugInformation, parent, "parent"),
		kind:   kind,
		value:  value,
	}
	if a.err != nil {
		return handles.Nil, a.err
	}

	b.customDebugInformationSort.observe(row.sortKey())
	b.customDebugInformationTable = append(b.customDebugInformationTable, row)
	return handle(handles.CustomDebugInformation, len(b.customDebugInformationTable)), nil
}

func (r *customDebugInformationRow) sortKey() uint64 {
	return uint64(r.parent)<<32 | uint64(r.kind)
}
