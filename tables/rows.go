package tables

import "ecmameta/handles"

// Row records, one per table kind. Fields follow the column order of the
// format. Coded indices and row ids are stored already translated.

// type system rows

type moduleRow struct {
	generation      uint16
	name            handles.StringHandle
	moduleVersionID handles.GuidHandle
	encID           handles.GuidHandle
	encBaseID       handles.GuidHandle
}

type typeRefRow struct {
	resolutionScope uint32
	name            handles.StringHandle
	namespace       handles.StringHandle
}

type typeDefRow struct {
	flags      uint32
	name       handles.StringHandle
	namespace  handles.StringHandle
	extends    uint32
	fieldList  uint32
	methodList uint32
}

type fieldDefRow struct {
	flags     uint16
	name      handles.StringHandle
	signature handles.BlobHandle
}

type methodRow struct {
	bodyOffset int32
	implFlags  uint16
	flags      uint16
	name       handles.StringHandle
	signature  handles.BlobHandle
	paramList  uint32
}

type paramRow struct {
	flags    uint16
	sequence uint16
	name     handles.StringHandle
}

type interfaceImplRow struct {
	class uint32
	iface uint32
}

type memberRefRow struct {
	class     uint32
	name      handles.StringHandle
	signature handles.BlobHandle
}

type constantRow struct {
	typeCode uint8
	parent   uint32
	value    handles.BlobHandle
}

type customAttributeRow struct {
	parent uint32
	typ    uint32
	value  handles.BlobHandle
}

type fieldMarshalRow struct {
	parent     uint32
	nativeType handles.BlobHandle
}

type declSecurityRow struct {
	action        uint16
	parent        uint32
	permissionSet handles.BlobHandle
}

type classLayoutRow struct {
	packingSize uint16
	classSize   uint32
	parent      uint32
}

type fieldLayoutRow struct {
	offset int32
	field  uint32
}

type standaloneSigRow struct {
	signature handles.BlobHandle
}

type eventMapRow struct {
	parent    uint32
	eventList uint32
}

type eventRow struct {
	flags     uint16
	name      handles.StringHandle
	eventType uint32
}

type propertyMapRow struct {
	parent       uint32
	propertyList uint32
}

type propertyRow struct {
	flags     uint16
	name      handles.StringHandle
	signature handles.BlobHandle
}

type methodSemanticsRow struct {
	semantic    uint16
	method      uint32
	association uint32
}

type methodImplRow struct {
	class      uint32
	methodBody uint32
	methodDecl uint32
}

type moduleRefRow struct {
	name handles.StringHandle
}

type typeSpecRow struct {
	signature handles.BlobHandle
}

type implMapRow struct {
	mappingFlags    uint16
	memberForwarded uint32
	importName      handles.StringHandle
	importScope     uint32
}

type fieldRvaRow struct {
	offset uint32
	field  uint32
}

type encLogRow struct {
	token    uint32
	funcCode uint8
}

type encMapRow struct {
	token uint32
}

type assemblyRow struct {
	hashAlgorithm uint32
	version       Version
	flags         uint32
	publicKey     handles.BlobHandle
	name          handles.StringHandle
	culture       handles.StringHandle
}

type assemblyRefRow struct {
	version          Version
	flags            uint32
	publicKeyOrToken handles.BlobHandle
	name             handles.StringHandle
	culture          handles.StringHandle
	hashValue        handles.BlobHandle
}

type fileRow struct {
	flags     uint32
	name      handles.StringHandle
	hashValue handles.BlobHandle
}

type exportedTypeRow struct {
	flags          uint32
	typeDefID      uint32
	name           handles.StringHandle
	namespace      handles.StringHandle
	implementation uint32
}

type manifestResourceRow struct {
	offset         uint32
	flags          uint32
	name           handles.StringHandle
	implementation uint32
}

type nestedClassRow struct {
	nestedClass    uint32
	enclosingClass uint32
}

type genericParamRow struct {
	number uint16
	flags  uint16
	owner  uint32
	name   handles.StringHandle
}

type methodSpecRow struct {
	method        uint32
	instantiation handles.BlobHandle
}

type genericParamConstraintRow struct {
	owner      uint32
	constraint uint32
}

// debug rows

type documentRow struct {
	name          handles.BlobHandle
	hashAlgorithm handles.GuidHandle
	hash          handles.BlobHandle
	language      handles.GuidHandle
}

type methodDebugInformationRow struct {
	document       uint32
	sequencePoints handles.BlobHandle
}

type localScopeRow struct {
	method       uint32
	importScope  uint32
	variableList uint32
	constantList uint32
	startOffset  uint32
	length       uint32
}

type localVariableRow struct {
	attributes uint16
	index      uint16
	name       handles.StringHandle
}

type localConstantRow struct {
	name      handles.StringHandle
	signature handles.BlobHandle
}

type importScopeRow struct {
	parent  uint32
	imports handles.BlobHandle
}

type stateMachineMethodRow struct {
	moveNextMethod uint32
	kickoffMethod  uint32
}

type customDebugInformationRow struct {
	parent uint32
	kind   handles.GuidHandle
	value  handles.BlobHandle
}
