package handles

import "strconv"

// TableIndex is the table number used by the metadata table stream. Its value
// is the bit position of the table in the present and sorted masks.
type TableIndex uint8

const (
	Module                 TableIndex = 0x00
	TypeRef                TableIndex = 0x01
	TypeDef                TableIndex = 0x02
	FieldPtr               TableIndex = 0x03
	Field                  TableIndex = 0x04
	MethodPtr              TableIndex = 0x05
	MethodDef              TableIndex = 0x06
	ParamPtr               TableIndex = 0x07
	Param                  TableIndex = 0x08
	InterfaceImpl          TableIndex = 0x09
	MemberRef              TableIndex = 0x0A
	Constant               TableIndex = 0x0B
	CustomAttribute        TableIndex = 0x0C
	FieldMarshal           TableIndex = 0x0D
	DeclSecurity           TableIndex = 0x0E
	ClassLayout            TableIndex = 0x0F
	FieldLayout            TableIndex = 0x10
	StandAloneSig          TableIndex = 0x11
	EventMap               TableIndex = 0x12
	EventPtr               TableIndex = 0x13
	Event                  TableIndex = 0x14
	PropertyMap            TableIndex = 0x15
	PropertyPtr            TableIndex = 0x16
	Property               TableIndex = 0x17
	MethodSemantics        TableIndex = 0x18
	MethodImpl             TableIndex = 0x19
	ModuleRef              TableIndex = 0x1A
	TypeSpec               TableIndex = 0x1B
	ImplMap                TableIndex = 0x1C
	FieldRva               TableIndex = 0x1D
	EncLog                 TableIndex = 0x1E
	EncMap                 TableIndex = 0x1F
	Assembly               TableIndex = 0x20
	AssemblyProcessor      TableIndex = 0x21
	AssemblyOS             TableIndex = 0x22
	AssemblyRef            TableIndex = 0x23
	AssemblyRefProcessor   TableIndex = 0x24
	AssemblyRefOS          TableIndex = 0x25
	File                   TableIndex = 0x26
	ExportedType           TableIndex = 0x27
	ManifestResource       TableIndex = 0x28
	NestedClass            TableIndex = 0x29
	GenericParam           TableIndex = 0x2A
	MethodSpec             TableIndex = 0x2B
	GenericParamConstraint TableIndex = 0x2C

	Document               TableIndex = 0x30
	MethodDebugInformation TableIndex = 0x31
	LocalScope             TableIndex = 0x32
	LocalVariable          TableIndex = 0x33
	LocalConstant          TableIndex = 0x34
	ImportScope            TableIndex = 0x35
	StateMachineMethod     TableIndex = 0x36
	CustomDebugInformation TableIndex = 0x37
)

// TableCount is the length of any array indexed by TableIndex.
const TableCount = 0x38

var tableNames = [TableCount]string{
	Module:                 "Module",
	TypeRef:                "TypeRef",
	TypeDef:                "TypeDef",
	FieldPtr:               "FieldPtr",
	Field:                  "Field",
	MethodPtr:              "MethodPtr",
	MethodDef:              "MethodDef",
	ParamPtr:               "ParamPtr",
	Param:                  "Param",
	InterfaceImpl:          "InterfaceImpl",
	MemberRef:              "MemberRef",
	Constant:               "Constant",
	CustomAttribute:        "CustomAttribute",
	FieldMarshal:           "FieldMarshal",
	DeclSecurity:           "DeclSecurity",
	ClassLayout:            "ClassLayout",
	FieldLayout:            "FieldLayout",
	StandAloneSig:          "StandAloneSig",
	EventMap:               "EventMap",
	EventPtr:               "EventPtr",
	Event:                  "Event",
	PropertyMap:            "PropertyMap",
	PropertyPtr:            "PropertyPtr",
	Property:               "Property",
	MethodSemantics:        "MethodSemantics",
	MethodImpl:             "MethodImpl",
	ModuleRef:              "ModuleRef",
	TypeSpec:               "TypeSpec",
	ImplMap:                "ImplMap",
	FieldRva:               "FieldRva",
	EncLog:                 "EncLog",
	EncMap:                 "EncMap",
	Assembly:               "Assembly",
	AssemblyProcessor:      "AssemblyProcessor",
	AssemblyOS:             "AssemblyOS",
	AssemblyRef:            "AssemblyRef",
	AssemblyRefProcessor:   "AssemblyRefProcessor",
	AssemblyRefOS:          "AssemblyRefOS",
	File:                   "File",
	ExportedType:           "ExportedType",
	ManifestResource:       "ManifestResource",
	NestedClass:            "NestedClass",
	GenericParam:           "GenericParam",
	MethodSpec:             "MethodSpec",
	GenericParamConstraint: "GenericParamConstraint",
	Document:               "Document",
	MethodDebugInformation: "MethodDebugInformation",
	LocalScope:             "LocalScope",
	LocalVariable:          "LocalVariable",
	LocalConstant:          "LocalConstant",
	ImportScope:            "ImportScope",
	StateMachineMethod:     "StateMachineMethod",
	CustomDebugInformation: "CustomDebugInformation",
}

// Valid reports whether t names a table of the format.
func (t TableIndex) Valid() bool {
	return int(t) < TableCount && tableNames[t] != ""
}

func (t TableIndex) String() string {
	if !t.Valid() {
		return "Table(" + strconv.Itoa(int(t)) + ")"
	}
	return tableNames[t]
}

// IsDebug reports whether t is one of the portable debug tables.
func (t TableIndex) IsDebug() bool {
	return t >= Document && t <= CustomDebugInformation
}

// Mask returns the bit of t in the present/sorted table masks.
func (t TableIndex) Mask() uint64 {
	return 1 << uint64(t)
}

// SerializationOrder is the canonical order in which table rows are laid out in
// the stream: type system tables first, then debug tables. Tables not listed
// here are never written.
var SerializationOrder = []TableIndex{
	Module,
	TypeRef,
	TypeDef,
	Field,
	MethodDef,
	Param,
	InterfaceImpl,
	MemberRef,
	Constant,
	CustomAttribute,
	FieldMarshal,
	DeclSecurity,
	ClassLayout,
	FieldLayout,
	StandAloneSig,
	EventMap,
	Event,
	PropertyMap,
	Property,
	MethodSemantics,
	MethodImpl,
	ModuleRef,
	TypeSpec,
	ImplMap,
	FieldRva,
	EncLog,
	EncMap,
	Assembly,
	AssemblyRef,
	File,
	ExportedType,
	ManifestResource,
	NestedClass,
	GenericParam,
	MethodSpec,
	GenericParamConstraint,

	Document,
	MethodDebugInformation,
	LocalScope,
	LocalVariable,
	LocalConstant,
	ImportScope,
	StateMachineMethod,
	CustomDebugInformation,
}

// IsSerialized reports whether the builder stores and writes rows of t.
func (t TableIndex) IsSerialized() bool {
	switch t {
	case FieldPtr, MethodPtr, ParamPtr, EventPtr, PropertyPtr,
		AssemblyProcessor, AssemblyOS, AssemblyRefProcessor, AssemblyRefOS:
		return false
	}
	return t.Valid()
}
