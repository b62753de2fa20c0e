package tables

// Flag and enumerant types stored in table columns. Values are the format's;
// the builder writes them without interpretation.

type TypeAttributes uint32
type FieldAttributes uint16
type MethodAttributes uint16
type MethodImplAttributes uint16
type ParameterAttributes uint16
type EventAttributes uint16
type PropertyAttributes uint16
type GenericParameterAttributes uint16
type MethodSemanticsAttributes uint16
type MethodImportAttributes uint16
type ManifestResourceAttributes uint32
type DeclarativeSecurityAction uint16
type LocalVariableAttributes uint16

type AssemblyFlags uint32

const (
	AssemblyFlagsPublicKey                  AssemblyFlags = 0x0001
	AssemblyFlagsRetargetable               AssemblyFlags = 0x0100
	AssemblyFlagsDisableJitCompileOptimizer AssemblyFlags = 0x4000
	AssemblyFlagsEnableJitCompileTracking   AssemblyFlags = 0x8000
)

type AssemblyHashAlgorithm uint32

const (
	AssemblyHashAlgorithmNone   AssemblyHashAlgorithm = 0
	AssemblyHashAlgorithmMD5    AssemblyHashAlgorithm = 0x8003
	AssemblyHashAlgorithmSha1   AssemblyHashAlgorithm = 0x8004
	AssemblyHashAlgorithmSha256 AssemblyHashAlgorithm = 0x800C
	AssemblyHashAlgorithmSha384 AssemblyHashAlgorithm = 0x800D
	AssemblyHashAlgorithmSha512 AssemblyHashAlgorithm = 0x800E
)

type EditAndContinueOperation uint8

const (
	EditAndContinueDefault      EditAndContinueOperation = 0
	EditAndContinueAddMethod    EditAndContinueOperation = 1
	EditAndContinueAddField     EditAndContinueOperation = 2
	EditAndContinueAddParameter EditAndContinueOperation = 3
	EditAndContinueAddProperty  EditAndContinueOperation = 4
	EditAndContinueAddEvent     EditAndContinueOperation = 5
)

// ConstantTypeCode is the element type of a Constant row's value blob.
type ConstantTypeCode uint8

const (
	ConstantBoolean ConstantTypeCode = 0x02
	ConstantChar    ConstantTypeCode = 0x03
	ConstantInt8    ConstantTypeCode = 0x04
	ConstantUInt8   ConstantTypeCode = 0x05
	ConstantInt16   ConstantTypeCode = 0x06
	ConstantUInt16  ConstantTypeCode = 0x07
	ConstantInt32   ConstantTypeCode = 0x08
	ConstantUInt32  ConstantTypeCode = 0x09
	ConstantInt64   ConstantTypeCode = 0x0A
	ConstantUInt64  ConstantTypeCode = 0x0B
	ConstantSingle  ConstantTypeCode = 0x0C
	ConstantDouble  ConstantTypeCode = 0x0D
	ConstantString  ConstantTypeCode = 0x0E
	ConstantNullRef ConstantTypeCode = 0x12
)

// Version is the four-part assembly version.
type Version struct {
	Major    uint16
	Minor    uint16
	Build    uint16
	Revision uint16
}
