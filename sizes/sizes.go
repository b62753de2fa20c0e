// Package sizes decides the layout of the metadata table stream once all rows
// are known: which tables are present, how wide every reference column is,
// and how many bytes the stream occupies.
package sizes

import (
	"ecmameta/blob"
	"ecmameta/codedindex"
	"ecmameta/handles"
)

const (
	// smallHeapSize is the largest heap that can be addressed with 2 bytes.
	smallHeapSize = 0xFFFF

	// tableStreamHeaderFixedSize covers the reserved word, version, heap size
	// flags, reserved byte and the two 64-bit masks.
	tableStreamHeaderFixedSize = 4 + 1 + 1 + 1 + 1 + 8 + 8
)

// Heap size flags of the table stream header.
const (
	StringHeapLarge byte = 0x01
	GuidHeapLarge   byte = 0x02
	BlobHeapLarge   byte = 0x04
	EnCDeltas       byte = 0x20
	DeletedMarks    byte = 0x80
)

// SortedDebugTables are the debug tables the format requires to be sorted.
const SortedDebugTables = 1<<uint64(handles.LocalScope) |
	1<<uint64(handles.StateMachineMethod) |
	1<<uint64(handles.CustomDebugInformation)

// SortedTypeSystemTables are the type system tables reported sorted in the
// header: InterfaceImpl, Constant, CustomAttribute, FieldMarshal, DeclSecurity,
// ClassLayout, FieldLayout, MethodSemantics, MethodImpl, ImplMap, FieldRva,
// NestedClass, GenericParam and GenericParamConstraint.
const SortedTypeSystemTables uint64 = 0x16003301fa00

// HeapSizes are the byte sizes of the heaps referenced from the tables.
type HeapSizes struct {
	String     int
	UserString int
	Guid       int
	Blob       int
}

// MetadataSizes is the finalized layout. It is immutable once built.
type MetadataSizes struct {
	rowCounts         [handles.TableCount]int
	externalRowCounts [handles.TableCount]int
	heapSizes         HeapSizes

	isMinimalDelta    bool
	isStandaloneDebug bool

	presentTablesMask uint64

	stringSmall bool
	guidSmall   bool
	blobSmall   bool

	tableSmall [handles.TableCount]bool
	codedSmall map[*codedindex.Family]bool
	rowSizes   [handles.TableCount]int

	headerSize int
	streamSize int
}

// New computes the layout for the given final row counts and heap sizes.
func New(rowCounts [handles.TableCount]int, heapSizes HeapSizes, opts ...Option) *MetadataSizes {
	options := Options{}
	for _, o := range opts {
		o(&options)
	}

	ms := &MetadataSizes{
		rowCounts:         rowCounts,
		heapSizes:         heapSizes,
		isMinimalDelta:    options.minimalDelta,
		isStandaloneDebug: options.externalRowCounts != nil,
		codedSmall:        make(map[*codedindex.Family]bool, len(codedindex.Families)),
	}
	if options.externalRowCounts != nil {
		ms.externalRowCounts = *options.externalRowCounts
	}

	for i, n := range rowCounts {
		if n > 0 {
			ms.presentTablesMask |= 1 << uint64(i)
		}
	}

	ms.stringSmall = ms.heapIsSmall(heapSizes.String)
	ms.guidSmall = ms.heapIsSmall(heapSizes.Guid)
	ms.blobSmall = ms.heapIsSmall(heapSizes.Blob)

	for i := range ms.tableSmall {
		ms.tableSmall[i] = !ms.isMinimalDelta && ms.sizingRowCount(handles.TableIndex(i)) < 1<<16
	}
	for _, f := range codedindex.Families {
		ms.codedSmall[f] = ms.codedIndexFits(f)
	}

	ms.headerSize = tableStreamHeaderFixedSize
	for i := range rowCounts {
		if ms.IsPresent(handles.TableIndex(i)) {
			ms.headerSize += 4
		}
	}

	size := ms.headerSize
	for _, t := range handles.SerializationOrder {
		ms.rowSizes[t] = ms.computeRowSize(t)
		size += rowCounts[t] * ms.rowSizes[t]
	}
	// terminator byte, then alignment
	ms.streamSize = blob.AlignUp(size+1, 4)

	return ms
}

func (ms *MetadataSizes) heapIsSmall(size int) bool {
	return !ms.isMinimalDelta && size <= smallHeapSize
}

// sizingRowCount is the row count that decides reference widths. Standalone
// debug metadata references type system rows stored elsewhere.
func (ms *MetadataSizes) sizingRowCount(t handles.TableIndex) int {
	return max(ms.rowCounts[t], ms.externalRowCounts[t])
}

func (ms *MetadataSizes) codedIndexFits(f *codedindex.Family) bool {
	if ms.isMinimalDelta {
		return false
	}
	limit := 1 << (16 - f.TagBits)
	for _, t := range f.Members() {
		if ms.sizingRowCount(t) >= limit {
			return false
		}
	}
	return true
}

func (ms *MetadataSizes) IsPresent(t handles.TableIndex) bool {
	return ms.presentTablesMask&t.Mask() != 0
}

func (ms *MetadataSizes) RowCount(t handles.TableIndex) int {
	return ms.rowCounts[t]
}

func (ms *MetadataSizes) RowCounts() [handles.TableCount]int {
	return ms.rowCounts
}

func (ms *MetadataSizes) HeapSizes() HeapSizes {
	return ms.heapSizes
}

func (ms *MetadataSizes) PresentTablesMask() uint64 {
	return ms.presentTablesMask
}

// SortedTablesMask is the sorted bitmask of the header. It reports the
// per-table sort requirement, not whether a sort pass ran.
func (ms *MetadataSizes) SortedTablesMask() uint64 {
	sorted := ms.presentTablesMask & SortedDebugTables
	if !ms.isStandaloneDebug {
		sorted |= SortedTypeSystemTables
	}
	return sorted
}

func (ms *MetadataSizes) HeapSizeFlags() byte {
	var flags byte
	if !ms.stringSmall {
		flags |= StringHeapLarge
	}
	if !ms.guidSmall {
		flags |= GuidHeapLarge
	}
	if !ms.blobSmall {
		flags |= BlobHeapLarge
	}
	if ms.isMinimalDelta {
		flags |= EnCDeltas | DeletedMarks
	}
	return flags
}

func (ms *MetadataSizes) IsMinimalDelta() bool            { return ms.isMinimalDelta }
func (ms *MetadataSizes) IsStandaloneDebugMetadata() bool { return ms.isStandaloneDebug }

func (ms *MetadataSizes) StringReferenceIsSmall() bool { return ms.stringSmall }
func (ms *MetadataSizes) GuidReferenceIsSmall() bool   { return ms.guidSmall }
func (ms *MetadataSizes) BlobReferenceIsSmall() bool   { return ms.blobSmall }

// ReferenceIsSmall reports whether a column referencing only table t is 2 bytes.
func (ms *MetadataSizes) ReferenceIsSmall(t handles.TableIndex) bool {
	return ms.tableSmall[t]
}

// CodedIndexIsSmall reports whether a column of coded index family f is 2 bytes.
func (ms *MetadataSizes) CodedIndexIsSmall(f *codedindex.Family) bool {
	return ms.codedSmall[f]
}

// RowSize is the byte size of one row of t.
func (ms *MetadataSizes) RowSize(t handles.TableIndex) int {
	return ms.rowSizes[t]
}

func (ms *MetadataSizes) TableStreamHeaderSize() int {
	return ms.headerSize
}

// MetadataTableStreamSize is the exact number of bytes the serializer emits,
// including the terminator and alignment padding.
func (ms *MetadataSizes) MetadataTableStreamSize() int {
	return ms.streamSize
}
