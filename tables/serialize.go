package tables

import (
	"cmp"
	"slices"

	"go.uber.org/zap"

	"ecmameta/blob"
	"ecmameta/codedindex"
	"ecmameta/common"
	"ecmameta/handles"
	"ecmameta/sizes"
)

const (
	tableStreamMajorVersion = 2
	tableStreamMinorVersion = 0
)

// Serialize writes the table stream: header, the rows of every present table
// in serialization order, a terminator byte and padding to a 4-byte boundary.
// ms must have been computed from RowCounts and the final heap sizes, and w is
// expected to be 4-byte aligned. methodBodyStreamRVA and
// mappedFieldDataStreamRVA are added to the offsets passed to
// AddMethodDefinition and AddFieldRelativeVirtualAddress.
//
// Serialize does not modify the builder and may be called more than once.
func (b *Builder) Serialize(w *blob.Builder, ms *sizes.MetadataSizes, methodBodyStreamRVA, mappedFieldDataStreamRVA int) error {
	if w == nil {
		return common.InvalidArgument("writer", "writer is required")
	}
	if ms == nil {
		return common.InvalidArgument("metadataSizes", "metadata sizes are required")
	}

	if b.opts.verify {
		if err := b.verifyInput(ms); err != nil {
			b.logger().Error("refusing to serialize tables", zap.Error(err))
			return err
		}
	}

	start := w.Count()
	writeHeader(w, ms)
	if b.opts.verify {
		if n := w.Count() - start; n != ms.TableStreamHeaderSize() {
			err := common.Inconsistent("table stream header is %d bytes, expected %d", n, ms.TableStreamHeaderSize())
			b.logger().Error("serialized header has wrong length", zap.Error(err))
			return err
		}
	}

	tw := &tableWriter{w: w, ms: ms, verify: b.opts.verify}
	if err := b.writeTables(tw, methodBodyStreamRVA, mappedFieldDataStreamRVA); err != nil {
		b.logger().Error("serialized rows are inconsistent with the layout", zap.Error(err))
		return err
	}

	// terminator
	w.WriteUint8(0)
	w.Align(4)

	n := w.Count() - start
	if b.opts.verify && n != ms.MetadataTableStreamSize() {
		err := common.Inconsistent("table stream is %d bytes, expected %d", n, ms.MetadataTableStreamSize())
		b.logger().Error("serialized stream has wrong length", zap.Error(err))
		return err
	}

	b.logger().Debug("serialized table stream",
		zap.Int("bytes", n),
		zap.Uint64("presentTables", ms.PresentTablesMask()),
	)
	return nil
}

func writeHeader(w *blob.Builder, ms *sizes.MetadataSizes) {
	// reserved
	w.WriteUint32(0)
	w.WriteUint8(tableStreamMajorVersion)
	w.WriteUint8(tableStreamMinorVersion)
	w.WriteUint8(ms.HeapSizeFlags())
	// reserved, always 1
	w.WriteUint8(1)
	w.WriteUint64(ms.PresentTablesMask())
	w.WriteUint64(ms.SortedTablesMask())

	counts := ms.RowCounts()
	for i, n := range counts {
		if ms.IsPresent(handles.TableIndex(i)) {
			w.WriteUint32(uint32(n))
		}
	}
}

// tableWriter writes column values with the widths decided by ms. With verify
// set it records the first reference that does not fit its column.
type tableWriter struct {
	w      *blob.Builder
	ms     *sizes.MetadataSizes
	verify bool
	err    error
}

func (tw *tableWriter) reference(v uint32, small bool, column string) {
	if tw.verify && small && v > 0xFFFF && tw.err == nil {
		tw.err = common.Inconsistent("%s reference %#x does not fit in 2 bytes", column, v)
	}
	tw.w.WriteReference(v, small)
}

func (tw *tableWriter) str(h handles.StringHandle) {
	tw.reference(uint32(h), tw.ms.StringReferenceIsSmall(), "string heap")
}

func (tw *tableWriter) guid(h handles.GuidHandle) {
	tw.reference(uint32(h), tw.ms.GuidReferenceIsSmall(), "guid heap")
}

func (tw *tableWriter) blob(h handles.BlobHandle) {
	tw.reference(uint32(h), tw.ms.BlobReferenceIsSmall(), "blob heap")
}

func (tw *tableWriter) ref(rowID uint32, table handles.TableIndex) {
	tw.reference(rowID, tw.ms.ReferenceIsSmall(table), table.String())
}

func (tw *tableWriter) coded(value uint32, f *codedindex.Family) {
	tw.reference(value, tw.ms.CodedIndexIsSmall(f), f.Name)
}

// ordered returns rows in key order. Clean tables are returned as is; dirty
// ones are stably sorted on a copy so that rows with equal keys keep their
// insertion order and the builder stays untouched.
func ordered[T any](b *Builder, table handles.TableIndex, rows []T, key func(*T) uint64) []T {
	if !b.NeedsSorting(table) {
		return rows
	}

	b.logger().Debug("sorting table", zap.Stringer("table", table), zap.Int("rows", len(rows)))
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(x, y T) int {
		return cmp.Compare(key(&x), key(&y))
	})
	return sorted
}

// checkOrdered reports a consistency violation when rows are not in key order
// after sorting. It only runs with verification enabled.
func checkOrdered[T any](b *Builder, table handles.TableIndex, rows []T, key func(*T) uint64) error {
	if !b.opts.verify {
		return nil
	}
	for i := 1; i < len(rows); i++ {
		if key(&rows[i]) < key(&rows[i-1]) {
			return common.Inconsistent("%s row %d is out of order after sorting", table, i+1)
		}
	}
	return nil
}
