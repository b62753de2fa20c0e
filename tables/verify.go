package tables

import (
	"ecmameta/common"
	"ecmameta/handles"
	"ecmameta/sizes"
)

// verifyInput checks what Serialize relies on before any byte is written: the
// layout was computed from this builder's row counts, and every table the
// caller must fill in order was filled in order.
func (b *Builder) verifyInput(ms *sizes.MetadataSizes) error {
	counts := b.RowCounts()
	expected := ms.RowCounts()
	for _, t := range handles.SerializationOrder {
		if counts[t] != expected[t] {
			return common.Inconsistent("%s has %d rows but layout was computed for %d", t, counts[t], expected[t])
		}
	}

	checks := []func() error{
		b.checkClassLayoutOrder,
		b.checkFieldLayoutOrder,
		b.checkMethodImplOrder,
		b.checkImplMapOrder,
		b.checkFieldRvaOrder,
		b.checkNestedClassOrder,
		b.checkGenericParamOrder,
		b.checkGenericParamConstraintOrder,
		b.checkLocalScopeOrder,
		b.checkStateMachineMethodOrder,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// inOrder returns an error naming the first row i for which before(rows[i-1],
// rows[i]) does not hold.
func inOrder[T any](table handles.TableIndex, rows []T, before func(prev, cur *T) bool) error {
	for i := 1; i < len(rows); i++ {
		if !before(&rows[i-1], &rows[i]) {
			return common.Inconsistent("%s row %d is out of order", table, i+1)
		}
	}
	return nil
}

func (b *Builder) checkClassLayoutOrder() error {
	return inOrder(handles.ClassLayout, b.classLayoutTable, func(prev, cur *classLayoutRow) bool {
		return prev.parent < cur.parent
	})
}

func (b *Builder) checkFieldLayoutOrder() error {
	return inOrder(handles.FieldLayout, b.fieldLayoutTable, func(prev, cur *fieldLayoutRow) bool {
		return prev.field < cur.field
	})
}

func (b *Builder) checkMethodImplOrder() error {
	return inOrder(handles.MethodImpl, b.methodImplTable, func(prev, cur *methodImplRow) bool {
		return prev.class <= cur.class
	})
}

func (b *Builder) checkImplMapOrder() error {
	return inOrder(handles.ImplMap, b.implMapTable, func(prev, cur *implMapRow) bool {
		return prev.memberForwarded < cur.memberForwarded
	})
}

func (b *Builder) checkFieldRvaOrder() error {
	return inOrder(handles.FieldRva, b.fieldRvaTable, func(prev, cur *fieldRvaRow) bool {
		return prev.field < cur.field
	})
}

func (b *Builder) checkNestedClassOrder() error {
	return inOrder(handles.NestedClass, b.nestedClassTable, func(prev, cur *nestedClassRow) bool {
		return prev.nestedClass <= cur.nestedClass
	})
}

func (b *Builder) checkGenericParamOrder() error {
	return inOrder(handles.GenericParam, b.genericParamTable, func(prev, cur *genericParamRow) bool {
		return prev.owner < cur.owner || (prev.owner == cur.owner && prev.number < cur.number)
	})
}

func (b *Builder) checkGenericParamConstraintOrder() error {
	return inOrder(handles.GenericParamConstraint, b.genericParamConstraintTable, func(prev, cur *genericParamConstraintRow) bool {
		return prev.owner <= cur.owner
	})
}

func (b *Builder) checkLocalScopeOrder() error {
	return inOrder(handles.LocalScope, b.localScopeTable, func(prev, cur *localScopeRow) bool {
		if prev.method != cur.method {
			return prev.method < cur.method
		}
		if prev.startOffset != cur.startOffset {
			return prev.startOffset < cur.startOffset
		}
		return prev.length >= cur.length
	})
}

func (b *Builder) checkStateMachineMethodOrder() error {
	return inOrder(handles.StateMachineMethod, b.stateMachineMethodTable, func(prev, cur *stateMachineMethodRow) bool {
		return prev.moveNextMethod < cur.moveNextMethod
	})
}
