package tables

import (
	"math"

	"ecmameta/codedindex"
	"ecmameta/common"
	"ecmameta/handles"
)

// args translates and range-checks the arguments of one Add call. The first
// failure sticks and later checks become no-ops, so a call validates every
// argument before it appends anything.
type args struct {
	err error
}

func (a *args) fail(param, format string, v ...any) {
	if a.err == nil {
		a.err = common.InvalidArgument(param, format, v...)
	}
}

func (a *args) row(h handles.EntityHandle, table handles.TableIndex, param string) uint32 {
	if a.err != nil {
		return 0
	}
	id, err := codedindex.RowID(h, table, param)
	if err != nil {
		a.err = err
		return 0
	}
	return uint32(id)
}

func (a *args) coded(f *codedindex.Family, h handles.EntityHandle, param string) uint32 {
	if a.err != nil {
		return 0
	}
	v, err := f.Encode(h, param)
	if err != nil {
		a.err = err
		return 0
	}
	return uint32(v)
}

func (a *args) notNil(h handles.EntityHandle, param string) {
	if h.IsNil() {
		a.fail(param, "handle must not be nil")
	}
}

// maxTokenRowID is the largest row id a metadata token can carry.
const maxTokenRowID = 0x00FFFFFF

// token returns the metadata token of a non-nil handle whose row id fits in
// the token's 24 bits.
func (a *args) token(h handles.EntityHandle, param string) uint32 {
	a.notNil(h, param)
	if h.RowID < 0 || h.RowID > maxTokenRowID {
		a.fail(param, "row id %d does not fit in a token", h.RowID)
	}
	if a.err != nil {
		return 0
	}
	return h.Token()
}

func (a *args) u16(v int, param string) uint16 {
	if v < 0 || v > math.MaxUint16 {
		a.fail(param, "%d does not fit in 16 bits", v)
		return 0
	}
	return uint16(v)
}

func (a *args) u32(v int, param string) uint32 {
	if v < 0 || uint64(v) > math.MaxUint32 {
		a.fail(param, "%d is not a valid unsigned 32-bit value", v)
		return 0
	}
	return uint32(v)
}

func (a *args) i32(v int, param string) int32 {
	if int64(v) < math.MinInt32 || int64(v) > math.MaxInt32 {
		a.fail(param, "%d does not fit in 32 bits", v)
		return 0
	}
	return int32(v)
}
