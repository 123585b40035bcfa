package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIdRef(t *testing.T, name string, idx int64) *IdRef {
	t.Helper()
	ref, err := NewIdRef(NewLitString(name), NewLitInt(idx))
	require.NoError(t, err)
	return ref
}

func TestMeasurePrintAndAccessors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	qb := mustIdRef(t, "q", 0)
	cb := mustIdRef(t, "c", 0)
	m, err := NewMeasure(qb, cb)
	require.NoError(err)

	assert.Equal("measure q[0] -> c[0]", m.Print(false))
	assert.Equal("measure", m.OperationName())
	assert.Same(qb, m.Qbit())
	assert.Same(cb, m.Cbit())
	assert.True(m.Kind().IsQOp())
}

func TestMeasureRequiresBothArgs(t *testing.T) {
	_, err := NewMeasure(nil, mustIdRef(t, "c", 0))
	assert.Error(t, err)
	_, err = NewMeasure(mustIdRef(t, "q", 0), nil)
	assert.Error(t, err)
}

func TestResetPrint(t *testing.T) {
	require := require.New(t)
	r, err := NewReset(mustIdRef(t, "q", 2))
	require.NoError(err)
	assert.Equal(t, "reset q[2]", r.Print(false))
	assert.Equal(t, "reset", r.OperationName())
}

func TestBarrierPrint(t *testing.T) {
	require := require.New(t)
	qargs := NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1))
	b, err := NewBarrier(qargs)
	require.NoError(err)
	assert.Equal(t, "barrier q[0], q[1]", b.Print(false))
}

func TestCXPrintAndAccessors(t *testing.T) {
	require := require.New(t)
	ctrl := mustIdRef(t, "q", 0)
	tgt := mustIdRef(t, "q", 1)
	cx, err := NewCX(ctrl, tgt)
	require.NoError(err)
	assert.Equal(t, "CX q[0], q[1]", cx.Print(false))
	assert.Same(t, ctrl, cx.Ctrl())
	assert.Same(t, tgt, cx.Tgt())
}

func TestUPrint(t *testing.T) {
	require := require.New(t)
	args := NewList(NewLitReal(1), NewLitReal(2), NewLitReal(3))
	u, err := NewU(args, mustIdRef(t, "q", 0))
	require.NoError(err)
	assert.Equal(t, "U(1, 2, 3) q[0]", u.Print(false))
}

func TestGenericPrintWithAndWithoutArgs(t *testing.T) {
	require := require.New(t)
	qargs := NewList(mustIdRef(t, "q", 0))

	noArgs, err := NewGeneric(NewLitString("h"), nil, qargs)
	require.NoError(err)
	assert.Equal(t, "h q[0]", noArgs.Print(false))
	assert.Equal(t, "h", noArgs.OperationName())

	withArgs, err := NewGeneric(NewLitString("rx"), NewList(NewLitReal(1.5)), NewList(mustIdRef(t, "q", 1)))
	require.NoError(err)
	assert.Equal(t, "rx(1.5) q[1]", withArgs.Print(false))
}

func TestGenericRequiresIdAndQargs(t *testing.T) {
	_, err := NewGeneric(nil, nil, NewList())
	assert.Error(t, err)
	_, err = NewGeneric(NewLitString("h"), nil, nil)
	assert.Error(t, err)
}

func TestIfStmtWrapsNonIfQOp(t *testing.T) {
	require := require.New(t)
	qb := mustIdRef(t, "q", 0)
	r, err := NewReset(qb)
	require.NoError(err)

	ifStmt, err := NewIfStmt(NewLitString("c"), NewLitInt(1), r)
	require.NoError(err)
	assert.Equal(t, "if (c == 1) reset q[0]", ifStmt.Print(false))
	assert.Same(t, Node(r), ifStmt.Qop())
}

func TestIfStmtRejectsNestedIf(t *testing.T) {
	require := require.New(t)
	inner, err := NewIfStmt(NewLitString("c"), NewLitInt(0), mustReset(t))
	require.NoError(err)

	_, err = NewIfStmt(NewLitString("c"), NewLitInt(1), inner)
	assert.Error(t, err)
}

func mustReset(t *testing.T) *Reset {
	t.Helper()
	r, err := NewReset(mustIdRef(t, "q", 0))
	require.NoError(t, err)
	return r
}

func TestOperationNameDispatchesThroughIfStmt(t *testing.T) {
	require := require.New(t)
	cx, err := NewCX(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1))
	require.NoError(err)
	ifStmt, err := NewIfStmt(NewLitString("c"), NewLitInt(1), cx)
	require.NoError(err)

	name, err := OperationName(ifStmt)
	require.NoError(err)
	assert.Equal(t, "CX", name)
}

func TestOperationNameRejectsNonQOp(t *testing.T) {
	_, err := OperationName(NewLitInt(1))
	assert.Error(t, err)
}
