package depend

import (
	"testing"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/xbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIdRef(t *testing.T, name string, idx int64) *ast.IdRef {
	t.Helper()
	r, err := ast.NewIdRef(ast.NewLitString(name), ast.NewLitInt(idx))
	require.NoError(t, err)
	return r
}

func mustFormal(t *testing.T, name string) *ast.IdRef {
	t.Helper()
	r, err := ast.NewIdRef(ast.NewLitString(name), nil)
	require.NoError(t, err)
	return r
}

// gateCallingCX builds "gate cnot x,y { CX x,y; }".
func gateCallingCX(t *testing.T, name, a, b string) *ast.GateDecl {
	t.Helper()
	sign, err := ast.NewGateSign(ast.NewLitString(name), nil,
		ast.NewList(ast.NewLitString(a), ast.NewLitString(b)))
	require.NoError(t, err)
	cx, err := ast.NewCX(mustFormal(t, a), mustFormal(t, b))
	require.NoError(t, err)
	body, err := ast.NewGOpList(cx)
	require.NoError(t, err)
	decl, err := ast.NewGateDecl(sign, body)
	require.NoError(t, err)
	return decl
}

func numbered(t *testing.T, m *module.QModule) *xbit.Numbering {
	t.Helper()
	p := xbit.New()
	require.NoError(t, m.RunPass(p, false))
	return p.Result()
}

func TestGateLocalDependencySet(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	require.NoError(m.InsertGate(gateCallingCX(t, "cnot", "x", "y")))

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	deps, ok := p.GateDependencies("cnot")
	require.True(ok)
	assert.Equal([]Pair{{From: 0, To: 1}}, deps.Pairs)
}

func TestTopLevelDependencyVectorCX(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))
	cx, err := ast.NewCX(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1))
	require.NoError(err)
	_, err = m.InsertStatementLast(cx)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	result := p.Result()
	require.Len(result, 1)
	assert.Same(ast.Node(cx), result[0].CallPoint)
	assert.Equal([]Pair{{From: 0, To: 1}}, result[0].Pairs)
}

func TestTopLevelDependencyVectorThroughCallSubstitutesActuals(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	require.NoError(m.InsertGate(gateCallingCX(t, "cnot", "x", "y")))
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))

	call, err := ast.NewGeneric(ast.NewLitString("cnot"), nil,
		ast.NewList(mustIdRef(t, "q", 1), mustIdRef(t, "q", 0)))
	require.NoError(err)
	_, err = m.InsertStatementLast(call)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	result := p.Result()
	require.Len(result, 1)
	// call site passes (q[1], q[0]) for (x, y); gate-local pair x->y (0->1)
	// substitutes to global q[1]->q[0], i.e. (1, 0).
	assert.Equal([]Pair{{From: 1, To: 0}}, result[0].Pairs)
}

func TestIfStmtWrappedCXIsUnwrapped(t *testing.T) {
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))
	cReg, err := ast.NewRegDecl(ast.NewLitString("c"), ast.NewLitInt(1), false)
	require.NoError(err)
	require.NoError(m.InsertReg(cReg))

	cx, err := ast.NewCX(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1))
	require.NoError(err)
	ifStmt, err := ast.NewIfStmt(ast.NewLitString("c"), ast.NewLitInt(1), cx)
	require.NoError(err)
	_, err = m.InsertStatementLast(ifStmt)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	result := p.Result()
	require.Len(result, 1)
	assert.Equal(t, []Pair{{From: 0, To: 1}}, result[0].Pairs)
}

func TestRecursiveGateDetected(t *testing.T) {
	m := module.New(ast.NewLitReal(2), nil)
	sign, err := ast.NewGateSign(ast.NewLitString("loop"), nil, ast.NewList(ast.NewLitString("x"), ast.NewLitString("y")))
	require.NoError(t, err)
	call, err := ast.NewGeneric(ast.NewLitString("loop"), nil,
		ast.NewList(mustFormal(t, "x"), mustFormal(t, "y")))
	require.NoError(t, err)
	body, err := ast.NewGOpList(call)
	require.NoError(t, err)
	decl, err := ast.NewGateDecl(sign, body)
	require.NoError(t, err)
	require.NoError(t, m.InsertGate(decl))

	numbering := numbered(t, m)
	p := New(numbering)
	err = m.RunPass(p, false)
	assert.ErrorAs(t, err, &RecursiveGate{})
}

func TestUnknownGateInCallRejected(t *testing.T) {
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(t, err)
	require.NoError(t, m.InsertReg(reg))
	call, err := ast.NewGeneric(ast.NewLitString("ghost"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	numbering := numbered(t, m)
	p := New(numbering)
	err = m.RunPass(p, false)
	assert.ErrorAs(t, err, &UnknownGate{})
}

func TestOpaqueGateHasNoDependencies(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	sign, err := ast.NewGateSign(ast.NewLitString("u3"), nil, ast.NewList(ast.NewLitString("a")))
	require.NoError(err)
	opaque, err := ast.NewGateDecl(sign, nil)
	require.NoError(err)
	require.NoError(m.InsertGate(opaque))

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	deps, ok := p.GateDependencies("u3")
	require.True(ok)
	assert.Empty(deps.Pairs)
}

func TestSingleQubitOpsContributeNoDependency(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))
	cReg, err := ast.NewRegDecl(ast.NewLitString("c"), ast.NewLitInt(1), false)
	require.NoError(err)
	require.NoError(m.InsertReg(cReg))

	reset, err := ast.NewReset(mustIdRef(t, "q", 0))
	require.NoError(err)
	measure, err := ast.NewMeasure(mustIdRef(t, "q", 1), mustIdRef(t, "c", 0))
	require.NoError(err)
	_, err = m.InsertStatementLast(reset)
	require.NoError(err)
	_, err = m.InsertStatementLast(measure)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))
	assert.Empty(p.Result())
}

func TestBareUOpContributesNoDependency(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(1), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))

	u, err := ast.NewU(ast.NewList(ast.NewLitReal(1.5)), mustIdRef(t, "q", 0))
	require.NoError(err)
	_, err = m.InsertStatementLast(u)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))
	assert.Empty(p.Result())
}

func TestGenericNamedUOrHContributesNoDependency(t *testing.T) {
	// "U" reaching depend as a bare Generic call (rather than an
	// *ast.U node) must not be routed through the user-gate table --
	// neither must "H", the only builtin the allocator's REV/LCNOT
	// synthesis emits as a named Generic call instead of a declared
	// gate.
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(1), true)
	require.NoError(err)
	require.NoError(m.InsertReg(reg))

	uCall, err := ast.NewGeneric(ast.NewLitString("U"), ast.NewList(ast.NewLitReal(1.5)),
		ast.NewList(mustIdRef(t, "q", 0)))
	require.NoError(err)
	hCall, err := ast.NewGeneric(ast.NewLitString("H"), ast.NewList(), ast.NewList(mustIdRef(t, "q", 0)))
	require.NoError(err)
	_, err = m.InsertStatementLast(uCall)
	require.NoError(err)
	_, err = m.InsertStatementLast(hCall)
	require.NoError(err)

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))
	assert.Empty(p.Result())
}

func TestGateBodyCallingUDoesNotFailGateDependencyResolution(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	sign, err := ast.NewGateSign(ast.NewLitString("h"), nil, ast.NewList(ast.NewLitString("a")))
	require.NoError(err)
	uCall, err := ast.NewGeneric(ast.NewLitString("U"), ast.NewList(ast.NewLitReal(1.5)),
		ast.NewList(mustFormal(t, "a")))
	require.NoError(err)
	body, err := ast.NewGOpList(uCall)
	require.NoError(err)
	decl, err := ast.NewGateDecl(sign, body)
	require.NoError(err)
	require.NoError(m.InsertGate(decl))

	numbering := numbered(t, m)
	p := New(numbering)
	require.NoError(m.RunPass(p, false))

	deps, ok := p.GateDependencies("h")
	require.True(ok)
	assert.Empty(deps.Pairs)
}
