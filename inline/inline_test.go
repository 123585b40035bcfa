package inline

import (
	"testing"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module"
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

// bellGate builds "gate bell x,y { CX x,y; }".
func bellGate(t *testing.T) *ast.GateDecl {
	t.Helper()
	sign, err := ast.NewGateSign(ast.NewLitString("bell"), nil,
		ast.NewList(ast.NewLitString("x"), ast.NewLitString("y")))
	require.NoError(t, err)
	cx, err := ast.NewCX(mustFormal(t, "x"), mustFormal(t, "y"))
	require.NoError(t, err)
	body, err := ast.NewGOpList(cx)
	require.NoError(t, err)
	decl, err := ast.NewGateDecl(sign, body)
	require.NoError(t, err)
	return decl
}

func baseModule(t *testing.T) *module.QModule {
	t.Helper()
	m := module.New(ast.NewLitReal(2), nil)
	reg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(2), true)
	require.NoError(t, err)
	require.NoError(t, m.InsertReg(reg))
	return m
}

func TestInlineCallSubstitutesFormalsWithActuals(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := baseModule(t)
	require.NoError(m.InsertGate(bellGate(t)))

	call, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(err)
	_, err = m.InsertStatementLast(call)
	require.NoError(err)

	_, err = InlineCall(m, call)
	require.NoError(err)

	stmts := m.Statements()
	require.Len(stmts, 1)
	cx, ok := stmts[0].(*ast.CX)
	require.True(ok)
	assert.Equal("q[0]", cx.Ctrl().Print(false))
	assert.Equal("q[1]", cx.Tgt().Print(false))
}

func TestInlineCallUnknownGate(t *testing.T) {
	m := baseModule(t)
	call, err := ast.NewGeneric(ast.NewLitString("ghost"), nil, ast.NewList(mustIdRef(t, "q", 0)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	_, err = InlineCall(m, call)
	assert.ErrorAs(t, err, &UnknownGate{})
}

func TestInlineCallOpaqueGate(t *testing.T) {
	m := baseModule(t)
	sign, err := ast.NewGateSign(ast.NewLitString("u3"), nil, ast.NewList(ast.NewLitString("a")))
	require.NoError(t, err)
	opaque, err := ast.NewGateDecl(sign, nil)
	require.NoError(t, err)
	require.NoError(t, m.InsertGate(opaque))

	call, err := ast.NewGeneric(ast.NewLitString("u3"), nil, ast.NewList(mustIdRef(t, "q", 0)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	_, err = InlineCall(m, call)
	assert.ErrorAs(t, err, &OpaqueGate{})
}

func TestInlineCallArityMismatch(t *testing.T) {
	m := baseModule(t)
	require.NoError(t, m.InsertGate(bellGate(t)))

	call, err := ast.NewGeneric(ast.NewLitString("bell"), nil, ast.NewList(mustIdRef(t, "q", 0)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	_, err = InlineCall(m, call)
	assert.ErrorAs(t, err, &ArityMismatch{})
}

func TestInlineCallWrapsBodyInIfStmt(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := baseModule(t)
	cReg, err := ast.NewRegDecl(ast.NewLitString("c"), ast.NewLitInt(1), false)
	require.NoError(err)
	require.NoError(m.InsertReg(cReg))
	require.NoError(m.InsertGate(bellGate(t)))

	call, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(err)
	ifStmt, err := ast.NewIfStmt(ast.NewLitString("c"), ast.NewLitInt(1), call)
	require.NoError(err)
	_, err = m.InsertStatementLast(ifStmt)
	require.NoError(err)

	_, err = InlineCall(m, ifStmt)
	require.NoError(err)

	stmts := m.Statements()
	require.Len(stmts, 1)
	wrapped, ok := stmts[0].(*ast.IfStmt)
	require.True(ok)
	assert.Equal("c", wrapped.CondId().Value)
	_, ok = wrapped.Qop().(*ast.CX)
	assert.True(ok)
}

func TestInlineAllReachesFixpointAtBasis(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := baseModule(t)
	require.NoError(m.InsertGate(bellGate(t)))

	call, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(err)
	_, err = m.InsertStatementLast(call)
	require.NoError(err)

	numbering, deps, err := InlineAll(m, []string{"CX"}, 0)
	require.NoError(err)
	require.NotNil(numbering)
	assert.Len(deps, 1, "the inlined CX is the sole remaining dependency")

	stmts := m.Statements()
	require.Len(stmts, 1)
	_, ok := stmts[0].(*ast.CX)
	assert.True(ok)
}

func TestInlineAllFuelExhausted(t *testing.T) {
	m := baseModule(t)
	require.NoError(t, m.InsertGate(bellGate(t)))
	call, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	_, _, err = InlineAll(m, []string{"CX"}, 0)
	require.NoError(t, err) // sanity: unlimited fuel succeeds on a fresh module

	m2 := baseModule(t)
	require.NoError(t, m2.InsertGate(bellGate(t)))
	call2, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(t, err)
	_, err = m2.InsertStatementLast(call2)
	require.NoError(t, err)

	_, _, err = InlineAll(m2, []string{"CX"}, 0)
	_ = err

	// A gate two levels deep (outer -> bell) needs two inlining steps,
	// so fuel=1 runs out before the second step (steps >= fuel when
	// fuel > 0).
	m3 := baseModule(t)
	require.NoError(t, m3.InsertGate(bellGate(t)))
	outerSign, err := ast.NewGateSign(ast.NewLitString("outer"), nil,
		ast.NewList(ast.NewLitString("a"), ast.NewLitString("b")))
	require.NoError(t, err)
	innerCall, err := ast.NewGeneric(ast.NewLitString("bell"), nil,
		ast.NewList(mustFormal(t, "a"), mustFormal(t, "b")))
	require.NoError(t, err)
	outerBody, err := ast.NewGOpList(innerCall)
	require.NoError(t, err)
	outerDecl, err := ast.NewGateDecl(outerSign, outerBody)
	require.NoError(t, err)
	require.NoError(t, m3.InsertGate(outerDecl))

	call3, err := ast.NewGeneric(ast.NewLitString("outer"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(t, err)
	_, err = m3.InsertStatementLast(call3)
	require.NoError(t, err)

	_, _, err = InlineAll(m3, []string{"CX"}, 1)
	assert.ErrorAs(t, err, &InlineFuelExhausted{})
}

func TestInlineAllDetectsRecursiveGateCycle(t *testing.T) {
	m := baseModule(t)
	signA, err := ast.NewGateSign(ast.NewLitString("a"), nil, ast.NewList(ast.NewLitString("x"), ast.NewLitString("y")))
	require.NoError(t, err)
	callB, err := ast.NewGeneric(ast.NewLitString("b"), nil,
		ast.NewList(mustFormal(t, "x"), mustFormal(t, "y")))
	require.NoError(t, err)
	bodyA, err := ast.NewGOpList(callB)
	require.NoError(t, err)
	declA, err := ast.NewGateDecl(signA, bodyA)
	require.NoError(t, err)
	require.NoError(t, m.InsertGate(declA))

	signB, err := ast.NewGateSign(ast.NewLitString("b"), nil, ast.NewList(ast.NewLitString("x"), ast.NewLitString("y")))
	require.NoError(t, err)
	callA, err := ast.NewGeneric(ast.NewLitString("a"), nil,
		ast.NewList(mustFormal(t, "x"), mustFormal(t, "y")))
	require.NoError(t, err)
	bodyB, err := ast.NewGOpList(callA)
	require.NoError(t, err)
	declB, err := ast.NewGateDecl(signB, bodyB)
	require.NoError(t, err)
	require.NoError(t, m.InsertGate(declB))

	call, err := ast.NewGeneric(ast.NewLitString("a"), nil,
		ast.NewList(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1)))
	require.NoError(t, err)
	_, err = m.InsertStatementLast(call)
	require.NoError(t, err)

	_, _, err = InlineAll(m, []string{"CX"}, 0)
	assert.ErrorAs(t, err, &RecursiveGate{})
}
