package rename

import (
	"testing"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/xbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegDecl(t *testing.T, name string, size int64, isQuantum bool) *ast.RegDecl {
	t.Helper()
	r, err := ast.NewRegDecl(ast.NewLitString(name), ast.NewLitInt(size), isQuantum)
	require.NoError(t, err)
	return r
}

func mustIdRef(t *testing.T, name string, idx int64) *ast.IdRef {
	t.Helper()
	r, err := ast.NewIdRef(ast.NewLitString(name), ast.NewLitInt(idx))
	require.NoError(t, err)
	return r
}

func TestFromMappingBuildsHardwareTable(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	hwReg := mustRegDecl(t, "Q", 2, true)
	hwQubits, err := xbit.NewScopeFromRegisters(hwReg)
	require.NoError(err)

	table, err := FromMapping([]int{1, 0}, hwQubits)
	require.NoError(err)
	require.Len(table, 2)
	assert.Equal("Q[1]", table[0].Print(false))
	assert.Equal("Q[0]", table[1].Print(false))
}

func TestFromMappingRejectsOutOfRangeHardwareId(t *testing.T) {
	hwReg := mustRegDecl(t, "Q", 1, true)
	hwQubits, err := xbit.NewScopeFromRegisters(hwReg)
	require.NoError(t, err)

	_, err = FromMapping([]int{5}, hwQubits)
	assert.Error(t, err)
}

func TestApplyRewritesIndexedQubitReferences(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	require.NoError(m.InsertReg(mustRegDecl(t, "q", 2, true)))

	cx, err := ast.NewCX(mustIdRef(t, "q", 0), mustIdRef(t, "q", 1))
	require.NoError(err)
	_, err = m.InsertStatementLast(cx)
	require.NoError(err)

	p := xbit.New()
	require.NoError(m.RunPass(p, false))
	numbering := p.Result()

	hwReg := mustRegDecl(t, "Q", 2, true)
	hwQubits, err := xbit.NewScopeFromRegisters(hwReg)
	require.NoError(err)
	table, err := FromMapping([]int{1, 0}, hwQubits)
	require.NoError(err)

	require.NoError(Apply(m, numbering, table))

	stmts := m.Statements()
	require.Len(stmts, 1)
	rewritten := stmts[0].(*ast.CX)
	assert.Equal("Q[1]", rewritten.Ctrl().Print(false))
	assert.Equal("Q[0]", rewritten.Tgt().Print(false))
}

func TestApplyLeavesUnmappedReferencesAlone(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	require.NoError(m.InsertReg(mustRegDecl(t, "q", 2, true)))
	cReg := mustRegDecl(t, "c", 1, false)
	require.NoError(m.InsertReg(cReg))

	measure, err := ast.NewMeasure(mustIdRef(t, "q", 0), mustIdRef(t, "c", 0))
	require.NoError(err)
	_, err = m.InsertStatementLast(measure)
	require.NoError(err)

	p := xbit.New()
	require.NoError(m.RunPass(p, false))
	numbering := p.Result()

	// Only map qubit id 0; the classical bit reference is untouched
	// since rename walks the global qubit scope only.
	hwReg := mustRegDecl(t, "Q", 1, true)
	hwQubits, err := xbit.NewScopeFromRegisters(hwReg)
	require.NoError(err)
	table, err := FromMapping([]int{0}, hwQubits)
	require.NoError(err)

	require.NoError(Apply(m, numbering, table))

	stmts := m.Statements()
	require.Len(stmts, 1)
	rewritten := stmts[0].(*ast.Measure)
	assert.Equal("Q[0]", rewritten.Qbit().Print(false))
	assert.Equal("c[0]", rewritten.Cbit().Print(false))
}

func TestReplaceRegistersSwapsQuantumKeepsClassical(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	m := module.New(ast.NewLitReal(2), nil)
	require.NoError(m.InsertReg(mustRegDecl(t, "q", 2, true)))
	require.NoError(m.InsertReg(mustRegDecl(t, "c", 1, false)))

	hwReg := mustRegDecl(t, "Q", 2, true)
	require.NoError(ReplaceRegisters(m, []*ast.RegDecl{hwReg}))

	regs := m.Registers()
	require.Len(regs, 2)
	names := map[string]bool{}
	for _, r := range regs {
		names[r.Name()] = true
	}
	assert.True(names["Q"])
	assert.True(names["c"])
	assert.False(names["q"], "original quantum register must be replaced")
}
