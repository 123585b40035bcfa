package program

import (
	"testing"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMapping(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, []int(IdentityMapping(3)))
}

func TestApplyOverrideNilIsNoOp(t *testing.T) {
	cfg := config.Defaults()
	before := cfg
	ApplyOverride(&cfg, nil)
	assert.Equal(t, before, cfg)
}

func TestApplyOverrideMergesSetFieldsOnly(t *testing.T) {
	assert := assert.New(t)
	cfg := config.Defaults()
	rev := 99
	ApplyOverride(&cfg, &ConfigOverride{RevCost: &rev})
	assert.Equal(99, cfg.RevCost)
	assert.Equal(config.Defaults().LCNOTCost, cfg.LCNOTCost, "unset fields are untouched")
	assert.Equal(config.Defaults().BasisSet, cfg.BasisSet)
}

func TestApplyOverrideAllFields(t *testing.T) {
	assert := assert.New(t)
	cfg := config.Defaults()
	rev, lcnot, fuel, allocator := 1, 2, 3, "simple"
	ApplyOverride(&cfg, &ConfigOverride{
		RevCost: &rev, LCNOTCost: &lcnot, InlineFuel: &fuel,
		BasisSet: []string{"U"}, Allocator: &allocator,
	})
	assert.Equal(1, cfg.RevCost)
	assert.Equal(2, cfg.LCNOTCost)
	assert.Equal(3, cfg.InlineFuel)
	assert.Equal([]string{"U"}, cfg.BasisSet)
	assert.Equal("simple", cfg.Allocator)
}

func TestBuildModuleInsertsRegistersGatesAndStatements(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	req := &Request{
		Qubits: 2,
		Bits:   1,
		Gates: []GateSpec{
			{Name: "bell", QParams: []string{"x", "y"}, Body: []StatementSpec{
				{Op: "cx", Qubits: []int{0, 1}},
			}},
		},
		Statements: []StatementSpec{
			{Op: "bell", Qubits: []int{0, 1}},
			{Op: "measure", Qubits: []int{0}, Cbit: intPtr(0)},
		},
	}

	m, err := BuildModule(req)
	require.NoError(err)

	regs := m.Registers()
	require.Len(regs, 2)
	assert.Equal("q", regs[0].Name())
	assert.Equal("c", regs[1].Name())

	gates := m.Gates()
	require.Len(gates, 1)
	assert.Equal("bell", gates[0].Name())

	stmts := m.Statements()
	require.Len(stmts, 2)
	_, ok := stmts[0].(*ast.Generic)
	assert.True(ok)
	_, ok = stmts[1].(*ast.Measure)
	assert.True(ok)
}

func TestBuildModuleDefaultsBitsToQubits(t *testing.T) {
	req := &Request{Qubits: 3, Statements: []StatementSpec{}}
	m, err := BuildModule(req)
	require.NoError(t, err)
	regs := m.Registers()
	require.Len(t, regs, 2)
	assert.Equal(t, int64(3), regs[1].Size().Value)
}

func TestBuildModuleWrapsCondOpInIfStmt(t *testing.T) {
	// Cond wraps the op in an IfStmt with the literal reg/value
	// preserved. BuildModule does not check that the named register
	// exists.
	req := &Request{
		Qubits: 1, Bits: 1,
		Statements: []StatementSpec{
			{Op: "reset", Qubits: []int{0}, Cond: &CondSpec{Reg: "c", Value: 1}},
		},
	}
	m, err := BuildModule(req)
	require.NoError(t, err)
	stmts := m.Statements()
	require.Len(t, stmts, 1)
	ifStmt, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "c", ifStmt.CondId().Value)
	assert.Equal(t, int64(1), ifStmt.CondValue().Value)
}

func TestBuildBareQOpCXRequiresTwoQubits(t *testing.T) {
	req := &Request{Qubits: 2, Statements: []StatementSpec{{Op: "cx", Qubits: []int{0}}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpMeasureRequiresCbit(t *testing.T) {
	req := &Request{Qubits: 1, Bits: 1, Statements: []StatementSpec{{Op: "measure", Qubits: []int{0}}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpResetRequiresOneQubit(t *testing.T) {
	req := &Request{Qubits: 1, Statements: []StatementSpec{{Op: "reset", Qubits: []int{0, 1}}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpBarrierRequiresQubits(t *testing.T) {
	req := &Request{Qubits: 1, Statements: []StatementSpec{{Op: "barrier"}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpEmptyOpRejected(t *testing.T) {
	req := &Request{Qubits: 1, Statements: []StatementSpec{{Op: ""}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpUBuildsUNode(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	req := &Request{Qubits: 1, Statements: []StatementSpec{{Op: "u", Qubits: []int{0}, Args: []float64{1.5}}}}
	m, err := BuildModule(req)
	require.NoError(err)
	stmts := m.Statements()
	require.Len(stmts, 1)
	u, ok := stmts[0].(*ast.U)
	require.True(ok)
	assert.Equal("q[0]", u.Qarg().Print(false))
	require.Len(u.Args().Items(), 1)
}

func TestBuildBareQOpURequiresExactlyOneQubit(t *testing.T) {
	req := &Request{Qubits: 2, Statements: []StatementSpec{{Op: "u", Qubits: []int{0, 1}, Args: []float64{1.5}}}}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildBareQOpNamedGateFallsThroughToGeneric(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	req := &Request{Qubits: 1, Statements: []StatementSpec{{Op: "bell", Qubits: []int{0}}}}
	m, err := BuildModule(req)
	require.NoError(err)
	stmts := m.Statements()
	require.Len(stmts, 1)
	g, ok := stmts[0].(*ast.Generic)
	require.True(ok)
	assert.Equal("bell", g.Id().Value)
}

func TestBuildGateDeclRejectsOutOfRangeFormalIndex(t *testing.T) {
	req := &Request{
		Qubits: 1,
		Gates: []GateSpec{
			{Name: "bad", QParams: []string{"x"}, Body: []StatementSpec{
				{Op: "reset", Qubits: []int{5}},
			}},
		},
	}
	_, err := BuildModule(req)
	assert.Error(t, err)
}

func TestBuildTargetDefaultsSingleRegister(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	req := &Request{Architecture: ArchSpec{Size: 3, Edges: [][2]int{{0, 1}, {1, 2}}}}
	target, err := BuildTarget(req)
	require.NoError(err)
	require.Len(target.Registers, 1)
	assert.Equal("Q", target.Registers[0].Name())
	assert.True(target.Graph.HasEdge(0, 1))
	assert.True(target.Graph.HasEdge(1, 2))
}

func TestBuildTargetHonorsExplicitRegisters(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	req := &Request{Architecture: ArchSpec{
		Size:      2,
		Registers: []RegSpec{{Name: "A", Size: 1}, {Name: "B", Size: 1}},
	}}
	target, err := BuildTarget(req)
	require.NoError(err)
	require.Len(target.Registers, 2)
	assert.Equal("A", target.Registers[0].Name())
	assert.Equal("B", target.Registers[1].Name())
}

func TestBuildTargetRejectsOutOfRangeEdge(t *testing.T) {
	req := &Request{Architecture: ArchSpec{Size: 2, Edges: [][2]int{{0, 9}}}}
	_, err := BuildTarget(req)
	assert.Error(t, err)
}

func intPtr(v int) *int { return &v }
