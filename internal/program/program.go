// Package program builds a *module.QModule and a compiler.Target from
// a small JSON-friendly intermediate representation, standing in for
// the lexer/parser this system treats as an out-of-scope collaborator
// (§1). Both the HTTP API and the CLI front end share this IR so a
// program described once compiles identically through either surface.
package program

import (
	"fmt"
	"strings"

	"github.com/kegliz/qasmc/alloc"
	"github.com/kegliz/qasmc/arch"
	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/compiler"
	"github.com/kegliz/qasmc/internal/config"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/xbit"
)

// StatementSpec describes one top-level statement or gate-body
// operation: either a primitive (cx/measure/reset/barrier/u) or a call
// to a declared or not-yet-known gate by name, optionally guarded by a
// classical-register equality condition.
type StatementSpec struct {
	Op     string    `json:"op"`
	Qubits []int     `json:"qubits,omitempty"`
	Cbit   *int      `json:"cbit,omitempty"`
	Args   []float64 `json:"args,omitempty"`
	Cond   *CondSpec `json:"cond,omitempty"`
}

// CondSpec mirrors ast.IfStmt's "if (reg == value)" guard.
type CondSpec struct {
	Reg   string `json:"reg"`
	Value int64  `json:"value"`
}

// GateSpec declares a gate in terms of its own formal quantum
// parameters; body statements reference qubits by index into QParams.
type GateSpec struct {
	Name    string          `json:"name"`
	QParams []string        `json:"qparams"`
	Body    []StatementSpec `json:"body"`
}

// RegSpec names one hardware register the target architecture exposes.
type RegSpec struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ArchSpec is the target architecture: its adjacency (as a node count
// plus a directed edge list) and the hardware register(s) the rename
// pass splices in.
type ArchSpec struct {
	Size      int       `json:"size"`
	Edges     [][2]int  `json:"edges"`
	Registers []RegSpec `json:"registers,omitempty"`
}

// ConfigOverride lets a request tune the allocator/inliner away from
// config.Defaults() without touching the process-wide qasmc.yaml.
type ConfigOverride struct {
	RevCost    *int     `json:"rev_cost,omitempty"`
	LCNOTCost  *int     `json:"lcnot_cost,omitempty"`
	InlineFuel *int     `json:"inline_fuel,omitempty"`
	BasisSet   []string `json:"basis_set,omitempty"`
	Allocator  *string  `json:"allocator,omitempty"`
}

// Request is the JSON description of a program plus its target
// architecture: everything compiler.Compile needs, expressed without
// source text.
type Request struct {
	Qubits         int             `json:"qubits"`
	Bits           int             `json:"bits"`
	Gates          []GateSpec      `json:"gates,omitempty"`
	Statements     []StatementSpec `json:"statements"`
	Architecture   ArchSpec        `json:"architecture"`
	InitialMapping []int           `json:"initial_mapping,omitempty"`
	Config         *ConfigOverride `json:"config,omitempty"`
}

// ApplyOverride merges a request's ConfigOverride onto a base config.
func ApplyOverride(cfg *config.Config, o *ConfigOverride) {
	if o == nil {
		return
	}
	if o.RevCost != nil {
		cfg.RevCost = *o.RevCost
	}
	if o.LCNOTCost != nil {
		cfg.LCNOTCost = *o.LCNOTCost
	}
	if o.InlineFuel != nil {
		cfg.InlineFuel = *o.InlineFuel
	}
	if o.BasisSet != nil {
		cfg.BasisSet = o.BasisSet
	}
	if o.Allocator != nil {
		cfg.Allocator = *o.Allocator
	}
}

// IdentityMapping is the default initial program->hardware mapping
// when a Request doesn't specify one.
func IdentityMapping(size int) alloc.Mapping {
	m := make(alloc.Mapping, size)
	for i := range m {
		m[i] = i
	}
	return m
}

// BuildModule constructs a QModule by calling the same mutation API a
// pass or the allocator's rewrite driver would: registers and gate
// declarations first, then top-level statements in request order.
func BuildModule(req *Request) (*module.QModule, error) {
	m := module.New(ast.NewLitReal(2.0), nil)

	bits := req.Bits
	if bits <= 0 {
		bits = req.Qubits
	}
	qreg, err := ast.NewRegDecl(ast.NewLitString("q"), ast.NewLitInt(int64(req.Qubits)), true)
	if err != nil {
		return nil, err
	}
	creg, err := ast.NewRegDecl(ast.NewLitString("c"), ast.NewLitInt(int64(bits)), false)
	if err != nil {
		return nil, err
	}
	if err := m.InsertReg(qreg); err != nil {
		return nil, err
	}
	if err := m.InsertReg(creg); err != nil {
		return nil, err
	}

	for _, gs := range req.Gates {
		decl, err := buildGateDecl(gs)
		if err != nil {
			return nil, fmt.Errorf("gate %q: %w", gs.Name, err)
		}
		if err := m.InsertGate(decl); err != nil {
			return nil, err
		}
	}

	for i, spec := range req.Statements {
		stmt, err := buildTopLevelStatement(spec)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		if _, err := m.InsertStatementLast(stmt); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func buildGateDecl(gs GateSpec) (*ast.GateDecl, error) {
	qparams := ast.NewList()
	for _, name := range gs.QParams {
		qparams.Append(ast.NewLitString(name))
	}
	sign, err := ast.NewGateSign(ast.NewLitString(gs.Name), ast.NewList(), qparams)
	if err != nil {
		return nil, err
	}

	formal := func(idx int) (*ast.IdRef, error) {
		if idx < 0 || idx >= len(gs.QParams) {
			return nil, fmt.Errorf("qubit index %d out of range for formals %v", idx, gs.QParams)
		}
		return ast.NewIdRef(ast.NewLitString(gs.QParams[idx]), nil)
	}

	body, err := ast.NewGOpList()
	if err != nil {
		return nil, err
	}
	for i, spec := range gs.Body {
		op, err := buildQOp(spec, formal)
		if err != nil {
			return nil, fmt.Errorf("body statement %d: %w", i, err)
		}
		if err := body.Append(op); err != nil {
			return nil, err
		}
	}

	return ast.NewGateDecl(sign, body)
}

func buildTopLevelStatement(spec StatementSpec) (ast.Node, error) {
	qarg := func(idx int) (*ast.IdRef, error) {
		return ast.NewIdRef(ast.NewLitString("q"), ast.NewLitInt(int64(idx)))
	}
	return buildQOp(spec, qarg)
}

// buildQOp builds the quantum-op node for spec, resolving its qubit
// arguments through qarg (indexed "q[i]" references at the top level,
// unindexed formal-name references inside a gate body), and wraps the
// result in an IfStmt if spec carries a Cond.
func buildQOp(spec StatementSpec, qarg func(int) (*ast.IdRef, error)) (ast.Node, error) {
	op, err := buildBareQOp(spec, qarg)
	if err != nil {
		return nil, err
	}
	if spec.Cond == nil {
		return op, nil
	}
	return ast.NewIfStmt(ast.NewLitString(spec.Cond.Reg), ast.NewLitInt(spec.Cond.Value), op)
}

func buildBareQOp(spec StatementSpec, qarg func(int) (*ast.IdRef, error)) (ast.Node, error) {
	switch strings.ToLower(spec.Op) {
	case "cx":
		if len(spec.Qubits) != 2 {
			return nil, fmt.Errorf("cx requires exactly 2 qubits")
		}
		ctrl, err := qarg(spec.Qubits[0])
		if err != nil {
			return nil, err
		}
		tgt, err := qarg(spec.Qubits[1])
		if err != nil {
			return nil, err
		}
		return ast.NewCX(ctrl, tgt)

	case "measure":
		if len(spec.Qubits) != 1 || spec.Cbit == nil {
			return nil, fmt.Errorf("measure requires exactly 1 qubit and a cbit")
		}
		qb, err := qarg(spec.Qubits[0])
		if err != nil {
			return nil, err
		}
		cb, err := ast.NewIdRef(ast.NewLitString("c"), ast.NewLitInt(int64(*spec.Cbit)))
		if err != nil {
			return nil, err
		}
		return ast.NewMeasure(qb, cb)

	case "reset":
		if len(spec.Qubits) != 1 {
			return nil, fmt.Errorf("reset requires exactly 1 qubit")
		}
		qb, err := qarg(spec.Qubits[0])
		if err != nil {
			return nil, err
		}
		return ast.NewReset(qb)

	case "barrier":
		if len(spec.Qubits) == 0 {
			return nil, fmt.Errorf("barrier requires at least 1 qubit")
		}
		qargs := ast.NewList()
		for _, idx := range spec.Qubits {
			ref, err := qarg(idx)
			if err != nil {
				return nil, err
			}
			qargs.Append(ref)
		}
		return ast.NewBarrier(qargs)

	case "u":
		if len(spec.Qubits) != 1 {
			return nil, fmt.Errorf("u requires exactly 1 qubit")
		}
		qb, err := qarg(spec.Qubits[0])
		if err != nil {
			return nil, err
		}
		args := ast.NewList()
		for _, v := range spec.Args {
			args.Append(ast.NewLitReal(v))
		}
		return ast.NewU(args, qb)

	case "":
		return nil, fmt.Errorf("op is required")

	default:
		// A call to a declared, not-yet-declared, or basis gate: any
		// user gate name goes through Generic (§3's Generic covers
		// exactly this "call site, resolved later" case). The core
		// primitives (cx/measure/reset/barrier/u) are handled above as
		// their own AST kinds, never as a named Generic call.
		qargs := ast.NewList()
		for _, idx := range spec.Qubits {
			ref, err := qarg(idx)
			if err != nil {
				return nil, err
			}
			qargs.Append(ref)
		}
		args := ast.NewList()
		for _, v := range spec.Args {
			args.Append(ast.NewLitReal(v))
		}
		return ast.NewGeneric(ast.NewLitString(spec.Op), args, qargs)
	}
}

// BuildTarget turns an ArchSpec into the compiler.Target the pipeline
// needs: the adjacency graph, a qubit-numbering scope for the
// hardware's own qubits, and the register declarations the rename pass
// splices into the output in place of the program's quantum registers.
func BuildTarget(req *Request) (compiler.Target, error) {
	g := arch.New(req.Architecture.Size, nil)
	for _, e := range req.Architecture.Edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return compiler.Target{}, err
		}
	}

	regs := req.Architecture.Registers
	if len(regs) == 0 {
		regs = []RegSpec{{Name: "Q", Size: req.Architecture.Size}}
	}
	var hwRegs []*ast.RegDecl
	for _, r := range regs {
		decl, err := ast.NewRegDecl(ast.NewLitString(r.Name), ast.NewLitInt(int64(r.Size)), true)
		if err != nil {
			return compiler.Target{}, err
		}
		hwRegs = append(hwRegs, decl)
	}

	qubits, err := xbit.NewScopeFromRegisters(hwRegs...)
	if err != nil {
		return compiler.Target{}, err
	}

	return compiler.Target{Graph: g, Qubits: qubits, Registers: hwRegs}, nil
}
