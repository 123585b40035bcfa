// Package depend implements the dependency-analysis pass (§4.F): for
// every two-qubit gate call reachable from the statement list, it
// produces the ordered qubit-pair dependencies implied by that call's
// transitive body, without physically inlining anything.
//
// The pass computes a per-gate, scope-local dependency set during its
// Gates phase (memoized, recursing into callees), matching the
// concrete scenarios' "gate scope x↦0, y↦1; dependency set of cnot is
// {0→1}" framing directly. Its Statements phase then instantiates
// each call site's dependencies by substituting the called gate's
// cached scope-local pairs with the call's actual global ids.
package depend

import (
	"fmt"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module/pass"
	"github.com/kegliz/qasmc/xbit"
)

const PassID = "dependency-analysis"

// Pair is an ordered qubit-pair dependency, (from → to).
type Pair struct {
	From, To int
}

// Entry is one DependencyVector element: the originating top-level
// call point (or its IfStmt wrapper) plus the pairs implied by its
// transitive body.
type Entry struct {
	CallPoint ast.Node
	Pairs     []Pair
}

// Vector is the ordered DependencyVector of §3: iteration order
// equals source order of its call points.
type Vector []Entry

// GateDeps is a gate's own scope-local dependency set (ids in
// 0..m-1, the gate's own formal-parameter numbering).
type GateDeps struct {
	Pairs []Pair
}

// RecursiveGate is returned when a gate's call graph contains a
// cycle, detected during dependency recursion (the Dependency pass
// recurses through gate bodies the same way the Inliner does, so it
// needs the same guard).
type RecursiveGate struct{ Name string }

func (e RecursiveGate) Error() string { return fmt.Sprintf("depend: recursive gate %q", e.Name) }

// UnknownGate is returned when a call references a gate name absent
// from the module's gate table.
type UnknownGate struct{ Name string }

func (e UnknownGate) Error() string { return fmt.Sprintf("depend: unknown gate %q", e.Name) }

// builtinSingleQubit names the core single-qubit primitives that never
// appear in the module's gate table: "U" (§4.F: "for U, no two-qubit
// dependency is emitted") and "H", which only ever shows up as a
// Generic call because the allocator's REV/LCNOT synthesis emits it
// that way rather than defining a declared gate for it. Both carry
// exactly one qubit argument, so neither can contribute a pair.
func builtinSingleQubit(name string) bool {
	return name == "U" || name == "H"
}

// Pass runs the dependency-analysis algorithm and stores its result
// for retrieval via Result() once RunPass has completed. It depends
// on an already-run xbit.Pass; construct with the xbit numbering.
type Pass struct {
	pass.Base
	numbering *xbit.Numbering
	gateDeps  map[string]*GateDeps
	visiting  map[string]bool
	mod       pass.Module
	result    Vector
}

// New returns a dependency-analysis pass keyed off an already-computed
// XbitNumbering.
func New(numbering *xbit.Numbering) *Pass {
	return &Pass{numbering: numbering}
}

func (p *Pass) ID() string { return PassID }

func (p *Pass) Flags() pass.Flags { return pass.Flags{Gates: true, Statements: true} }

func (p *Pass) Initialize(m pass.Module) error {
	p.gateDeps = make(map[string]*GateDeps)
	p.visiting = make(map[string]bool)
	p.mod = m
	p.result = nil
	return nil
}

// RunOnGate computes (memoized) decl's scope-local dependency set,
// recursing into any gate it calls.
func (p *Pass) RunOnGate(m pass.Module, decl *ast.GateDecl) error {
	_, err := p.gateDepsFor(m, decl.Name())
	return err
}

// gateDepsFor returns the memoized scope-local dependency set for the
// named gate, computing it (and any callee it needs) on first
// request. This makes gate-phase ordering irrelevant: a gate that
// calls one declared later in the table still resolves correctly.
func (p *Pass) gateDepsFor(m pass.Module, name string) (*GateDeps, error) {
	if d, ok := p.gateDeps[name]; ok {
		return d, nil
	}
	if p.visiting[name] {
		return nil, RecursiveGate{Name: name}
	}
	decl, err := lookupGate(m, name)
	if err != nil {
		return nil, err
	}
	deps := &GateDeps{}
	if decl.Opaque {
		p.gateDeps[name] = deps
		return deps, nil
	}
	scope := p.numbering.GateScopes[name]
	if scope == nil {
		return nil, xbit.UnknownId{Name: name}
	}
	p.visiting[name] = true
	for _, op := range decl.Body().Items() {
		pairs, err := p.expandInScope(m, scope, unwrapIf(op))
		if err != nil {
			delete(p.visiting, name)
			return nil, err
		}
		deps.Pairs = append(deps.Pairs, pairs...)
	}
	delete(p.visiting, name)
	p.gateDeps[name] = deps
	return deps, nil
}

// expandInScope computes the scope-local pairs implied by a single
// quantum operation, where scope is the id-space the operation's bare
// qubit references live in (a gate's formal-parameter scope).
func (p *Pass) expandInScope(m pass.Module, scope *xbit.Scope, op ast.Node) ([]Pair, error) {
	switch n := op.(type) {
	case *ast.CX:
		from, err := localID(scope, n.Ctrl())
		if err != nil {
			return nil, err
		}
		to, err := localID(scope, n.Tgt())
		if err != nil {
			return nil, err
		}
		return []Pair{{From: from, To: to}}, nil
	case *ast.Generic:
		if builtinSingleQubit(n.OperationName()) {
			return nil, nil
		}
		return p.expandCallInScope(m, scope, n.OperationName(), n.Qargs())
	case *ast.U, *ast.Measure, *ast.Reset, *ast.Barrier:
		return nil, nil
	default:
		return nil, nil
	}
}

// expandCallInScope maps a nested call's own scope-local dependencies
// into the enclosing scope's id space by substituting this call's
// qargs (bare formal names of the enclosing scope) for the callee's
// formal positions.
func (p *Pass) expandCallInScope(m pass.Module, enclosing *xbit.Scope, calleeName string, qargs *ast.List) ([]Pair, error) {
	callee, err := p.gateDepsFor(m, calleeName)
	if err != nil {
		return nil, err
	}
	if len(callee.Pairs) == 0 {
		return nil, nil
	}
	actual := make([]int, qargs.ChildCount())
	for i, qarg := range qargs.Items() {
		id, err := localID(enclosing, qarg)
		if err != nil {
			return nil, err
		}
		actual[i] = id
	}
	out := make([]Pair, len(callee.Pairs))
	for i, pr := range callee.Pairs {
		out[i] = Pair{From: actual[pr.From], To: actual[pr.To]}
	}
	return out, nil
}

// RunOnStatement instantiates the top-level DependencyVector entry
// (if any) for a single top-level statement, in source order.
func (p *Pass) RunOnStatement(m pass.Module, stmt ast.Node) error {
	qop := unwrapIf(stmt)
	switch n := qop.(type) {
	case *ast.CX:
		from, err := globalID(p.numbering.GlobalQubits, n.Ctrl())
		if err != nil {
			return err
		}
		to, err := globalID(p.numbering.GlobalQubits, n.Tgt())
		if err != nil {
			return err
		}
		p.result = append(p.result, Entry{CallPoint: stmt, Pairs: []Pair{{From: from, To: to}}})
	case *ast.Generic:
		if builtinSingleQubit(n.OperationName()) {
			return nil
		}
		callee, err := p.gateDepsFor(m, n.OperationName())
		if err != nil {
			return err
		}
		if len(callee.Pairs) == 0 {
			return nil
		}
		actual := make([]int, n.Qargs().ChildCount())
		for i, qarg := range n.Qargs().Items() {
			id, err := globalID(p.numbering.GlobalQubits, qarg)
			if err != nil {
				return err
			}
			actual[i] = id
		}
		pairs := make([]Pair, len(callee.Pairs))
		for i, pr := range callee.Pairs {
			pairs[i] = Pair{From: actual[pr.From], To: actual[pr.To]}
		}
		p.result = append(p.result, Entry{CallPoint: stmt, Pairs: pairs})
	case *ast.U, *ast.Measure, *ast.Reset, *ast.Barrier:
		// no two-qubit dependency
	}
	return nil
}

// Result returns the DependencyVector computed by the last successful
// run, in source order. Nil until RunPass has completed.
func (p *Pass) Result() Vector { return p.result }

// GateDependencies exposes the memoized per-gate scope-local
// dependency set, mainly for tests asserting the "gate-local
// dependency" scenario directly.
func (p *Pass) GateDependencies(name string) (*GateDeps, bool) {
	d, ok := p.gateDeps[name]
	return d, ok
}

func unwrapIf(n ast.Node) ast.Node {
	if ifs, ok := n.(*ast.IfStmt); ok {
		return ifs.Qop()
	}
	return n
}

func localID(scope *xbit.Scope, qarg ast.Node) (int, error) {
	ref, ok := qarg.(*ast.IdRef)
	if !ok {
		return 0, fmt.Errorf("depend: expected identifier, got %s", qarg.Kind())
	}
	id, ok := scope.ID(ref.Name())
	if !ok {
		return 0, xbit.UnknownId{Name: ref.Name()}
	}
	return id, nil
}

func globalID(scope *xbit.Scope, qarg ast.Node) (int, error) {
	ref, ok := qarg.(*ast.IdRef)
	if !ok {
		return 0, fmt.Errorf("depend: expected identifier, got %s", qarg.Kind())
	}
	return xbit.Lookup(scope, ref)
}

func lookupGate(m pass.Module, name string) (*ast.GateDecl, error) {
	for _, g := range m.Gates() {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, UnknownGate{Name: name}
}
