// Package inline implements the gate inliner (§4.G): replacing a call
// to a non-opaque gate with a substitution-renamed copy of its body,
// and the inlineAll fixpoint driver that repeats this until every
// remaining call targets a gate in a configured basis set.
//
// InlineCall/InlineAll are free functions taking a *module.QModule
// rather than QModule methods: module cannot import inline (inline
// needs to import module to mutate it), so the operation lives here
// instead, mirroring the module/pass package's narrow-interface
// avoidance of the same cycle. See DESIGN.md's "Architecture
// deviations" note.
package inline

import (
	"fmt"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/depend"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/xbit"
)

// OpaqueGate is returned when a call targets a declaration-only gate.
type OpaqueGate struct{ Name string }

func (e OpaqueGate) Error() string { return fmt.Sprintf("inline: gate %q is opaque", e.Name) }

// UnknownGate is returned when a call targets a name absent from the
// module's gate table.
type UnknownGate struct{ Name string }

func (e UnknownGate) Error() string { return fmt.Sprintf("inline: unknown gate %q", e.Name) }

// ArityMismatch is returned when a call's actual argument counts don't
// match the called gate's formal parameter counts.
type ArityMismatch struct {
	Name                   string
	WantCParams, GotCParams int
	WantQParams, GotQParams int
}

func (e ArityMismatch) Error() string {
	return fmt.Sprintf("inline: gate %q arity mismatch: want (%d classical, %d quantum), got (%d, %d)",
		e.Name, e.WantCParams, e.WantQParams, e.GotCParams, e.GotQParams)
}

// RecursiveGate is returned when the user-gate call graph contains a
// cycle, detected by gate-name stack tracking before any expansion is
// attempted.
type RecursiveGate struct{ Name string }

func (e RecursiveGate) Error() string { return fmt.Sprintf("inline: recursive gate %q", e.Name) }

// InlineFuelExhausted is returned by InlineAll when the configured
// fuel counter reaches zero before a fixpoint is reached.
type InlineFuelExhausted struct{ Fuel int }

func (e InlineFuelExhausted) Error() string {
	return fmt.Sprintf("inline: fuel exhausted after %d inlining steps", e.Fuel)
}

// InlineCall inlines the gate call at a top-level statement (a bare
// *ast.Generic, or an *ast.IfStmt wrapping one), replacing it in m's
// statement list with the produced sequence and returning the first
// produced statement as the new iterator.
func InlineCall(m *module.QModule, call ast.Node) (ast.Node, error) {
	var ifWrap *ast.IfStmt
	target := call
	if ifs, ok := call.(*ast.IfStmt); ok {
		ifWrap = ifs
		target = ifs.Qop()
	}
	gen, ok := target.(*ast.Generic)
	if !ok {
		return nil, fmt.Errorf("inline: call site is not a generic gate call, got %s", target.Kind())
	}

	decl, err := m.GetQGate(gen.OperationName())
	if err != nil {
		return nil, UnknownGate{Name: gen.OperationName()}
	}
	if decl.Opaque {
		return nil, OpaqueGate{Name: decl.Name()}
	}

	sign := decl.Sign()
	cparams := sign.Cparams().Items()
	qparams := sign.Qparams().Items()
	cargs := gen.Args().Items()
	qargs := gen.Qargs().Items()
	if len(cparams) != len(cargs) || len(qparams) != len(qargs) {
		return nil, ArityMismatch{
			Name:        decl.Name(),
			WantCParams: len(cparams), GotCParams: len(cargs),
			WantQParams: len(qparams), GotQParams: len(qargs),
		}
	}

	subst := make(map[string]ast.Node, len(cparams)+len(qparams))
	for i, p := range cparams {
		name, ok := p.(*ast.LitString)
		if !ok {
			return nil, fmt.Errorf("inline: gate %q has a non-identifier classical formal", decl.Name())
		}
		subst[name.Value] = cargs[i]
	}
	for i, p := range qparams {
		name, ok := p.(*ast.LitString)
		if !ok {
			return nil, fmt.Errorf("inline: gate %q has a non-identifier quantum formal", decl.Name())
		}
		subst[name.Value] = qargs[i]
	}

	bodyClone := decl.Body().Clone().(*ast.GOpList)
	if err := substituteNode(bodyClone, subst); err != nil {
		return nil, err
	}

	n := bodyClone.ChildCount()
	replacements := make([]ast.Node, 0, n)
	for i := 0; i < n; i++ {
		op, err := bodyClone.RemoveAt(0)
		if err != nil {
			return nil, err
		}
		if ifWrap == nil {
			replacements = append(replacements, op)
			continue
		}
		condID := ifWrap.CondId().Clone().(*ast.LitString)
		condVal := ifWrap.CondValue().Clone().(*ast.LitInt)
		wrapped, err := ast.NewIfStmt(condID, condVal, op)
		if err != nil {
			return nil, err
		}
		replacements = append(replacements, wrapped)
	}

	return m.ReplaceStatement(call, replacements)
}

// substituteNode replaces, in place, every unindexed IdRef child whose
// textual name matches a formal parameter with a fresh clone of its
// actual, recursing through every other child (classical expressions,
// nested calls, IfStmt wrappers) so BinOp/UnaryOp arguments are
// rewritten transparently.
func substituteNode(n ast.Node, subst map[string]ast.Node) error {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if ref, ok := c.(*ast.IdRef); ok && ref.Index() == nil {
			if repl, found := subst[ref.Name()]; found {
				if _, err := n.SetChild(i, repl.Clone()); err != nil {
					return err
				}
				continue
			}
		}
		if err := substituteNode(c, subst); err != nil {
			return err
		}
	}
	return nil
}

// InlineAll repeatedly inlines any top-level call whose target gate is
// not in basis until no statement is eligible, re-running
// XbitNumbering and Dependency analysis (force=true) after each step
// per §4.G, then once more at the end. fuel <= 0 means unlimited; a
// positive fuel that reaches zero before reaching a fixpoint yields
// InlineFuelExhausted. The user-gate call graph is checked for cycles
// up front, yielding RecursiveGate before any expansion is attempted.
func InlineAll(m *module.QModule, basis []string, fuel int) (*xbit.Numbering, depend.Vector, error) {
	basisSet := make(map[string]bool, len(basis))
	for _, b := range basis {
		basisSet[b] = true
	}

	if name, cyc := detectCycle(m, basisSet); cyc {
		return nil, nil, RecursiveGate{Name: name}
	}

	steps := 0
	for {
		call, ok := findEligibleCall(m, basisSet)
		if !ok {
			break
		}
		if fuel > 0 && steps >= fuel {
			return nil, nil, InlineFuelExhausted{Fuel: fuel}
		}
		steps++
		if _, err := InlineCall(m, call); err != nil {
			return nil, nil, err
		}
		if _, _, err := refreshNumberingAndDeps(m); err != nil {
			return nil, nil, err
		}
	}

	return refreshNumberingAndDeps(m)
}

func refreshNumberingAndDeps(m *module.QModule) (*xbit.Numbering, depend.Vector, error) {
	xp := xbit.New()
	if err := m.RunPass(xp, true); err != nil {
		return nil, nil, err
	}
	dp := depend.New(xp.Result())
	if err := m.RunPass(dp, true); err != nil {
		return nil, nil, err
	}
	return xp.Result(), dp.Result(), nil
}

// findEligibleCall returns the first (source-order) top-level
// statement that calls a declared, non-opaque gate outside basis.
func findEligibleCall(m *module.QModule, basisSet map[string]bool) (ast.Node, bool) {
	for _, stmt := range m.Statements() {
		qop := unwrapIf(stmt)
		gen, ok := qop.(*ast.Generic)
		if !ok {
			continue
		}
		decl, err := m.GetQGate(gen.OperationName())
		if err != nil || decl.Opaque || basisSet[gen.OperationName()] {
			continue
		}
		return stmt, true
	}
	return nil, false
}

// detectCycle walks the declared-gate call graph (skipping opaque and
// basis-set gates, which are never expanded and so terminate
// recursion) looking for a cycle, returning the first gate name found
// on its own expansion stack.
func detectCycle(m *module.QModule, basisSet map[string]bool) (string, bool) {
	visiting := make(map[string]bool)
	done := make(map[string]bool)

	var visit func(name string) (string, bool)
	visit = func(name string) (string, bool) {
		if done[name] {
			return "", false
		}
		decl, err := m.GetQGate(name)
		if err != nil || decl.Opaque || basisSet[name] {
			done[name] = true
			return "", false
		}
		if visiting[name] {
			return name, true
		}
		visiting[name] = true
		for _, op := range decl.Body().Items() {
			if gen, ok := unwrapIf(op).(*ast.Generic); ok {
				if n, cyc := visit(gen.OperationName()); cyc {
					return n, true
				}
			}
		}
		delete(visiting, name)
		done[name] = true
		return "", false
	}

	for _, g := range m.Gates() {
		if n, cyc := visit(g.Name()); cyc {
			return n, true
		}
	}
	return "", false
}

func unwrapIf(n ast.Node) ast.Node {
	if ifs, ok := n.(*ast.IfStmt); ok {
		return ifs.Qop()
	}
	return n
}
