// Package pass implements the pass-scheduling skeleton of §4.D: a
// pass declares which of the three phases (registers, gates,
// statements) it participates in, and RunPass drives it across a
// Module's tables in module-insertion order, short-circuiting repeat
// runs unless force is requested.
package pass

import "github.com/kegliz/qasmc/ast"

// Module is the narrow surface RunPass needs from a module container.
// module.QModule implements it; this package never imports module
// itself, which keeps the dependency direction leaf-ward (module
// depends on pass, not the reverse).
type Module interface {
	Registers() []*ast.RegDecl
	Gates() []*ast.GateDecl
	Statements() []ast.Node
	WasApplied(id string) bool
	MarkApplied(id string)
}

// Flags declares which phases of RunPass a Pass participates in. A
// pass sets only the phases it needs (e.g. dependency analysis sets
// Gates and Statements); RunPass skips the loops of unset phases
// entirely rather than calling no-op hooks on every entry.
type Flags struct {
	Registers  bool
	Gates      bool
	Statements bool
}

// Pass is polymorphic over the five lifecycle hooks of §4.D. Embed
// Base to default every hook to a no-op and override only what's
// needed.
type Pass interface {
	ID() string
	Flags() Flags
	Initialize(m Module) error
	RunOnRegister(m Module, decl *ast.RegDecl) error
	RunOnGate(m Module, decl *ast.GateDecl) error
	RunOnStatement(m Module, stmt ast.Node) error
	Finalize(m Module) error
}

// Base implements every Pass hook as a no-op so concrete passes only
// override the phases named by their Flags.
type Base struct{}

func (Base) Initialize(Module) error                        { return nil }
func (Base) RunOnRegister(Module, *ast.RegDecl) error        { return nil }
func (Base) RunOnGate(Module, *ast.GateDecl) error           { return nil }
func (Base) RunOnStatement(Module, ast.Node) error           { return nil }
func (Base) Finalize(Module) error                           { return nil }

// Run applies p to m: Initialize, then registers (if Flags.Registers),
// then gates (if Flags.Gates), then statements (if Flags.Statements),
// then Finalize, then records p as applied. It is a no-op if p was
// already applied to m and force is false. Gate bodies are not
// recursively descended here — a pass needing body information runs
// its own ast.Visitor over GateDecl.Body().
func Run(m Module, p Pass, force bool) error {
	if !force && m.WasApplied(p.ID()) {
		return nil
	}
	if err := p.Initialize(m); err != nil {
		return err
	}
	flags := p.Flags()
	if flags.Registers {
		for _, r := range m.Registers() {
			if err := p.RunOnRegister(m, r); err != nil {
				return err
			}
		}
	}
	if flags.Gates {
		for _, g := range m.Gates() {
			if err := p.RunOnGate(m, g); err != nil {
				return err
			}
		}
	}
	if flags.Statements {
		for _, s := range m.Statements() {
			if err := p.RunOnStatement(m, s); err != nil {
				return err
			}
		}
	}
	if err := p.Finalize(m); err != nil {
		return err
	}
	m.MarkApplied(p.ID())
	return nil
}
