// Package xbit implements the XbitNumbering pass (§4.E): it assigns
// stable integer ids to every concrete qubit/classical-bit in global
// scope, and to every gate-local formal parameter in each gate's own
// scope.
package xbit

import (
	"fmt"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module/pass"
)

// PassID is the stable identifier recorded on the module's applied
// set (§6: "each pass exposes a stable identifier").
const PassID = "xbit-numbering"

// BitRange is the contiguous id range a register occupies.
type BitRange struct {
	Start, End int // [Start, End), i.e. End is exclusive
}

// Scope is one numbering scope: the module's global scope, or one
// gate's formal-parameter scope.
type Scope struct {
	nameToID map[string]int
	idToName []string
	idToNode []ast.Node
	ranges   map[string]BitRange
}

func newScope() *Scope {
	return &Scope{nameToID: make(map[string]int), ranges: make(map[string]BitRange)}
}

func (s *Scope) add(name string, node ast.Node) int {
	id := len(s.idToName)
	s.nameToID[name] = id
	s.idToName = append(s.idToName, name)
	s.idToNode = append(s.idToNode, node)
	return id
}

// ID returns the scope-local id for a textual qubit/bit expression,
// e.g. "q[3]" in global scope or "a" in a gate scope.
func (s *Scope) ID(name string) (int, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

// Name is the reverse lookup: scope-local id back to its textual
// form.
func (s *Scope) Name(id int) (string, bool) {
	if id < 0 || id >= len(s.idToName) {
		return "", false
	}
	return s.idToName[id], true
}

// CanonicalNode is the non-owning reference to the node that
// introduced this id (a RegDecl bit slot or a gate formal parameter).
func (s *Scope) CanonicalNode(id int) ast.Node {
	if id < 0 || id >= len(s.idToNode) {
		return nil
	}
	return s.idToNode[id]
}

// Range returns the contiguous id range occupied by a register's
// bits.
func (s *Scope) Range(regName string) (BitRange, bool) {
	r, ok := s.ranges[regName]
	return r, ok
}

// Count is the number of ids live in this scope — the K in "ids
// 0..K-1".
func (s *Scope) Count() int { return len(s.idToName) }

// RefFor builds a fresh *ast.IdRef for a global-scope id, e.g. id 3 in
// a scope where "q" occupies [0,5) yields "q[3]". Used by the
// allocator's rewrite driver to synthesize new CX/H operations in
// terms of program-qubit identifiers, ahead of the rename pass that
// maps them onto hardware qubits.
func (s *Scope) RefFor(id int) (*ast.IdRef, error) {
	for name, r := range s.ranges {
		if id >= r.Start && id < r.End {
			idx := ast.NewLitInt(int64(id - r.Start))
			return ast.NewIdRef(ast.NewLitString(name), idx)
		}
	}
	return nil, fmt.Errorf("xbit: id %d not covered by any register range", id)
}

// NewScopeFromRegisters builds a standalone Scope numbering the bits
// of regs, in order, the same way RunOnRegister would — used to give
// the allocator's target hardware qubits a naming scope without
// requiring a full module and pass run (the target architecture's
// register declarations are a collaborator input, never themselves
// numbered by the XbitNumbering pass proper).
func NewScopeFromRegisters(regs ...*ast.RegDecl) (*Scope, error) {
	scope := newScope()
	for _, decl := range regs {
		size := decl.Size()
		if size == nil || size.Value < 0 {
			return nil, BadRegSize{Name: decl.Name()}
		}
		start := scope.Count()
		for i := int64(0); i < size.Value; i++ {
			bitExpr := fmt.Sprintf("%s[%d]", decl.Name(), i)
			scope.add(bitExpr, decl)
		}
		scope.ranges[decl.Name()] = BitRange{Start: start, End: scope.Count()}
	}
	return scope, nil
}

// Numbering is the XbitNumbering output of §3: global qubit and
// classical-bit scopes, plus one quantum-formal scope per gate
// declaration.
type Numbering struct {
	GlobalQubits *Scope
	GlobalClbits *Scope
	GateScopes   map[string]*Scope // gate name -> formal quantum-parameter scope
}

// UnknownId is returned when a statement references an identifier
// that was never declared — a fatal, user-facing error per §7.
type UnknownId struct {
	Name string
}

func (e UnknownId) Error() string { return fmt.Sprintf("xbit: unknown identifier %q", e.Name) }

// BadRegSize is returned when a qreg/creg's size is not a
// non-negative integer literal.
type BadRegSize struct {
	Name string
}

func (e BadRegSize) Error() string {
	return fmt.Sprintf("xbit: register %q has a non-literal or negative size", e.Name)
}

// Pass runs the XbitNumbering algorithm of §4.E and stores its result
// for retrieval via Result() once RunPass has completed.
type Pass struct {
	pass.Base
	result *Numbering
}

// New returns a fresh, unrun XbitNumbering pass.
func New() *Pass { return &Pass{} }

func (p *Pass) ID() string { return PassID }

func (p *Pass) Flags() pass.Flags {
	return pass.Flags{Registers: true, Gates: true}
}

func (p *Pass) Initialize(pass.Module) error {
	p.result = &Numbering{
		GlobalQubits: newScope(),
		GlobalClbits: newScope(),
		GateScopes:   make(map[string]*Scope),
	}
	return nil
}

// RunOnRegister assigns ids for every bit of decl, in declaration
// order, and records the register's contiguous range.
func (p *Pass) RunOnRegister(_ pass.Module, decl *ast.RegDecl) error {
	size := decl.Size()
	if size == nil || size.Value < 0 {
		return BadRegSize{Name: decl.Name()}
	}
	scope := p.result.GlobalClbits
	if decl.IsQuantum {
		scope = p.result.GlobalQubits
	}
	start := scope.Count()
	for i := int64(0); i < size.Value; i++ {
		bitExpr := fmt.Sprintf("%s[%d]", decl.Name(), i)
		scope.add(bitExpr, decl)
	}
	scope.ranges[decl.Name()] = BitRange{Start: start, End: scope.Count()}
	return nil
}

// RunOnGate assigns ids 0..m-1 to decl's formal quantum parameters, in
// declaration order. Opaque gates still get a scope (their formals
// are real identifiers even though there's no body to analyze).
func (p *Pass) RunOnGate(_ pass.Module, decl *ast.GateDecl) error {
	scope := newScope()
	for _, param := range decl.Sign().Qparams().Items() {
		name, ok := param.(*ast.LitString)
		if !ok {
			return UnknownId{Name: param.Print(false)}
		}
		scope.add(name.Value, param)
	}
	p.result.GateScopes[decl.Name()] = scope
	return nil
}

// Result returns the numbering computed by the last successful run.
// Nil until RunPass has completed.
func (p *Pass) Result() *Numbering { return p.result }

// Lookup resolves a top-level qubit IdRef to its global-scope id,
// returning UnknownId if the register/index was never declared.
func Lookup(scope *Scope, ref *ast.IdRef) (int, error) {
	text := ref.Print(false)
	if ref.Index() == nil {
		return 0, UnknownId{Name: text}
	}
	id, ok := scope.ID(text)
	if !ok {
		return 0, UnknownId{Name: text}
	}
	return id, nil
}
