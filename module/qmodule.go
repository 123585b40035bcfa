// Package module implements the top-level program container (§4.C):
// version pragma, includes, register/gate tables, and the top-level
// statement list, plus the mutation API every pass and the allocator
// rewrite driver uses to edit it in place.
package module

import (
	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/internal/logger"
	"github.com/kegliz/qasmc/module/pass"
)

// QModule is the mutable program-level container. It is *not* frozen
// after any particular pass runs (unlike qc/dag.DAG, which freezes at
// Validate()); mutation continues across inlining/allocation rounds,
// guarded only by the identity-based statement lookups staying valid
// until a node is actually replaced.
type QModule struct {
	version  *ast.LitReal
	includes []*ast.Include

	regOrder []string
	regs     map[string]*ast.RegDecl

	gateOrder []string
	gates     map[string]*ast.GateDecl

	stmts *ast.StmtList

	applied        map[string]bool
	swapRegistered bool

	log *logger.Logger
}

// New creates an empty module. log may be nil, in which case a default
// Info-level logger writing to stdout is used.
func New(version *ast.LitReal, log *logger.Logger) *QModule {
	if log == nil {
		log = logger.NewLogger(logger.LoggerOptions{})
	}
	return &QModule{
		version: version,
		regs:    make(map[string]*ast.RegDecl),
		gates:   make(map[string]*ast.GateDecl),
		stmts:   ast.NewStmtList(),
		applied: make(map[string]bool),
		log:     log,
	}
}

func (m *QModule) Version() *ast.LitReal     { return m.version }
func (m *QModule) SetVersion(v *ast.LitReal) { m.version = v }

func (m *QModule) Includes() []*ast.Include {
	out := make([]*ast.Include, len(m.includes))
	copy(out, m.includes)
	return out
}

func (m *QModule) AddInclude(inc *ast.Include) { m.includes = append(m.includes, inc) }

// Stmts returns the underlying top-level statement list. Callers that
// only need read access should prefer Statements(), which returns a
// stable snapshot slice.
func (m *QModule) Stmts() *ast.StmtList { return m.stmts }

// --- register/gate tables -------------------------------------------------

// InsertReg registers decl under its own name. DuplicateId if a
// register of that name already exists.
func (m *QModule) InsertReg(decl *ast.RegDecl) error {
	name := decl.Name()
	if _, exists := m.regs[name]; exists {
		return DuplicateId{Kind: "register", Name: name}
	}
	m.regs[name] = decl
	m.regOrder = append(m.regOrder, name)
	return nil
}

// InsertGate registers decl under its own name. DuplicateId if a gate
// of that name already exists.
func (m *QModule) InsertGate(decl *ast.GateDecl) error {
	name := decl.Name()
	if _, exists := m.gates[name]; exists {
		return DuplicateId{Kind: "gate", Name: name}
	}
	m.gates[name] = decl
	m.gateOrder = append(m.gateOrder, name)
	return nil
}

// GetQGate looks up a gate declaration by name.
func (m *QModule) GetQGate(name string) (*ast.GateDecl, error) {
	g, ok := m.gates[name]
	if !ok {
		return nil, UnknownId{Kind: "gate", Name: name}
	}
	return g, nil
}

// GetReg looks up a register declaration by name.
func (m *QModule) GetReg(name string) (*ast.RegDecl, error) {
	r, ok := m.regs[name]
	if !ok {
		return nil, UnknownId{Kind: "register", Name: name}
	}
	return r, nil
}

// Registers returns register declarations in insertion order.
func (m *QModule) Registers() []*ast.RegDecl {
	out := make([]*ast.RegDecl, len(m.regOrder))
	for i, name := range m.regOrder {
		out[i] = m.regs[name]
	}
	return out
}

// Gates returns gate declarations in insertion order.
func (m *QModule) Gates() []*ast.GateDecl {
	out := make([]*ast.GateDecl, len(m.gateOrder))
	for i, name := range m.gateOrder {
		out[i] = m.gates[name]
	}
	return out
}

// Statements returns the top-level statement list as a stable
// snapshot slice, in source order.
func (m *QModule) Statements() []ast.Node { return m.stmts.Items() }

// ReplaceAllRegsWith atomically swaps the register table. No partial
// state is ever visible to a concurrent reader (there are none in
// this single-threaded model, but the swap itself never leaves the
// table half-updated even under a panic mid-iteration by the caller).
func (m *QModule) ReplaceAllRegsWith(newRegs []*ast.RegDecl) error {
	regs := make(map[string]*ast.RegDecl, len(newRegs))
	order := make([]string, 0, len(newRegs))
	for _, r := range newRegs {
		name := r.Name()
		if _, exists := regs[name]; exists {
			return DuplicateId{Kind: "register", Name: name}
		}
		regs[name] = r
		order = append(order, name)
	}
	m.regs = regs
	m.regOrder = order
	return nil
}

// --- statement-list mutation -----------------------------------------------
//
// "Iterators" in this port are the inserted ast.Node itself: callers
// locate a statement's current position with m.Stmts().IndexOf when
// they need an index, which stays meaningful because identity, not
// position, is what later operations (inlineCall, allocator rewrite)
// key off of.

// InsertStatementBefore inserts stmt immediately before the statement
// at (an existing top-level statement), returning stmt as the new
// iterator.
func (m *QModule) InsertStatementBefore(at ast.Node, stmt ast.Node) (ast.Node, error) {
	idx := m.stmts.IndexOf(at)
	if idx < 0 {
		return nil, ErrStatementNotFound{}
	}
	if err := m.stmts.InsertAt(idx, stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// InsertStatementAfter inserts stmt immediately after at.
func (m *QModule) InsertStatementAfter(at ast.Node, stmt ast.Node) (ast.Node, error) {
	idx := m.stmts.IndexOf(at)
	if idx < 0 {
		return nil, ErrStatementNotFound{}
	}
	if err := m.stmts.InsertAt(idx+1, stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// InsertStatementFront prepends stmt to the statement list.
func (m *QModule) InsertStatementFront(stmt ast.Node) (ast.Node, error) {
	if err := m.stmts.InsertAt(0, stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// InsertStatementLast appends stmt to the statement list.
func (m *QModule) InsertStatementLast(stmt ast.Node) (ast.Node, error) {
	m.stmts.Append(stmt)
	return stmt, nil
}

// ReplaceStatement removes old from the statement list and splices in
// replacements at its former position, preserving order. It returns
// the first replacement as the new iterator (nil if replacements is
// empty). Used by the inliner and the allocator's rewrite driver.
func (m *QModule) ReplaceStatement(old ast.Node, replacements []ast.Node) (ast.Node, error) {
	idx := m.stmts.IndexOf(old)
	if idx < 0 {
		return nil, ErrStatementNotFound{}
	}
	if _, err := m.stmts.RemoveAt(idx); err != nil {
		return nil, err
	}
	for i, r := range replacements {
		if err := m.stmts.InsertAt(idx+i, r); err != nil {
			return nil, err
		}
	}
	if len(replacements) == 0 {
		return nil, nil
	}
	return replacements[0], nil
}

// --- pass framework ---------------------------------------------------------

// WasApplied reports whether the pass identified by id has already
// run on this module.
func (m *QModule) WasApplied(id string) bool { return m.applied[id] }

// MarkApplied records that the pass identified by id has run.
func (m *QModule) MarkApplied(id string) { m.applied[id] = true }

// RunPass applies p to m, honoring the force/short-circuit semantics
// of §4.D.
func (m *QModule) RunPass(p pass.Pass, force bool) error {
	return pass.Run(m, p, force)
}

// --- cloning & emission ------------------------------------------------------

// Clone returns a deep copy sharing no mutable storage with m.
func (m *QModule) Clone() *QModule {
	cl := &QModule{
		regs:           make(map[string]*ast.RegDecl, len(m.regs)),
		gates:          make(map[string]*ast.GateDecl, len(m.gates)),
		applied:        make(map[string]bool, len(m.applied)),
		swapRegistered: m.swapRegistered,
		log:            m.log,
	}
	if m.version != nil {
		cl.version = m.version.Clone().(*ast.LitReal)
	}
	for _, inc := range m.includes {
		cl.includes = append(cl.includes, inc.Clone().(*ast.Include))
	}
	for _, name := range m.regOrder {
		cl.regs[name] = m.regs[name].Clone().(*ast.RegDecl)
		cl.regOrder = append(cl.regOrder, name)
	}
	for _, name := range m.gateOrder {
		cl.gates[name] = m.gates[name].Clone().(*ast.GateDecl)
		cl.gateOrder = append(cl.gateOrder, name)
	}
	cl.stmts = m.stmts.Clone().(*ast.StmtList)
	for id, v := range m.applied {
		cl.applied[id] = v
	}
	return cl
}

// String renders the module to source form, per the emission order of
// §4.C: version, includes, (optionally) gates in insertion order,
// registers in insertion order, statements.
func (m *QModule) String(pretty bool, includeGates bool) string {
	sep := " "
	if pretty {
		sep = "\n"
	}
	var parts []string
	if m.version != nil {
		parts = append(parts, "OPENQASM "+m.version.Print(pretty)+";")
	}
	for _, inc := range m.includes {
		parts = append(parts, inc.Print(pretty)+";")
	}
	if includeGates {
		for _, name := range m.gateOrder {
			parts = append(parts, m.gates[name].Print(pretty))
		}
	}
	for _, name := range m.regOrder {
		parts = append(parts, m.regs[name].Print(pretty)+";")
	}
	for _, s := range m.stmts.Items() {
		parts = append(parts, s.Print(pretty)+";")
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += sep + p
	}
	return out
}
