package ast

// QasmVersion[0]=version (*LitReal), [1]=stmts (*StmtList): the
// top-of-file version pragma and the program's top-level body.
type QasmVersion struct{ base }

func NewQasmVersion(version *LitReal, stmts *StmtList) (*QasmVersion, error) {
	if version == nil || stmts == nil {
		return nil, ErrInvariantViolation{Msg: "QasmVersion requires a version and a statement list"}
	}
	n := &QasmVersion{}
	n.base = newBase(KindQasmVersion, version, stmts)
	attach(version, n)
	attach(stmts, n)
	return n, nil
}

func (n *QasmVersion) Version() *LitReal { c, _ := n.Child(0).(*LitReal); return c }
func (n *QasmVersion) Stmts() *StmtList  { c, _ := n.Child(1).(*StmtList); return c }

func (n *QasmVersion) Print(pretty bool) string {
	s := "OPENQASM " + n.Version().Print(pretty) + ";"
	if pretty {
		return s + "\n" + n.Stmts().Print(pretty)
	}
	return s + " " + n.Stmts().Print(pretty)
}
func (n *QasmVersion) Apply(v Visitor) { v.VisitQasmVersion(n) }
func (n *QasmVersion) Clone() Node {
	cl := &QasmVersion{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *QasmVersion) Equal(other Node) bool {
	o, ok := other.(*QasmVersion)
	return ok && childrenEqual(n.children, o.children)
}
func (n *QasmVersion) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// Include[0]=stmts (*StmtList): the included file's top-level
// statements, already parsed by the collaborator. Every descendant of
// an Include has InInclude() == true (set by the parser/includer, not
// by this package).
type Include struct {
	base
	Filename string
}

func NewInclude(filename string, stmts *StmtList) (*Include, error) {
	if stmts == nil {
		return nil, ErrInvariantViolation{Msg: "Include requires a statement list"}
	}
	n := &Include{Filename: filename}
	n.base = newBase(KindInclude, stmts)
	attach(stmts, n)
	return n, nil
}

func (n *Include) Stmts() *StmtList { c, _ := n.Child(0).(*StmtList); return c }

func (n *Include) Print(pretty bool) string { return `include "` + n.Filename + `"` }
func (n *Include) Apply(v Visitor)          { v.VisitInclude(n) }
func (n *Include) Clone() Node {
	cl := &Include{Filename: n.Filename}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *Include) Equal(other Node) bool {
	o, ok := other.(*Include)
	return ok && o.Filename == n.Filename && childrenEqual(n.children, o.children)
}
func (n *Include) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }
