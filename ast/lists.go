package ast

import "strings"

// listNode is the shared implementation for the three resizable
// container kinds (List, StmtList, GOpList). Unlike fixed-arity
// nodes, these grow and shrink via Insert/Remove rather than
// SetChild alone.
type listNode struct {
	base
}

func newListNode(k Kind, items ...Node) listNode {
	return listNode{base: newBase(k, items...)}
}

// Items returns a copy of the child slice in order.
func (n *listNode) Items() []Node {
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// insertAt inserts item at position i (0 <= i <= len), re-parenting it,
// shifting later elements right.
func (n *listNode) insertAt(self Node, i int, item Node) error {
	if i < 0 || i > len(n.children) {
		return ErrChildIndex{Kind: n.kind, Index: i}
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = item
	if item != nil {
		attach(item, self)
	}
	return nil
}

// removeAt removes and returns the element at i.
func (n *listNode) removeAt(i int) (Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrChildIndex{Kind: n.kind, Index: i}
	}
	old := n.children[i]
	if old != nil {
		detach(old)
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	return old, nil
}

func (n *listNode) append(self Node, item Node) {
	n.children = append(n.children, item)
	if item != nil {
		attach(item, self)
	}
}

// indexOf returns the position of item by identity, or -1.
func (n *listNode) indexOf(item Node) int {
	for i, c := range n.children {
		if c == item {
			return i
		}
	}
	return -1
}

// List is a generic ordered, resizable sequence used for formal
// parameter lists and call-site argument/qarg lists.
type List struct{ listNode }

func NewList(items ...Node) *List {
	n := &List{}
	n.listNode = newListNode(KindList, items...)
	for _, it := range items {
		if it != nil {
			attach(it, n)
		}
	}
	return n
}

func (n *List) InsertAt(i int, item Node) error { return n.insertAt(n, i, item) }
func (n *List) RemoveAt(i int) (Node, error)    { return n.removeAt(i) }
func (n *List) Append(item Node)                { n.append(n, item) }

func (n *List) Print(pretty bool) string {
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.Print(pretty)
	}
	return strings.Join(parts, ", ")
}
func (n *List) Apply(v Visitor) { v.VisitList(n) }
func (n *List) Clone() Node {
	cl := &List{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *List) Equal(other Node) bool {
	o, ok := other.(*List)
	return ok && childrenEqual(n.children, o.children)
}
func (n *List) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// StmtList is an ordered, resizable sequence of statement-kind nodes:
// the module's top-level statement list, the body of a QasmVersion,
// or an include's expanded contents. Gate bodies are GOpLists.
type StmtList struct{ listNode }

func NewStmtList(stmts ...Node) *StmtList {
	n := &StmtList{}
	n.listNode = newListNode(KindStmtList, stmts...)
	for _, s := range stmts {
		if s != nil {
			attach(s, n)
		}
	}
	return n
}

func (n *StmtList) InsertAt(i int, item Node) error { return n.insertAt(n, i, item) }
func (n *StmtList) RemoveAt(i int) (Node, error)    { return n.removeAt(i) }
func (n *StmtList) Append(item Node)                { n.append(n, item) }
func (n *StmtList) IndexOf(item Node) int           { return n.indexOf(item) }

func (n *StmtList) Print(pretty bool) string {
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		parts = append(parts, c.Print(pretty)+";")
	}
	sep := " "
	if pretty {
		sep = "\n"
	}
	return strings.Join(parts, sep)
}
func (n *StmtList) Apply(v Visitor) { v.VisitStmtList(n) }
func (n *StmtList) Clone() Node {
	cl := &StmtList{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *StmtList) Equal(other Node) bool {
	o, ok := other.(*StmtList)
	return ok && childrenEqual(n.children, o.children)
}
func (n *StmtList) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// GOpList is an ordered, resizable sequence restricted to quantum-op
// kinds (U, CX, Generic, Barrier, Measure, Reset, IfStmt): a gate
// body.
type GOpList struct{ listNode }

func NewGOpList(ops ...Node) (*GOpList, error) {
	for _, op := range ops {
		if op != nil && !op.Kind().IsQOp() {
			return nil, ErrInvariantViolation{Msg: "GOpList child must be a quantum-op kind, got " + op.Kind().String()}
		}
	}
	n := &GOpList{}
	n.listNode = newListNode(KindGOpList, ops...)
	for _, op := range ops {
		if op != nil {
			attach(op, n)
		}
	}
	return n, nil
}

func (n *GOpList) InsertAt(i int, item Node) error {
	if item != nil && !item.Kind().IsQOp() {
		return ErrInvariantViolation{Msg: "GOpList child must be a quantum-op kind, got " + item.Kind().String()}
	}
	return n.insertAt(n, i, item)
}
func (n *GOpList) RemoveAt(i int) (Node, error) { return n.removeAt(i) }
func (n *GOpList) Append(item Node) error {
	if item != nil && !item.Kind().IsQOp() {
		return ErrInvariantViolation{Msg: "GOpList child must be a quantum-op kind, got " + item.Kind().String()}
	}
	n.append(n, item)
	return nil
}
func (n *GOpList) IndexOf(item Node) int { return n.indexOf(item) }

func (n *GOpList) Print(pretty bool) string {
	parts := make([]string, 0, len(n.children))
	for _, c := range n.children {
		parts = append(parts, c.Print(pretty)+";")
	}
	sep := " "
	if pretty {
		sep = "\n"
	}
	return strings.Join(parts, sep)
}
func (n *GOpList) Apply(v Visitor) { v.VisitGOpList(n) }
func (n *GOpList) Clone() Node {
	cl := &GOpList{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *GOpList) Equal(other Node) bool {
	o, ok := other.(*GOpList)
	return ok && childrenEqual(n.children, o.children)
}
func (n *GOpList) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }
