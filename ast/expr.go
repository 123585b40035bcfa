package ast

// IdRef is an identifier reference, optionally indexed: Child(0) is
// always a *LitString holding the textual name; Child(1) is the index
// expression, or nil for a bare/whole-register reference ("q" rather
// than "q[3]").
type IdRef struct {
	base
}

func NewIdRef(id *LitString, index Node) (*IdRef, error) {
	if id == nil {
		return nil, ErrInvariantViolation{Msg: "IdRef requires a non-nil id child"}
	}
	n := &IdRef{}
	n.base = newBase(KindIdRef, id, index)
	attach(id, n)
	if index != nil {
		attach(index, n)
	}
	return n, nil
}

func (n *IdRef) Id() *LitString { c, _ := n.Child(0).(*LitString); return c }
func (n *IdRef) Index() Node    { return n.Child(1) }

// Name is the plain textual name without the index, e.g. "q" for both
// "q" and "q[3]".
func (n *IdRef) Name() string {
	if id := n.Id(); id != nil {
		return id.Value
	}
	return ""
}

func (n *IdRef) Print(pretty bool) string {
	idx := n.Index()
	if idx == nil {
		return n.Name()
	}
	return n.Name() + "[" + idx.Print(pretty) + "]"
}

func (n *IdRef) Apply(v Visitor) { v.VisitIdRef(n) }

func (n *IdRef) Clone() Node {
	cl := &IdRef{}
	cl.base = n.base.copyBase(cl)
	return cl
}

func (n *IdRef) Equal(other Node) bool {
	o, ok := other.(*IdRef)
	return ok && childrenEqual(n.children, o.children)
}

func (n *IdRef) SetChild(i int, c Node) (Node, error) {
	if i != 0 && i != 1 {
		return nil, ErrChildIndex{Kind: KindIdRef, Index: i}
	}
	if i == 0 {
		if _, ok := c.(*LitString); !ok && c != nil {
			return nil, ErrInvariantViolation{Msg: "IdRef child 0 must be a LitString"}
		}
	}
	return n.base.setChild(n, i, c)
}

// BinOp is a binary classical expression (used in gate angle
// arguments and If conditions' constant folding upstream of this
// compiler). Op is the operator symbol, e.g. "+", "-", "*", "/".
type BinOp struct {
	base
	Op string
}

func NewBinOp(op string, lhs, rhs Node) (*BinOp, error) {
	if lhs == nil || rhs == nil {
		return nil, ErrInvariantViolation{Msg: "BinOp requires both operands"}
	}
	n := &BinOp{Op: op}
	n.base = newBase(KindBinOp, lhs, rhs)
	attach(lhs, n)
	attach(rhs, n)
	return n, nil
}

func (n *BinOp) Lhs() Node { return n.Child(0) }
func (n *BinOp) Rhs() Node { return n.Child(1) }

func (n *BinOp) Print(pretty bool) string {
	return n.Lhs().Print(pretty) + " " + n.Op + " " + n.Rhs().Print(pretty)
}
func (n *BinOp) Apply(v Visitor) { v.VisitBinOp(n) }
func (n *BinOp) Clone() Node {
	cl := &BinOp{Op: n.Op}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *BinOp) Equal(other Node) bool {
	o, ok := other.(*BinOp)
	return ok && o.Op == n.Op && childrenEqual(n.children, o.children)
}
func (n *BinOp) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// UnaryOp is a unary classical expression, e.g. "-theta".
type UnaryOp struct {
	base
	Op string
}

func NewUnaryOp(op string, operand Node) (*UnaryOp, error) {
	if operand == nil {
		return nil, ErrInvariantViolation{Msg: "UnaryOp requires an operand"}
	}
	n := &UnaryOp{Op: op}
	n.base = newBase(KindUnaryOp, operand)
	attach(operand, n)
	return n, nil
}

func (n *UnaryOp) Operand() Node { return n.Child(0) }

func (n *UnaryOp) Print(pretty bool) string { return n.Op + n.Operand().Print(pretty) }
func (n *UnaryOp) Apply(v Visitor)          { v.VisitUnaryOp(n) }
func (n *UnaryOp) Clone() Node {
	cl := &UnaryOp{Op: n.Op}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *UnaryOp) Equal(other Node) bool {
	o, ok := other.(*UnaryOp)
	return ok && o.Op == n.Op && childrenEqual(n.children, o.children)
}
func (n *UnaryOp) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }
