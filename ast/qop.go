package ast

// Measure[0]=qbit (*IdRef), [1]=cbit (*IdRef).
type Measure struct{ base }

func NewMeasure(qbit, cbit *IdRef) (*Measure, error) {
	if qbit == nil || cbit == nil {
		return nil, ErrInvariantViolation{Msg: "Measure requires a qbit and a cbit"}
	}
	n := &Measure{}
	n.base = newBase(KindMeasure, qbit, cbit)
	attach(qbit, n)
	attach(cbit, n)
	return n, nil
}

func (n *Measure) Qbit() *IdRef { c, _ := n.Child(0).(*IdRef); return c }
func (n *Measure) Cbit() *IdRef { c, _ := n.Child(1).(*IdRef); return c }
func (n *Measure) OperationName() string { return "measure" }

func (n *Measure) Print(pretty bool) string {
	return "measure " + n.Qbit().Print(pretty) + " -> " + n.Cbit().Print(pretty)
}
func (n *Measure) Apply(v Visitor) { v.VisitMeasure(n) }
func (n *Measure) Clone() Node {
	cl := &Measure{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *Measure) Equal(other Node) bool {
	o, ok := other.(*Measure)
	return ok && childrenEqual(n.children, o.children)
}
func (n *Measure) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// Reset[0]=qbit (*IdRef).
type Reset struct{ base }

func NewReset(qbit *IdRef) (*Reset, error) {
	if qbit == nil {
		return nil, ErrInvariantViolation{Msg: "Reset requires a qbit"}
	}
	n := &Reset{}
	n.base = newBase(KindReset, qbit)
	attach(qbit, n)
	return n, nil
}

func (n *Reset) Qbit() *IdRef            { c, _ := n.Child(0).(*IdRef); return c }
func (n *Reset) OperationName() string { return "reset" }

func (n *Reset) Print(pretty bool) string { return "reset " + n.Qbit().Print(pretty) }
func (n *Reset) Apply(v Visitor)          { v.VisitReset(n) }
func (n *Reset) Clone() Node {
	cl := &Reset{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *Reset) Equal(other Node) bool {
	o, ok := other.(*Reset)
	return ok && childrenEqual(n.children, o.children)
}
func (n *Reset) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// Barrier[0]=qargs (*List of *IdRef).
type Barrier struct{ base }

func NewBarrier(qargs *List) (*Barrier, error) {
	if qargs == nil {
		return nil, ErrInvariantViolation{Msg: "Barrier requires a qarg list"}
	}
	n := &Barrier{}
	n.base = newBase(KindBarrier, qargs)
	attach(qargs, n)
	return n, nil
}

func (n *Barrier) Qargs() *List          { c, _ := n.Child(0).(*List); return c }
func (n *Barrier) OperationName() string { return "barrier" }

func (n *Barrier) Print(pretty bool) string { return "barrier " + n.Qargs().Print(pretty) }
func (n *Barrier) Apply(v Visitor)          { v.VisitBarrier(n) }
func (n *Barrier) Clone() Node {
	cl := &Barrier{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *Barrier) Equal(other Node) bool {
	o, ok := other.(*Barrier)
	return ok && childrenEqual(n.children, o.children)
}
func (n *Barrier) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// CX[0]=ctrl (*IdRef), [1]=tgt (*IdRef): the primitive controlled-NOT.
type CX struct{ base }

func NewCX(ctrl, tgt *IdRef) (*CX, error) {
	if ctrl == nil || tgt == nil {
		return nil, ErrInvariantViolation{Msg: "CX requires a control and a target"}
	}
	n := &CX{}
	n.base = newBase(KindCX, ctrl, tgt)
	attach(ctrl, n)
	attach(tgt, n)
	return n, nil
}

func (n *CX) Ctrl() *IdRef            { c, _ := n.Child(0).(*IdRef); return c }
func (n *CX) Tgt() *IdRef             { c, _ := n.Child(1).(*IdRef); return c }
func (n *CX) OperationName() string { return "CX" }

func (n *CX) Print(pretty bool) string {
	return "CX " + n.Ctrl().Print(pretty) + ", " + n.Tgt().Print(pretty)
}
func (n *CX) Apply(v Visitor) { v.VisitCX(n) }
func (n *CX) Clone() Node {
	cl := &CX{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *CX) Equal(other Node) bool {
	o, ok := other.(*CX)
	return ok && childrenEqual(n.children, o.children)
}
func (n *CX) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// U[0]=args (*List of 3 classical expressions: theta, phi, lambda),
// [1]=qarg (*IdRef): the primitive single-qubit universal rotation.
type U struct{ base }

func NewU(args *List, qarg *IdRef) (*U, error) {
	if args == nil || qarg == nil {
		return nil, ErrInvariantViolation{Msg: "U requires an arg list and a qarg"}
	}
	n := &U{}
	n.base = newBase(KindU, args, qarg)
	attach(args, n)
	attach(qarg, n)
	return n, nil
}

func (n *U) Args() *List           { c, _ := n.Child(0).(*List); return c }
func (n *U) Qarg() *IdRef          { c, _ := n.Child(1).(*IdRef); return c }
func (n *U) OperationName() string { return "U" }

func (n *U) Print(pretty bool) string {
	return "U(" + n.Args().Print(pretty) + ") " + n.Qarg().Print(pretty)
}
func (n *U) Apply(v Visitor) { v.VisitU(n) }
func (n *U) Clone() Node {
	cl := &U{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *U) Equal(other Node) bool {
	o, ok := other.(*U)
	return ok && childrenEqual(n.children, o.children)
}
func (n *U) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// Generic[0]=id (*LitString: the called gate's name), [1]=args
// (*List classical actuals), [2]=qargs (*List quantum actuals): a
// call to a user-defined or not-yet-resolved gate.
type Generic struct{ base }

func NewGeneric(id *LitString, args, qargs *List) (*Generic, error) {
	if id == nil || qargs == nil {
		return nil, ErrInvariantViolation{Msg: "Generic requires a name and a qarg list"}
	}
	if args == nil {
		args = NewList()
	}
	n := &Generic{}
	n.base = newBase(KindGeneric, id, args, qargs)
	attach(id, n)
	attach(args, n)
	attach(qargs, n)
	return n, nil
}

func (n *Generic) Id() *LitString      { c, _ := n.Child(0).(*LitString); return c }
func (n *Generic) Args() *List         { c, _ := n.Child(1).(*List); return c }
func (n *Generic) Qargs() *List        { c, _ := n.Child(2).(*List); return c }
func (n *Generic) OperationName() string { return n.Id().Value }

func (n *Generic) Print(pretty bool) string {
	s := n.Id().Value
	if n.Args().ChildCount() > 0 {
		s += "(" + n.Args().Print(pretty) + ")"
	}
	return s + " " + n.Qargs().Print(pretty)
}
func (n *Generic) Apply(v Visitor) { v.VisitGeneric(n) }
func (n *Generic) Clone() Node {
	cl := &Generic{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *Generic) Equal(other Node) bool {
	o, ok := other.(*Generic)
	return ok && childrenEqual(n.children, o.children)
}
func (n *Generic) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// IfStmt[0]=condId (*LitString: classical register name),
// [1]=condValue (*LitInt), [2]=qop (a quantum-op node): "if (c==N) qop".
type IfStmt struct{ base }

func NewIfStmt(condId *LitString, condValue *LitInt, qop Node) (*IfStmt, error) {
	if condId == nil || condValue == nil || qop == nil {
		return nil, ErrInvariantViolation{Msg: "IfStmt requires condId, condValue, and qop"}
	}
	if !qop.Kind().IsQOp() || qop.Kind() == KindIfStmt {
		return nil, ErrInvariantViolation{Msg: "IfStmt body must be a non-If quantum-op kind, got " + qop.Kind().String()}
	}
	n := &IfStmt{}
	n.base = newBase(KindIfStmt, condId, condValue, qop)
	attach(condId, n)
	attach(condValue, n)
	attach(qop, n)
	return n, nil
}

func (n *IfStmt) CondId() *LitString { c, _ := n.Child(0).(*LitString); return c }
func (n *IfStmt) CondValue() *LitInt { c, _ := n.Child(1).(*LitInt); return c }
func (n *IfStmt) Qop() Node          { return n.Child(2) }

func (n *IfStmt) Print(pretty bool) string {
	return "if (" + n.CondId().Value + " == " + n.CondValue().Print(pretty) + ") " + n.Qop().Print(pretty)
}
func (n *IfStmt) Apply(v Visitor) { v.VisitIfStmt(n) }
func (n *IfStmt) Clone() Node {
	cl := &IfStmt{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *IfStmt) Equal(other Node) bool {
	o, ok := other.(*IfStmt)
	return ok && childrenEqual(n.children, o.children)
}
func (n *IfStmt) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }
