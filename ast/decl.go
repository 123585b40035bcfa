package ast

import (
	"strconv"
	"strings"
)

// RegDecl declares a quantum or classical register. Child(0) is the
// *LitString name, Child(1) is the *LitInt size.
type RegDecl struct {
	base
	IsQuantum bool
}

func NewRegDecl(id *LitString, size *LitInt, isQuantum bool) (*RegDecl, error) {
	if id == nil {
		return nil, ErrInvariantViolation{Msg: "RegDecl requires a name"}
	}
	if size == nil || size.Value < 0 {
		return nil, ErrInvariantViolation{Msg: "RegDecl requires a non-negative literal size"}
	}
	n := &RegDecl{IsQuantum: isQuantum}
	n.base = newBase(KindRegDecl, id, size)
	attach(id, n)
	attach(size, n)
	return n, nil
}

func (n *RegDecl) Id() *LitString { c, _ := n.Child(0).(*LitString); return c }
func (n *RegDecl) Size() *LitInt  { c, _ := n.Child(1).(*LitInt); return c }
func (n *RegDecl) Name() string   { return n.Id().Value }

func (n *RegDecl) Print(pretty bool) string {
	kw := "creg"
	if n.IsQuantum {
		kw = "qreg"
	}
	return kw + " " + n.Name() + "[" + strconv.FormatInt(n.Size().Value, 10) + "]"
}
func (n *RegDecl) Apply(v Visitor) { v.VisitRegDecl(n) }
func (n *RegDecl) Clone() Node {
	cl := &RegDecl{IsQuantum: n.IsQuantum}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *RegDecl) Equal(other Node) bool {
	o, ok := other.(*RegDecl)
	return ok && o.IsQuantum == n.IsQuantum && childrenEqual(n.children, o.children)
}
func (n *RegDecl) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// GateSign is a gate's signature: name plus formal classical and
// quantum parameter lists. Child(0)=id, Child(1)=cparams (*List),
// Child(2)=qparams (*List).
type GateSign struct {
	base
}

func NewGateSign(id *LitString, cparams, qparams *List) (*GateSign, error) {
	if id == nil || qparams == nil {
		return nil, ErrInvariantViolation{Msg: "GateSign requires a name and quantum parameter list"}
	}
	if cparams == nil {
		cparams = NewList()
	}
	n := &GateSign{}
	n.base = newBase(KindGateSign, id, cparams, qparams)
	attach(id, n)
	attach(cparams, n)
	attach(qparams, n)
	return n, nil
}

func (n *GateSign) Id() *LitString  { c, _ := n.Child(0).(*LitString); return c }
func (n *GateSign) Cparams() *List  { c, _ := n.Child(1).(*List); return c }
func (n *GateSign) Qparams() *List  { c, _ := n.Child(2).(*List); return c }
func (n *GateSign) Name() string    { return n.Id().Value }

func (n *GateSign) Print(pretty bool) string {
	s := n.Name()
	if n.Cparams().ChildCount() > 0 {
		s += "(" + n.Cparams().Print(pretty) + ")"
	}
	s += " " + n.Qparams().Print(pretty)
	return s
}
func (n *GateSign) Apply(v Visitor) { v.VisitGateSign(n) }
func (n *GateSign) Clone() Node {
	cl := &GateSign{}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *GateSign) Equal(other Node) bool {
	o, ok := other.(*GateSign)
	return ok && childrenEqual(n.children, o.children)
}
func (n *GateSign) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// GateDecl declares a gate: its signature plus an optional body.
// Child(0)=sign (*GateSign), Child(1)=body (*GOpList), nil iff Opaque.
// Opaque gates are declaration-only: the inliner refuses to expand
// them (OpaqueGate).
type GateDecl struct {
	base
	Opaque bool
}

func NewGateDecl(sign *GateSign, body *GOpList) (*GateDecl, error) {
	if sign == nil {
		return nil, ErrInvariantViolation{Msg: "GateDecl requires a signature"}
	}
	n := &GateDecl{Opaque: body == nil}
	n.base = newBase(KindGateDecl, sign, body)
	attach(sign, n)
	if body != nil {
		attach(body, n)
	}
	return n, nil
}

func (n *GateDecl) Sign() *GateSign { c, _ := n.Child(0).(*GateSign); return c }
func (n *GateDecl) Body() *GOpList  { c, _ := n.Child(1).(*GOpList); return c }
func (n *GateDecl) Name() string    { return n.Sign().Name() }

func (n *GateDecl) Print(pretty bool) string {
	if n.Opaque {
		return "opaque " + n.Sign().Print(pretty)
	}
	body := ""
	if n.Body() != nil {
		body = n.Body().Print(pretty)
	}
	if pretty {
		return "gate " + n.Sign().Print(pretty) + " {\n" + indent(body) + "\n}"
	}
	if body == "" {
		return "gate " + n.Sign().Print(pretty) + " { }"
	}
	return "gate " + n.Sign().Print(pretty) + " { " + body + " }"
}
func (n *GateDecl) Apply(v Visitor) { v.VisitGateDecl(n) }
func (n *GateDecl) Clone() Node {
	cl := &GateDecl{Opaque: n.Opaque}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *GateDecl) Equal(other Node) bool {
	o, ok := other.(*GateDecl)
	return ok && o.Opaque == n.Opaque && childrenEqual(n.children, o.children)
}
func (n *GateDecl) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

func indent(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
