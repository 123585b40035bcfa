package ast

import "strconv"

// LitInt is a leaf node holding a signed integer literal.
type LitInt struct {
	base
	Value int64
}

func NewLitInt(v int64) *LitInt {
	return &LitInt{base: newBase(KindLitInt), Value: v}
}

func (n *LitInt) Print(pretty bool) string { return strconv.FormatInt(n.Value, 10) }
func (n *LitInt) Apply(v Visitor)          { v.VisitLitInt(n) }
func (n *LitInt) Clone() Node {
	cl := &LitInt{Value: n.Value}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *LitInt) Equal(other Node) bool {
	o, ok := other.(*LitInt)
	return ok && o.Value == n.Value
}
func (n *LitInt) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// LitReal is a leaf node holding a floating-point literal, used for
// gate angle parameters (theta/phi/lambda).
type LitReal struct {
	base
	Value float64
}

func NewLitReal(v float64) *LitReal {
	return &LitReal{base: newBase(KindLitReal), Value: v}
}

func (n *LitReal) Print(pretty bool) string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *LitReal) Apply(v Visitor)          { v.VisitLitReal(n) }
func (n *LitReal) Clone() Node {
	cl := &LitReal{Value: n.Value}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *LitReal) Equal(other Node) bool {
	o, ok := other.(*LitReal)
	return ok && o.Value == n.Value
}
func (n *LitReal) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }

// LitString is a leaf node holding a string payload: used both for
// bare identifiers (register/gate/formal-parameter names) and for
// include filenames.
type LitString struct {
	base
	Value string
}

func NewLitString(v string) *LitString {
	return &LitString{base: newBase(KindLitString), Value: v}
}

func (n *LitString) Print(pretty bool) string { return n.Value }
func (n *LitString) Apply(v Visitor)          { v.VisitLitString(n) }
func (n *LitString) Clone() Node {
	cl := &LitString{Value: n.Value}
	cl.base = n.base.copyBase(cl)
	return cl
}
func (n *LitString) Equal(other Node) bool {
	o, ok := other.(*LitString)
	return ok && o.Value == n.Value
}
func (n *LitString) SetChild(i int, c Node) (Node, error) { return n.base.setChild(n, i, c) }
