package ast

// Node is the capability set every concrete AST node type satisfies:
// kind identification, fixed or resizable child access, parent
// back-reference, compiler-synthesis flags, pretty/compact emission,
// deep cloning, and visitor dispatch.
type Node interface {
	Kind() Kind
	ChildCount() int
	Child(i int) Node
	// SetChild replaces the child at i and returns the node it
	// displaced (nil if none was present). The displaced node's
	// parent link is cleared; the new child's parent link is set to
	// self.
	SetChild(i int, n Node) (Node, error)
	Parent() Node

	Generated() bool
	SetGenerated(bool)
	InInclude() bool
	SetInInclude(bool)

	// Print renders the node to source form. pretty=true indents
	// nested blocks; pretty=false produces a single-line compact form.
	Print(pretty bool) string
	// Clone returns a deep copy with no shared storage with the
	// original, a nil parent, and all flags preserved.
	Clone() Node
	// Apply performs double-dispatch: it calls the Visitor hook that
	// matches this node's concrete type.
	Apply(v Visitor)
	// Equal is recursive structural equality: same kind, same
	// operation-specific fields, same ordered children (applied
	// recursively, ignoring parent/generated/inInclude).
	Equal(other Node) bool
}

// base is embedded by every concrete node type. It owns the child
// slice and implements the non-specialized half of the Node
// interface; concrete types add Print/Clone/Apply/Equal and any
// typed accessors (e.g. (*Measure).Qbit()).
type base struct {
	kind      Kind
	children  []Node
	parent    Node
	generated bool
	inInclude bool
}

func newBase(k Kind, children ...Node) base {
	b := base{kind: k, children: children}
	return b
}

func (b *base) Kind() Kind        { return b.kind }
func (b *base) ChildCount() int   { return len(b.children) }
func (b *base) Parent() Node      { return b.parent }
func (b *base) Generated() bool   { return b.generated }
func (b *base) InInclude() bool   { return b.inInclude }

func (b *base) SetGenerated(v bool)  { b.generated = v }
func (b *base) SetInInclude(v bool)  { b.inInclude = v }

func (b *base) Child(i int) Node {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

// setChild is the shared replace-in-place implementation used by every
// concrete type's SetChild. self is the owning Node (the concrete
// wrapper), needed so the new child's parent back-reference points at
// the wrapper, not at the embedded base.
func (b *base) setChild(self Node, i int, n Node) (Node, error) {
	if i < 0 || i >= len(b.children) {
		return nil, ErrChildIndex{Kind: b.kind, Index: i}
	}
	old := b.children[i]
	if old != nil {
		detach(old)
	}
	b.children[i] = n
	if n != nil {
		attach(n, self)
	}
	return old, nil
}

// attach/detach manage the non-owning parent back-reference. They are
// the only place that ever mutates a node's parent field, so the
// invariant child.Parent() == self holds immediately after any
// mutator returns.
func attach(n Node, parent Node) {
	if p, ok := n.(interface{ setParent(Node) }); ok {
		p.setParent(parent)
	}
}

func detach(n Node) {
	if p, ok := n.(interface{ setParent(Node) }); ok {
		p.setParent(nil)
	}
}

func (b *base) setParent(p Node) { b.parent = p }

// copyBase is used by Clone implementations to produce a fresh,
// parent-less base with a deep-cloned child slice re-parented to self.
func (b *base) copyBase(self Node) base {
	nb := base{kind: b.kind, generated: b.generated, inInclude: b.inInclude}
	if b.children != nil {
		nb.children = make([]Node, len(b.children))
		for i, c := range b.children {
			if c == nil {
				continue
			}
			cl := c.Clone()
			attach(cl, self)
			nb.children[i] = cl
		}
	}
	return nb
}

// childrenEqual compares two base nodes' children slices recursively,
// treating a pair of nils as equal.
func childrenEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil && b[i] == nil {
			continue
		}
		if a[i] == nil || b[i] == nil {
			return false
		}
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
