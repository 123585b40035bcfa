package ast

// Visitor exposes one hook per concrete node kind. Node.Apply performs
// the double-dispatch: n.Apply(v) calls the single VisitX(n) that
// matches n's concrete type.
//
// The framework itself holds no traversal state and does not recurse
// automatically: a hook that wants to continue descending into a
// node's children calls VisitChildren(n, v), passing the *outer*
// visitor (itself) so overridden hooks keep firing during the
// recursion; a hook that wants to skip a subtree simply returns
// without calling it. This mirrors the fact that Go has no virtual
// dispatch through embedding — BaseVisitor's blank hooks are there
// only so a concrete visitor can embed it and override the handful of
// kinds it cares about.
type Visitor interface {
	VisitQasmVersion(n *QasmVersion)
	VisitInclude(n *Include)
	VisitRegDecl(n *RegDecl)
	VisitGateSign(n *GateSign)
	VisitGateDecl(n *GateDecl)
	VisitMeasure(n *Measure)
	VisitReset(n *Reset)
	VisitBarrier(n *Barrier)
	VisitCX(n *CX)
	VisitU(n *U)
	VisitGeneric(n *Generic)
	VisitIfStmt(n *IfStmt)
	VisitBinOp(n *BinOp)
	VisitUnaryOp(n *UnaryOp)
	VisitIdRef(n *IdRef)
	VisitList(n *List)
	VisitStmtList(n *StmtList)
	VisitGOpList(n *GOpList)
	VisitLitInt(n *LitInt)
	VisitLitReal(n *LitReal)
	VisitLitString(n *LitString)
}

// VisitChildren recurses depth-first, left-to-right over n's present
// children, dispatching each through v.
func VisitChildren(n Node, v Visitor) {
	if n == nil {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil {
			c.Apply(v)
		}
	}
}

// BaseVisitor implements every hook as a no-op. Embed it in a concrete
// visitor and override only the hooks that matter; unoverridden kinds
// are silently skipped (not recursed into) unless the concrete
// visitor's other hooks call VisitChildren explicitly.
type BaseVisitor struct{}

func (BaseVisitor) VisitQasmVersion(n *QasmVersion) {}
func (BaseVisitor) VisitInclude(n *Include)         {}
func (BaseVisitor) VisitRegDecl(n *RegDecl)         {}
func (BaseVisitor) VisitGateSign(n *GateSign)       {}
func (BaseVisitor) VisitGateDecl(n *GateDecl)       {}
func (BaseVisitor) VisitMeasure(n *Measure)         {}
func (BaseVisitor) VisitReset(n *Reset)             {}
func (BaseVisitor) VisitBarrier(n *Barrier)         {}
func (BaseVisitor) VisitCX(n *CX)                   {}
func (BaseVisitor) VisitU(n *U)                     {}
func (BaseVisitor) VisitGeneric(n *Generic)         {}
func (BaseVisitor) VisitIfStmt(n *IfStmt)           {}
func (BaseVisitor) VisitBinOp(n *BinOp)             {}
func (BaseVisitor) VisitUnaryOp(n *UnaryOp)         {}
func (BaseVisitor) VisitIdRef(n *IdRef)             {}
func (BaseVisitor) VisitList(n *List)               {}
func (BaseVisitor) VisitStmtList(n *StmtList)       {}
func (BaseVisitor) VisitGOpList(n *GOpList)         {}
func (BaseVisitor) VisitLitInt(n *LitInt)           {}
func (BaseVisitor) VisitLitReal(n *LitReal)         {}
func (BaseVisitor) VisitLitString(n *LitString)     {}

// FullWalk is the "uniform traversal" convenience the teacher's
// dag.Operations() topological-order walk has no direct analog for
// (the AST isn't a DAG): it visits every node in the tree reachable
// from root, depth-first, left-to-right, calling fn on each. Unlike a
// custom Visitor it cannot skip subtrees.
func FullWalk(root Node, fn func(Node)) {
	if root == nil {
		return
	}
	fn(root)
	for i := 0; i < root.ChildCount(); i++ {
		FullWalk(root.Child(i), fn)
	}
}
