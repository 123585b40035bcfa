package ast

// As[T] style checked downcasts. Each returns ErrWrongKind rather than
// panicking when n is not the requested concrete type, so callers can
// propagate a distinguishable error instead of crashing on a bad
// parser output or a misrouted pass.

func AsMeasure(n Node) (*Measure, error) {
	c, ok := n.(*Measure)
	if !ok {
		return nil, ErrWrongKind{Want: KindMeasure, Got: safeKind(n)}
	}
	return c, nil
}

func AsReset(n Node) (*Reset, error) {
	c, ok := n.(*Reset)
	if !ok {
		return nil, ErrWrongKind{Want: KindReset, Got: safeKind(n)}
	}
	return c, nil
}

func AsBarrier(n Node) (*Barrier, error) {
	c, ok := n.(*Barrier)
	if !ok {
		return nil, ErrWrongKind{Want: KindBarrier, Got: safeKind(n)}
	}
	return c, nil
}

func AsCX(n Node) (*CX, error) {
	c, ok := n.(*CX)
	if !ok {
		return nil, ErrWrongKind{Want: KindCX, Got: safeKind(n)}
	}
	return c, nil
}

func AsU(n Node) (*U, error) {
	c, ok := n.(*U)
	if !ok {
		return nil, ErrWrongKind{Want: KindU, Got: safeKind(n)}
	}
	return c, nil
}

func AsGeneric(n Node) (*Generic, error) {
	c, ok := n.(*Generic)
	if !ok {
		return nil, ErrWrongKind{Want: KindGeneric, Got: safeKind(n)}
	}
	return c, nil
}

func AsIfStmt(n Node) (*IfStmt, error) {
	c, ok := n.(*IfStmt)
	if !ok {
		return nil, ErrWrongKind{Want: KindIfStmt, Got: safeKind(n)}
	}
	return c, nil
}

func AsGateDecl(n Node) (*GateDecl, error) {
	c, ok := n.(*GateDecl)
	if !ok {
		return nil, ErrWrongKind{Want: KindGateDecl, Got: safeKind(n)}
	}
	return c, nil
}

func AsRegDecl(n Node) (*RegDecl, error) {
	c, ok := n.(*RegDecl)
	if !ok {
		return nil, ErrWrongKind{Want: KindRegDecl, Got: safeKind(n)}
	}
	return c, nil
}

func AsIdRef(n Node) (*IdRef, error) {
	c, ok := n.(*IdRef)
	if !ok {
		return nil, ErrWrongKind{Want: KindIdRef, Got: safeKind(n)}
	}
	return c, nil
}

func AsStmtList(n Node) (*StmtList, error) {
	c, ok := n.(*StmtList)
	if !ok {
		return nil, ErrWrongKind{Want: KindStmtList, Got: safeKind(n)}
	}
	return c, nil
}

func safeKind(n Node) Kind {
	if n == nil {
		return KindInvalid
	}
	return n.Kind()
}

// OperationName returns the canonical gate/operation name of a
// quantum-op node, e.g. "CX", "measure", or a user gate's name for
// Generic. It is the concrete analog of §4.A's capability-set
// `operation()` entry: every QOp specialization but IfStmt implements
// it directly; IfStmt defers to its wrapped qop.
func OperationName(n Node) (string, error) {
	switch t := n.(type) {
	case *Measure:
		return t.OperationName(), nil
	case *Reset:
		return t.OperationName(), nil
	case *Barrier:
		return t.OperationName(), nil
	case *CX:
		return t.OperationName(), nil
	case *U:
		return t.OperationName(), nil
	case *Generic:
		return t.OperationName(), nil
	case *IfStmt:
		return OperationName(t.Qop())
	default:
		return "", ErrInvariantViolation{Msg: "node kind " + safeKind(n).String() + " has no operation name"}
	}
}
