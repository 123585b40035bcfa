package module

import "github.com/kegliz/qasmc/ast"

// SwapGateName is the canonical name under which the synthesized swap
// decomposition is registered. Grounded on enfield's "__swap__"
// synthesized gate (QModule.cpp registerSwapGate); this port drops the
// double-underscore convention since Go has no "reserved identifier"
// naming pressure from a shared C++ global namespace.
const SwapGateName = "swap"

// InsertSwapBefore wraps a swap of lhs/rhs as a call to the
// lazily-registered "swap" gate and inserts it immediately before at.
// The first use in a module synthesizes the gate declaration itself
// (module-scoped, never shared across modules — see design note on
// replacing SWAP_ID_NODE global state).
func (m *QModule) InsertSwapBefore(at ast.Node, lhs, rhs *ast.IdRef) (ast.Node, error) {
	call, err := m.buildSwapCall(lhs, rhs)
	if err != nil {
		return nil, err
	}
	return m.InsertStatementBefore(at, call)
}

// InsertSwapAfter is InsertSwapBefore's after-anchor counterpart.
func (m *QModule) InsertSwapAfter(at ast.Node, lhs, rhs *ast.IdRef) (ast.Node, error) {
	call, err := m.buildSwapCall(lhs, rhs)
	if err != nil {
		return nil, err
	}
	return m.InsertStatementAfter(at, call)
}

func (m *QModule) buildSwapCall(lhs, rhs *ast.IdRef) (*ast.Generic, error) {
	if err := m.registerSwapGate(); err != nil {
		return nil, err
	}
	qargs := ast.NewList(lhs.Clone(), rhs.Clone())
	call, err := ast.NewGeneric(ast.NewLitString(SwapGateName), ast.NewList(), qargs)
	if err != nil {
		return nil, err
	}
	call.SetGenerated(true)
	return call, nil
}

// registerSwapGate inserts the fixed swap decomposition into the gate
// table on first use. Grounded line-for-line on enfield's
// QModule::registerSwapGate: cx a,b; h a; h b; cx a,b; h a; h b; cx a,b.
func (m *QModule) registerSwapGate() error {
	if m.swapRegistered {
		return nil
	}
	if _, err := m.GetQGate(SwapGateName); err == nil {
		m.swapRegistered = true
		return nil
	}

	qparams := ast.NewList(ast.NewLitString("a"), ast.NewLitString("b"))

	gop, err := ast.NewGOpList()
	if err != nil {
		return err
	}

	addCX := func() error {
		ctrl, err := mkIdRefNode("a")
		if err != nil {
			return err
		}
		tgt, err := mkIdRefNode("b")
		if err != nil {
			return err
		}
		cx, err := ast.NewCX(ctrl, tgt)
		if err != nil {
			return err
		}
		cx.SetGenerated(true)
		return gop.Append(cx)
	}
	addH := func(name string) error {
		q, err := mkIdRefNode(name)
		if err != nil {
			return err
		}
		h, err := ast.NewGeneric(ast.NewLitString("H"), ast.NewList(), ast.NewList(q))
		if err != nil {
			return err
		}
		h.SetGenerated(true)
		return gop.Append(h)
	}

	steps := []func() error{
		addCX,
		func() error { return addH("a") },
		func() error { return addH("b") },
		addCX,
		func() error { return addH("a") },
		func() error { return addH("b") },
		addCX,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	sign, err := ast.NewGateSign(ast.NewLitString(SwapGateName), ast.NewList(), qparams)
	if err != nil {
		return err
	}
	decl, err := ast.NewGateDecl(sign, gop)
	if err != nil {
		return err
	}
	decl.SetGenerated(true)
	if err := m.InsertGate(decl); err != nil {
		return err
	}
	m.swapRegistered = true
	return nil
}

func mkIdRefNode(name string) (*ast.IdRef, error) {
	return ast.NewIdRef(ast.NewLitString(name), nil)
}
