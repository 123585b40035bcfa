// Package ast defines the tagged node tree that represents a parsed
// program: registers, gate declarations, statements, and expressions.
// Every node carries a fixed Kind, an ordered, exclusively-owned child
// slice, and a non-owning back-reference to its parent.
package ast

// Kind discriminates the concrete shape of a Node. Child positions are
// significant and fixed per Kind; see the doc comment on each
// constructor for the exact layout.
type Kind int

const (
	KindInvalid Kind = iota
	KindQasmVersion
	KindInclude
	KindRegDecl
	KindGateSign
	KindGateDecl
	KindMeasure
	KindReset
	KindBarrier
	KindCX
	KindU
	KindGeneric
	KindIfStmt
	KindBinOp
	KindUnaryOp
	KindIdRef
	KindList
	KindStmtList
	KindGOpList
	KindLitInt
	KindLitReal
	KindLitString
)

var kindNames = map[Kind]string{
	KindInvalid:     "Invalid",
	KindQasmVersion: "QasmVersion",
	KindInclude:     "Include",
	KindRegDecl:     "RegDecl",
	KindGateSign:    "GateSign",
	KindGateDecl:    "GateDecl",
	KindMeasure:     "Measure",
	KindReset:       "Reset",
	KindBarrier:     "Barrier",
	KindCX:          "CX",
	KindU:           "U",
	KindGeneric:     "Generic",
	KindIfStmt:      "IfStmt",
	KindBinOp:       "BinOp",
	KindUnaryOp:     "UnaryOp",
	KindIdRef:       "IdRef",
	KindList:        "List",
	KindStmtList:    "StmtList",
	KindGOpList:     "GOpList",
	KindLitInt:      "LitInt",
	KindLitReal:     "LitReal",
	KindLitString:   "LitString",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsQOp reports whether a Kind is one of the quantum-operation
// specializations legal as a GOpList/StmtList body element.
func (k Kind) IsQOp() bool {
	switch k {
	case KindMeasure, KindReset, KindBarrier, KindCX, KindU, KindGeneric, KindIfStmt:
		return true
	default:
		return false
	}
}

// IsStatement reports whether a Kind is legal as a StmtList child.
func (k Kind) IsStatement() bool {
	switch k {
	case KindRegDecl, KindGateDecl, KindInclude:
		return true
	default:
		return k.IsQOp()
	}
}
