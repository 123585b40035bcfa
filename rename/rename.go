// Package rename implements the rename & emit pass (§4.K): it walks
// the module's statements replacing every qubit reference, by
// XbitNumbering canonical id, per a rename table, then atomically
// swaps in the hardware register declarations. Emission is left to
// QModule.String.
package rename

import (
	"fmt"

	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/xbit"
)

// Table maps a program-qubit's global XbitNumbering id to the
// hardware identifier it should be rewritten to.
type Table map[int]*ast.IdRef

// FromMapping builds a rename Table straight from an allocator
// Mapping: program qubit id -> hardware qubit id -> hardware register
// reference, via the target architecture's own qubit scope.
func FromMapping(mapping []int, hwQubits *xbit.Scope) (Table, error) {
	t := make(Table, len(mapping))
	for prog, hw := range mapping {
		ref, err := hwQubits.RefFor(hw)
		if err != nil {
			return nil, fmt.Errorf("rename: hardware qubit %d: %w", hw, err)
		}
		t[prog] = ref
	}
	return t, nil
}

// Apply walks every top-level statement, replacing each indexed qubit
// IdRef (e.g. "q[0]") whose global XbitNumbering id appears in table
// with a fresh clone of its target reference. Gate bodies are not
// walked, and a whole-register reference such as "q" has no global id,
// so it is left as it is.
//
// Grounded on original_source/lib/Transform/QModule.cpp's
// replaceAllRegsWith + rename-pass description, and qc/circuit's
// read-only projection idiom for never handing callers a reference
// into module-owned storage.
func Apply(m *module.QModule, numbering *xbit.Numbering, table Table) error {
	for _, stmt := range m.Statements() {
		if err := renameNode(stmt, numbering.GlobalQubits, table); err != nil {
			return err
		}
	}
	return nil
}

func renameNode(n ast.Node, qubits *xbit.Scope, table Table) error {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if ref, ok := c.(*ast.IdRef); ok {
			if id, found := qubits.ID(ref.Print(false)); found {
				if target, ok := table[id]; ok {
					if _, err := n.SetChild(i, target.Clone()); err != nil {
						return err
					}
					continue
				}
			}
		}
		if err := renameNode(c, qubits, table); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceRegisters atomically swaps m's register table for the target
// architecture's own quantum register declarations (§4.C
// ReplaceAllRegsWith), leaving any classical registers untouched.
func ReplaceRegisters(m *module.QModule, hwRegs []*ast.RegDecl) error {
	newRegs := hwRegs
	for _, r := range m.Registers() {
		if !r.IsQuantum {
			newRegs = append(newRegs, r)
		}
	}
	return m.ReplaceAllRegsWith(newRegs)
}
