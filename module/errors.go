package module

import "fmt"

// DuplicateId is returned by InsertReg/InsertGate when the name is
// already registered in the corresponding table.
type DuplicateId struct {
	Kind string // "register" or "gate"
	Name string
}

func (e DuplicateId) Error() string {
	return fmt.Sprintf("module: duplicate %s id %q", e.Kind, e.Name)
}

// UnknownId is returned by GetReg/GetQGate when no entry matches the
// requested name.
type UnknownId struct {
	Kind string
	Name string
}

func (e UnknownId) Error() string {
	return fmt.Sprintf("module: unknown %s id %q", e.Kind, e.Name)
}

// ErrStatementNotFound is returned by the statement-list mutators when
// the anchor node isn't present in the module's statement list.
type ErrStatementNotFound struct{}

func (ErrStatementNotFound) Error() string {
	return "module: anchor statement not found in module"
}
