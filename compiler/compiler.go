// Package compiler wires the middle-end passes together into the
// single entry point described by §2's data-flow table: xbit numbering
// feeds dependency analysis; the inliner runs to a fixpoint against
// the configured basis set, refreshing both between iterations; the
// allocator resolves a Solution against the target architecture; the
// rewrite driver and rename pass apply it; the result is ready for
// toString(pretty=true) emission.
package compiler

import (
	"fmt"

	"github.com/kegliz/qasmc/alloc"
	"github.com/kegliz/qasmc/arch"
	"github.com/kegliz/qasmc/ast"
	"github.com/kegliz/qasmc/depend"
	"github.com/kegliz/qasmc/inline"
	"github.com/kegliz/qasmc/internal/config"
	"github.com/kegliz/qasmc/internal/logger"
	"github.com/kegliz/qasmc/module"
	"github.com/kegliz/qasmc/rename"
	"github.com/kegliz/qasmc/xbit"
)

// UnsupportedAllocator is returned when cfg.Allocator names a builder
// this compiler doesn't implement. The contract is open (§1: "other
// builders plug into the same contract") but this port ships only the
// reference SimpleSolBuilder.
type UnsupportedAllocator struct{ Name string }

func (e UnsupportedAllocator) Error() string {
	return fmt.Sprintf("compiler: unsupported allocator %q", e.Name)
}

// Target bundles everything the allocator and rename pass need to
// know about the destination hardware: its adjacency graph, the qubit
// scope naming its nodes, and the register declarations to splice in
// in place of the program's own quantum registers.
type Target struct {
	Graph     *arch.Graph
	Qubits    *xbit.Scope
	Registers []*ast.RegDecl
}

// Result is everything a caller of Compile might want after the fact:
// the mutated module (the same *QModule the caller passed in), the resolved
// allocation solution (for reporting cost), and the final numbering
// the allocator worked from.
type Result struct {
	Module    *module.QModule
	Solution  *alloc.Solution
	Numbering *xbit.Numbering
}

// Compile runs the full pipeline in place on m and returns it (along
// with the resolved Solution) ready for emission.
func Compile(m *module.QModule, initial alloc.Mapping, target Target, cfg config.Config, log *logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.NewLogger(logger.LoggerOptions{})
	}

	if cfg.Allocator != "simple" {
		return nil, UnsupportedAllocator{Name: cfg.Allocator}
	}

	xp := xbit.New()
	log.SpawnForPass(xbit.PassID).Info().Msg("numbering qubits")
	if err := m.RunPass(xp, false); err != nil {
		return nil, err
	}
	numbering := xp.Result()

	dp := depend.New(numbering)
	log.SpawnForPass(depend.PassID).Info().Msg("analyzing dependencies")
	if err := m.RunPass(dp, false); err != nil {
		return nil, err
	}
	deps := dp.Result()

	if len(cfg.BasisSet) > 0 {
		log.SpawnForPass("inline-all").Info().
			Strs("basis", cfg.BasisSet).
			Int("fuel", cfg.InlineFuel).
			Msg("inlining to basis")
		refreshedNumbering, refreshedDeps, err := inline.InlineAll(m, cfg.BasisSet, cfg.InlineFuel)
		if err != nil {
			return nil, err
		}
		numbering, deps = refreshedNumbering, refreshedDeps
	}

	builder := alloc.SimpleSolBuilder{Costs: cfg.AllocCosts()}
	log.SpawnForPass("alloc").Info().Int("dependencies", len(deps)).Msg("resolving allocation")
	sol, err := builder.Build(initial, deps, target.Graph)
	if err != nil {
		return nil, err
	}
	log.SpawnForPass("alloc").Info().Int("cost", sol.Cost).Msg("allocation resolved")

	log.SpawnForPass("rewrite").Info().Msg("rewriting call points")
	if err := alloc.Rewrite(m, sol, target.Graph, numbering.GlobalQubits); err != nil {
		return nil, err
	}

	table, err := rename.FromMapping(sol.InitialMapping, target.Qubits)
	if err != nil {
		return nil, err
	}
	log.SpawnForPass("rename").Info().Msg("renaming qubits onto hardware")
	if err := rename.Apply(m, numbering, table); err != nil {
		return nil, err
	}
	if err := rename.ReplaceRegisters(m, target.Registers); err != nil {
		return nil, err
	}

	return &Result{Module: m, Solution: sol, Numbering: numbering}, nil
}
