// Command qasmc compiles a program description (§1: qubit allocation
// onto a target architecture, with inlining to a basis set) and prints
// the result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kegliz/qasmc/alloc"
	"github.com/kegliz/qasmc/compiler"
	"github.com/kegliz/qasmc/internal/config"
	"github.com/kegliz/qasmc/internal/logger"
	"github.com/kegliz/qasmc/internal/program"
)

func main() {
	var (
		input      = flag.String("in", "-", "path to a program request JSON file, or - for stdin")
		configPath = flag.String("config", "", "path to qasmc.yaml (optional)")
		output     = flag.String("output", "console", "output format: console, json")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if err := run(*input, *configPath, *output, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "qasmc: %v\n", err)
		os.Exit(1)
	}
}

func run(input, configPath, output string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Debug = cfg.Debug || debug

	req, err := readRequest(input)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	program.ApplyOverride(&cfg, req.Config)

	m, err := program.BuildModule(&req)
	if err != nil {
		return fmt.Errorf("building program: %w", err)
	}
	target, err := program.BuildTarget(&req)
	if err != nil {
		return fmt.Errorf("building target: %w", err)
	}
	initial := program.IdentityMapping(req.Architecture.Size)
	if len(req.InitialMapping) > 0 {
		initial = alloc.Mapping(req.InitialMapping)
	}

	log := logger.NewLogger(logger.LoggerOptions{Debug: cfg.Debug})
	result, err := compiler.Compile(m, initial, target, cfg, log)
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	switch output {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"source":     result.Module.String(true, false),
			"cost":       result.Solution.Cost,
			"operations": len(result.Solution.OpSeqs),
		})
	default:
		fmt.Println(result.Module.String(true, false))
		fmt.Fprintf(os.Stderr, "cost: %d, operations: %d\n", result.Solution.Cost, len(result.Solution.OpSeqs))
		return nil
	}
}

func readRequest(path string) (program.Request, error) {
	var r io.Reader
	var req program.Request
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return req, err
		}
		defer f.Close()
	}
	r = f
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}
