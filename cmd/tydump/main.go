// Command tydump is a developer debug-dump tool over the constraint
// store. It does not parse source, drive an AST, or accept arbitrary
// files: it replays one of the fixed testdata/scenarios/*.yaml fixtures
// against a real Context and prints each step's observed outcome,
// colorizing output only when connected to a real terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/tyforge/internal/config"
	"github.com/funvibe/tyforge/internal/scenario"
)

const scenariosDir = "testdata/scenarios"

func main() {
	config.IsDebugMode = true

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: tydump <scenario-name>\n")
		listScenarios(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	path := filepath.Join(scenariosDir, name+".yaml")
	s, err := scenario.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tydump: %v\n", err)
		os.Exit(1)
	}

	color := colorEnabled()
	outcomes, runErr := scenario.Run(s)
	for i, o := range outcomes {
		printOutcome(color, i+1, o)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, paint(color, red, runErr.Error()))
		os.Exit(1)
	}
}

func listScenarios(w *os.File) {
	entries, err := os.ReadDir(scenariosDir)
	if err != nil {
		return
	}
	fmt.Fprintln(w, "available scenarios:")
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) == ".yaml" {
			fmt.Fprintf(w, "  %s\n", name[:len(name)-len(".yaml")])
		}
	}
}

func printOutcome(color bool, n int, o scenario.Outcome) {
	status := paint(color, green, "ok")
	if o.Err != nil {
		status = paint(color, red, "err: "+o.Err.Error())
	}
	line := fmt.Sprintf("%2d. %-24s %v", n, o.Step.Op, o.Step.Args)
	if o.Report != "" {
		line += fmt.Sprintf(" -> %s", o.Report)
	}
	fmt.Printf("%s  %s\n", line, status)
}

const (
	red   = "\x1b[31m"
	green = "\x1b[32m"
	reset = "\x1b[0m"
)

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + reset
}

// colorEnabled mirrors the teacher's own ANSI-output gate
// (internal/evaluator/builtins_term.go): no color on a non-terminal, no
// color under NO_COLOR, no color under TERM=dumb.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
