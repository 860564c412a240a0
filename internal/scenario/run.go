package scenario

import (
	"fmt"

	"github.com/funvibe/tyforge/internal/constraints"
	"github.com/funvibe/tyforge/internal/types"
)

// Outcome is one step's observed result, reported back to the caller for
// pretty-printing or assertion.
type Outcome struct {
	Step   Step
	Err    error
	Report string // e.g. get_tvar_exact_type's resolved type, for cmd/tydump
}

// Run replays a scenario against a fresh Context, returning one Outcome
// per step in order. It stops at the first step whose observed
// ok/err status disagrees with its declared Expect, mirroring the
// store's own "first failing assertion halts the driver" policy — the
// returned slice is therefore a prefix, not necessarily the full script.
func Run(s *Scenario) ([]Outcome, error) {
	c := constraints.NewContext()
	tvars := map[string]types.TVar{}
	marks := map[string]constraints.Mark{}
	vars := map[string]types.T{}

	var outcomes []Outcome
	for _, step := range s.Steps {
		out, err := runStep(c, tvars, marks, vars, step)
		outcomes = append(outcomes, Outcome{Step: step, Err: err, Report: out})
		if mismatch := checkExpect(step, err); mismatch != nil {
			return outcomes, mismatch
		}
	}
	return outcomes, nil
}

func checkExpect(step Step, err error) error {
	switch step.Expect {
	case "", "ok":
		if err != nil {
			return fmt.Errorf("scenario: step %q expected ok, got error: %w", step.Op, err)
		}
	case "err":
		if err == nil {
			return fmt.Errorf("scenario: step %q expected an error, got none", step.Op)
		}
	}
	return nil
}

func runStep(c *constraints.Context, tvars map[string]types.TVar, marks map[string]constraints.Mark, vars map[string]types.T, step Step) (string, error) {
	resolveType := func(arg string) (types.T, error) {
		merged := map[string]types.T{}
		for k, v := range vars {
			merged[k] = v
		}
		for k, v := range tvars {
			merged[k] = v
		}
		return ParseType(arg, merged)
	}
	resolveTVar := func(name string) (types.TVar, error) {
		v, ok := tvars[name]
		if !ok {
			return types.TVar{}, fmt.Errorf("scenario: unbound tvar %q", name)
		}
		return v, nil
	}
	resolveMark := func(name string) (constraints.Mark, error) {
		m, ok := marks[name]
		if !ok {
			return constraints.Mark{}, fmt.Errorf("scenario: unbound mark %q", name)
		}
		return m, nil
	}

	switch step.Op {
	case "gen_tvar":
		v := c.GenTVar()
		tvars[step.Bind] = v
		vars[step.Bind] = v
		return v.String(), nil

	case "gen_mark":
		marks[step.Bind] = c.GenMark()
		return "", nil

	case "assert_tvar_sub":
		v, err := resolveTVar(step.Args[0])
		if err != nil {
			return "", err
		}
		t, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertTVarSub(v, t)

	case "assert_tvar_sup":
		v, err := resolveTVar(step.Args[0])
		if err != nil {
			return "", err
		}
		t, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertTVarSup(v, t)

	case "assert_tvar_eq":
		v, err := resolveTVar(step.Args[0])
		if err != nil {
			return "", err
		}
		t, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertTVarEq(v, t)

	case "assert_tvar_sub_tvar":
		v1, err := resolveTVar(step.Args[0])
		if err != nil {
			return "", err
		}
		v2, err := resolveTVar(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertTVarSubTVar(v1, v2)

	case "assert_sub":
		a, err := resolveType(step.Args[0])
		if err != nil {
			return "", err
		}
		b, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertSub(a, b)

	case "assert_eq":
		a, err := resolveType(step.Args[0])
		if err != nil {
			return "", err
		}
		b, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertEq(a, b)

	case "assert_mark_true":
		m, err := resolveMark(step.Args[0])
		if err != nil {
			return "", err
		}
		return "", c.AssertMarkTrue(m)

	case "assert_mark_false":
		m, err := resolveMark(step.Args[0])
		if err != nil {
			return "", err
		}
		return "", c.AssertMarkFalse(m)

	case "assert_mark_imply":
		m1, err := resolveMark(step.Args[0])
		if err != nil {
			return "", err
		}
		m2, err := resolveMark(step.Args[1])
		if err != nil {
			return "", err
		}
		return "", c.AssertMarkImply(m1, m2)

	case "assert_mark_require_eq":
		m, err := resolveMark(step.Args[0])
		if err != nil {
			return "", err
		}
		base, err := resolveType(step.Args[1])
		if err != nil {
			return "", err
		}
		other, err := resolveType(step.Args[2])
		if err != nil {
			return "", err
		}
		return "", c.AssertMarkRequireEq(m, base, other)

	case "get_tvar_exact_type":
		v, err := resolveTVar(step.Args[0])
		if err != nil {
			return "", err
		}
		t, ok := c.GetTVarExactType(v)
		if !ok {
			return "none", nil
		}
		return t.String(), nil

	default:
		return "", fmt.Errorf("scenario: unknown op %q", step.Op)
	}
}
