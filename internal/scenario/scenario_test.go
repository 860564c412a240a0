package scenario

import (
	"path/filepath"
	"testing"
)

// TestScenarios_FromFixtures replays every testdata/scenarios/*.yaml
// fixture (spec §8 "Concrete end-to-end scenarios") and requires each
// step's observed ok/err outcome to match its declared expectation, with
// no step left over (the harness reports a prefix on first mismatch).
func TestScenarios_FromFixtures(t *testing.T) {
	names := []string{
		"repeated_tightening",
		"disjoint_through_transitive",
		"equality_overrides",
		"record_subtyping_free_vars",
		"mark_implication_discharge",
		"mark_deferred_type_constraint",
	}

	for _, name := range names {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("..", "..", "testdata", "scenarios", name+".yaml")
			s, err := Load(path)
			if err != nil {
				t.Fatalf("loading fixture: %v", err)
			}
			outcomes, err := Run(s)
			if err != nil {
				t.Fatalf("scenario %q failed at step %d (%s): %v", name, len(outcomes), outcomes[len(outcomes)-1].Step.Op, err)
			}
			if len(outcomes) != len(s.Steps) {
				t.Fatalf("scenario %q: expected %d steps to run, only %d ran", name, len(s.Steps), len(outcomes))
			}
		})
	}
}
