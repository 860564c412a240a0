// Package scenario loads and replays the data-driven constraint-store
// fixtures under testdata/scenarios, mirroring the teacher's own
// preference for data-driven fixtures over hand-rolled per-case Go
// literals when the same replay shape applies to many cases.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one operation in a scenario's replay sequence. Bind names a
// fresh tvar or mark this step introduces (for gen_tvar/gen_mark); Args
// are either prior bind names or type-expression strings, depending on
// Op; Expect is "ok" or "err".
type Step struct {
	Op     string   `yaml:"op"`
	Bind   string   `yaml:"bind,omitempty"`
	Args   []string `yaml:"args,omitempty"`
	Expect string   `yaml:"expect,omitempty"`
}

// Scenario is one named end-to-end replay (spec §8 "Concrete end-to-end
// scenarios").
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load reads and decodes a scenario fixture from path.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("scenario: decoding %s: %w", path, err)
	}
	return &s, nil
}
