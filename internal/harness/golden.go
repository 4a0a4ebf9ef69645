package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rotorgraph/internal/mechanics"
)

// Snapshot is the golden view of a run. Ciphertext is left out: it
// changes whenever the scramble draws change, while the graph shape and
// keystroke outcomes do not.
type Snapshot struct {
	Scenario   string            `json:"scenario"`
	Alphabet   string            `json:"alphabet"`
	Rotors     int               `json:"rotors"`
	Pass       bool              `json:"pass"`
	Census     mechanics.Census  `json:"census"`
	Keystrokes map[string]string `json:"keystrokes"`
}

// NewSnapshot builds the golden view of result.
func NewSnapshot(scenario *Scenario, result *Result) Snapshot {
	return Snapshot{
		Scenario:   scenario.Name,
		Alphabet:   scenario.Quorum.Alphabet(),
		Rotors:     scenario.Quorum.RotorCount,
		Pass:       result.Pass,
		Census:     result.Census,
		Keystrokes: result.Keystrokes,
	}
}

// MarshalSnapshot renders s as indented JSON with a trailing newline.
// Map keys are sorted, so the output is stable.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(NewSnapshot(scenario, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
