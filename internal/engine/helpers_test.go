package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/ids"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/store"
)

const lowercase = "abcdefghijklmnopqrstuvwxyz"

var testEnv = model.Environment{Galaxy: "milky-way", Star: "sol", Core: "earth"}

// newTestEngine opens a temp store and returns an engine with sequential ids.
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts = append([]Option{WithIDGenerator(ids.NewSequenceGenerator("id"))}, opts...)
	return New(st, opts...)
}

// newMachine stores a quorum and one machine, without components.
func newMachine(t *testing.T, e *Engine, seed, alphabet string, rotors int) model.Machine {
	t.Helper()
	ctx := context.Background()

	q, err := e.Store().InsertQuorum(ctx, model.Quorum{
		ID: e.NewID(), Key: seed, Main: alphabet, Environment: testEnv,
	})
	require.NoError(t, err)

	m, err := e.Store().InsertMachine(ctx, model.Machine{
		ID:                     e.NewID(),
		Seed:                   seed,
		Order:                  1,
		Quorum:                 q.ID,
		Alphabet:               alphabet,
		Main:                   alphabet,
		TargetRotorCount:       rotors,
		TargetCombinationCount: len(model.Letters(alphabet)),
		LayerBy:                " ",
	})
	require.NoError(t, err)
	return m
}

// newReadyMachine stores a machine with every component initialised.
func newReadyMachine(t *testing.T, e *Engine, seed, alphabet string, rotors int) model.Machine {
	t.Helper()
	m, err := e.Init(context.Background(), newMachine(t, e, seed, alphabet, rotors))
	require.NoError(t, err)
	return m
}

// machineState captures everything a scramble writes.
type machineState struct {
	Rotors []model.RotorState
	Wires  [][]string // output letters per rotor, by input ordinal
	Wiring []int
}

func captureState(t *testing.T, e *Engine, m model.Machine) machineState {
	t.Helper()
	ctx := context.Background()
	st := e.Store()

	combos, err := st.FindCombinations(ctx, m.ID)
	require.NoError(t, err)
	letter := make(map[string]string, len(combos))
	for _, c := range combos {
		letter[c.ID] = c.Letter
	}

	var s machineState
	rotors, err := st.FindRotors(ctx, m.Seed, m.ID, store.SortCreated)
	require.NoError(t, err)
	for _, r := range rotors {
		s.Rotors = append(s.Rotors, r.State())
		wires, err := st.FindCrosswiresByInput(ctx, r.ID)
		require.NoError(t, err)
		var outs []string
		for _, w := range wires {
			outs = append(outs, letter[w.OutputCombination])
		}
		s.Wires = append(s.Wires, outs)
	}

	p, ok, err := st.FindPlugboard(ctx, m.Seed, m.ID)
	require.NoError(t, err)
	require.True(t, ok)
	s.Wiring = p.Wiring
	return s
}

// recordingTicker remembers every tick.
type recordingTicker struct {
	ticks []tick
}

type tick struct {
	channel, keyPress int
	entropy           string
}

func (r *recordingTicker) Tick(_ context.Context, _ model.Machine, channel, keyPress int, entropy string) error {
	r.ticks = append(r.ticks, tick{channel, keyPress, entropy})
	return nil
}
