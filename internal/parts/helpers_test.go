package parts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/ids"
	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/store"
)

type fixture struct {
	st      *store.Store
	ids     *ids.SequenceGenerator
	machine model.Machine
	combos  []model.Combination
}

// newFixture stores a machine over alphabet with its combinations.
func newFixture(t *testing.T, alphabet string) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), "parts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.InsertQuorum(ctx, model.Quorum{ID: "q", Key: "k", Main: alphabet})
	require.NoError(t, err)

	letters := model.Letters(alphabet)
	m, err := st.InsertMachine(ctx, model.Machine{
		ID: "m", Seed: "k", Order: 1, Quorum: "q", Alphabet: alphabet, Main: alphabet,
		TargetRotorCount: 1, TargetCombinationCount: len(letters), LayerBy: " ",
	})
	require.NoError(t, err)

	f := &fixture{st: st, ids: ids.NewSequenceGenerator("x"), machine: m}
	for i, l := range letters {
		c := model.Combination{ID: "c-" + l, Letter: l, Number: i + 1, Machine: m.ID}
		require.NoError(t, st.InsertCombination(ctx, c))
		f.combos = append(f.combos, c)
	}
	return f
}

// addRotor stores a rotor with the given state and identity crosswires.
func (f *fixture) addRotor(t *testing.T, id string, state model.RotorState) model.Rotor {
	t.Helper()
	ctx := context.Background()

	r, err := f.st.InsertRotor(ctx, model.Rotor{
		ID: id, Seed: f.machine.Seed, Machine: f.machine.ID,
		TargetCrosswireCount: len(f.combos),
		Order:                state.Order, Shift: state.Shift, Direction: state.Direction,
	})
	require.NoError(t, err)
	_, err = InitCrosswires(ctx, f.st, f.ids, r)
	require.NoError(t, err)
	return r
}

// newMechanics returns a Mechanics holding genesis and infinity.
func newMechanics() *mechanics.Mechanics {
	m := mechanics.New("m")
	m.Add(mechanics.Node{Part: mechanics.NodeGenesis})
	m.Add(mechanics.Node{Part: mechanics.NodeInfinity})
	return m
}

// assembleSingle builds a complete one-rotor machine graph.
func (f *fixture) assembleSingle(t *testing.T, rotor model.Rotor, wiring []int) *mechanics.Mechanics {
	t.Helper()
	ctx := context.Background()
	m := newMechanics()

	rtl, err := AssembleRotor(ctx, f.st, m, rotor, false)
	require.NoError(t, err)
	ltr, err := AssembleRotor(ctx, f.st, m, rotor, true)
	require.NoError(t, err)

	require.NoError(t, AssembleReflector(m, model.Reflector{ID: "ref"}, rtl, ltr))
	require.NoError(t, AssemblePlugboard(m, model.Plugboard{ID: "pb", Wiring: wiring}, f.combos, rtl, ltr))
	return m
}

func route(t *testing.T, m *mechanics.Mechanics, letter string) string {
	t.Helper()
	path, ok, err := m.Route(letter)
	require.NoError(t, err)
	require.True(t, ok, "no entry for %q", letter)
	last, ok := path.Last()
	require.True(t, ok)
	require.NotNil(t, last.Combination)
	return last.Combination.Letter
}
