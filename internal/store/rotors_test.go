package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/model"
)

func insertRotors(t *testing.T, s *Store, m model.Machine, orders ...float64) []model.Rotor {
	t.Helper()
	var rotors []model.Rotor
	for i, order := range orders {
		r, err := s.InsertRotor(context.Background(), model.Rotor{
			ID:                   "r-" + string(rune('1'+i)),
			Seed:                 m.Seed,
			Machine:              m.ID,
			TargetCrosswireCount: m.TargetCombinationCount,
			Order:                order,
		})
		require.NoError(t, err)
		rotors = append(rotors, r)
	}
	return rotors
}

func TestFindRotors_Sorts(t *testing.T) {
	s := createTestStore(t)
	m := seedMachine(t, s)
	ctx := context.Background()
	insertRotors(t, s, m, 0.5, 0.9, 0.1)

	ids := func(rotors []model.Rotor) []string {
		out := make([]string, len(rotors))
		for i, r := range rotors {
			out[i] = r.ID
		}
		return out
	}

	created, err := s.FindRotors(ctx, m.Seed, m.ID, SortCreated)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-1", "r-2", "r-3"}, ids(created))

	rtl, err := s.FindRotors(ctx, m.Seed, m.ID, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-2", "r-1", "r-3"}, ids(rtl))

	ltr, err := s.FindRotors(ctx, m.Seed, m.ID, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-3", "r-1", "r-2"}, ids(ltr))

	other, err := s.FindRotors(ctx, "other-seed", m.ID, SortCreated)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateRotorState(t *testing.T) {
	s := createTestStore(t)
	m := seedMachine(t, s)
	ctx := context.Background()
	rotors := insertRotors(t, s, m, 0.5)

	state := model.RotorState{Order: 0.25, Shift: 3, Direction: true}
	require.NoError(t, s.UpdateRotorState(ctx, rotors[0].ID, state))

	got, err := s.FindRotor(ctx, rotors[0].ID)
	require.NoError(t, err)
	assert.Equal(t, state, got.State())

	assert.ErrorIs(t, s.UpdateRotorState(ctx, "missing", state), ErrNotFound)
}

func TestCrosswires(t *testing.T) {
	s := createTestStore(t)
	m := seedMachine(t, s)
	ctx := context.Background()
	rotor := insertRotors(t, s, m, 0.5)[0]

	// Inserted out of letter order with scrambled orders.
	wires := []model.Crosswire{
		{ID: "x-c", Order: 0.1, InputCombination: "c-c", OutputCombination: "c-a", Rotor: rotor.ID},
		{ID: "x-a", Order: 0.7, InputCombination: "c-a", OutputCombination: "c-d", Rotor: rotor.ID},
		{ID: "x-d", Order: 0.4, InputCombination: "c-d", OutputCombination: "c-b", Rotor: rotor.ID, Weight: 2.5},
		{ID: "x-b", Order: 0.9, InputCombination: "c-b", OutputCombination: "c-c", Rotor: rotor.ID},
	}
	for _, w := range wires {
		require.NoError(t, s.InsertCrosswire(ctx, w))
	}

	byOrder, err := s.FindCrosswires(ctx, rotor.ID)
	require.NoError(t, err)
	require.Len(t, byOrder, 4)
	assert.Equal(t, "x-c", byOrder[0].ID)
	assert.Equal(t, "x-d", byOrder[1].ID)
	assert.Equal(t, 2.5, byOrder[1].Weight)
	assert.Equal(t, model.DefaultWeight, byOrder[0].Weight)

	byInput, err := s.FindCrosswiresByInput(ctx, rotor.ID)
	require.NoError(t, err)
	require.Len(t, byInput, 4)
	assert.Equal(t, []string{"x-a", "x-b", "x-c", "x-d"},
		[]string{byInput[0].ID, byInput[1].ID, byInput[2].ID, byInput[3].ID})

	require.NoError(t, s.UpdateCrosswire(ctx, "x-a", 0.05, "c-b"))
	require.NoError(t, s.UpdateCrosswireWeight(ctx, "x-b", 4))
	byOrder, err = s.FindCrosswires(ctx, rotor.ID)
	require.NoError(t, err)
	assert.Equal(t, "x-a", byOrder[0].ID)
	assert.Equal(t, "c-b", byOrder[0].OutputCombination)
	assert.Equal(t, 4.0, byOrder[3].Weight)

	// A rotor with crosswires cannot be removed until they are gone.
	assert.Error(t, s.RemoveRotor(ctx, rotor.ID))

	n, err := s.RemoveCrosswires(ctx, rotor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	require.NoError(t, s.RemoveRotor(ctx, rotor.ID))

	_, err = s.FindRotor(ctx, rotor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
