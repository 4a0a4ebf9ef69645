package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/model"
)

func TestFindQuorum(t *testing.T) {
	s := createTestStore(t)
	seedMachine(t, s)

	q, err := s.FindQuorum(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "key", q.Key)
	assert.Equal(t, model.Environment{Galaxy: "g", Star: "s", Core: "c"}, q.Environment)
	assert.Positive(t, q.CreatedSeq)

	_, err = s.FindQuorum(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindQuorumByKey_ReturnsLatest(t *testing.T) {
	s := createTestStore(t)
	seedMachine(t, s)
	ctx := context.Background()

	_, err := s.InsertQuorum(ctx, model.Quorum{ID: "q-2", Key: "key", Main: "abcd"})
	require.NoError(t, err)

	q, err := s.FindQuorumByKey(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "q-2", q.ID)

	_, err = s.FindQuorumByKey(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindMachine_RoundTripsIDLists(t *testing.T) {
	s := createTestStore(t)
	m := seedMachine(t, s)
	ctx := context.Background()

	require.NoError(t, s.UpdateMachineCombinations(ctx, m.ID, m.Combinations))
	require.NoError(t, s.UpdateMachineRotors(ctx, m.ID, []string{"r-1", "r-2"}))
	require.NoError(t, s.UpdateMachineReflector(ctx, m.ID, "ref-1"))
	require.NoError(t, s.UpdateMachinePlugboard(ctx, m.ID, "pb-1"))

	got, err := s.FindMachine(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c-a", "c-b", "c-c", "c-d"}, got.Combinations)
	assert.Equal(t, []string{"r-1", "r-2"}, got.Rotors)
	assert.Equal(t, "ref-1", got.Reflector)
	assert.Equal(t, "pb-1", got.Plugboard)
	assert.Equal(t, " ", got.LayerBy)
}

func TestFindMachine_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.FindMachine(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateMachineReflector(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindMachines_OrderedByPosition(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	seedMachine(t, s)

	_, err := s.InsertMachine(ctx, model.Machine{
		ID: "m-3", Seed: "key", Order: 3, Quorum: "q-1", Alphabet: "ab", TargetRotorCount: 1,
		TargetCombinationCount: 2, LayerBy: " ",
	})
	require.NoError(t, err)
	_, err = s.InsertMachine(ctx, model.Machine{
		ID: "m-2", Seed: "key", Order: 2, Quorum: "q-1", Alphabet: "ab", TargetRotorCount: 1,
		TargetCombinationCount: 2, LayerBy: " ",
	})
	require.NoError(t, err)

	machines, err := s.FindMachines(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, machines, 3)
	assert.Equal(t, "m-1", machines[0].ID)
	assert.Equal(t, "m-2", machines[1].ID)
	assert.Equal(t, "m-3", machines[2].ID)

	m, err := s.FindMachineByOrder(ctx, "q-1", 2)
	require.NoError(t, err)
	assert.Equal(t, "m-2", m.ID)

	_, err = s.FindMachineByOrder(ctx, "q-1", 9)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := s.FindMachines(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCombinations(t *testing.T) {
	s := createTestStore(t)
	m := seedMachine(t, s)
	ctx := context.Background()

	c, ok, err := s.FindCombination(ctx, m.ID, "c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, c.Number)

	_, ok, err = s.FindCombination(ctx, m.ID, "z")
	require.NoError(t, err)
	assert.False(t, ok, "unknown letter should not be found")

	byID, err := s.FindCombinationByID(ctx, "c-b")
	require.NoError(t, err)
	assert.Equal(t, "b", byID.Letter)

	all, err := s.FindCombinations(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, combo := range all {
		assert.Equal(t, i+1, combo.Number)
	}

	n, err := s.RemoveCombinations(ctx, m.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	all, err = s.FindCombinations(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
}
