package engine

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/store"
)

func TestAssemble_Census(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "k", "abcd", 3)
	require.NoError(t, e.Scramble(ctx, m))

	mech, err := e.Assemble(ctx, m)
	require.NoError(t, err)

	// genesis + infinity, 3 rotors x 2 passes x 8 ports, 4 reflector ports,
	// 4 entry + 4 exit plugboard ports.
	c := mech.Census()
	assert.Equal(t, 2+48+4+8, c.Nodes)
	assert.Equal(t, map[string]int{
		"keyboard":   4,
		"plugboard":  4,
		"crosswire":  24,
		"link":       16,
		"reflector":  8,
		"gateway":    4,
		"lightboard": 4,
	}, c.ByEdge)
	assert.Equal(t, 64, c.Edges)

	genesis, _ := mech.Structure.Node(mechanics.GenesisID)
	infinity, _ := mech.Structure.Node(mechanics.CompleteID)
	assert.Equal(t, mechanics.NodeGenesis, genesis.Part)
	assert.Equal(t, mechanics.NodeInfinity, infinity.Part)
	assert.Equal(t, mechanics.CompleteID, mech.CompleteID)

	cached, err := e.Cache().Get(m.ID)
	require.NoError(t, err)
	assert.Same(t, mech, cached)
}

func TestAssemble_WellFormedPaths(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "wellformed", lowercase, 4)
	require.NoError(t, e.Scramble(ctx, m))
	mech, err := e.Assemble(ctx, m)
	require.NoError(t, err)

	for _, letter := range []string{"a", "m", "z"} {
		path, ok, err := mech.Route(letter)
		require.NoError(t, err)
		require.True(t, ok)

		var outbound, inbound int
		for _, edge := range path.Edges {
			if edge.Part != mechanics.EdgeCrosswire {
				continue
			}
			if edge.Direction {
				inbound++
			} else {
				outbound++
			}
		}
		assert.Equal(t, 4, outbound, "outbound crosswires for %q", letter)
		assert.Equal(t, 4, inbound, "inbound crosswires for %q", letter)
		assert.Equal(t, 2, path.Count(mechanics.EdgeReflector), "one reflector traversal is two edges")
		assert.Equal(t, 6, path.Count(mechanics.EdgeLink))
		assert.Equal(t, 8.0, path.Cost)

		first := path.Edges[0]
		last, _ := path.Last()
		assert.Equal(t, mechanics.EdgePlugboard, first.Part)
		assert.Equal(t, mechanics.EdgeLightboard, last.Part)
	}
}

func TestAssemble_TraversalSymmetry(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "sym", "abcdef", 5)
	require.NoError(t, e.Scramble(ctx, m))

	ids := func(s store.RotorSort) []string {
		rotors, err := e.Store().FindRotors(ctx, m.Seed, m.ID, s)
		require.NoError(t, err)
		out := make([]string, len(rotors))
		for i, r := range rotors {
			out[i] = r.ID
		}
		return out
	}
	rtl, ltr := ids(store.SortOrderDesc), ids(store.SortOrderAsc)
	require.Len(t, rtl, 5)

	for i := range rtl {
		assert.Equal(t, rtl[i], ltr[len(ltr)-1-i], "inbound pass is the outbound pass reversed")
	}
	sort.Strings(rtl)
	sort.Strings(ltr)
	assert.Equal(t, rtl, ltr)
}

func TestAssemble_CostMonotonicity(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "cost", "abcd", 2)
	require.NoError(t, e.Scramble(ctx, m))

	mech, err := e.Assemble(ctx, m)
	require.NoError(t, err)
	before, _, err := mech.Route("a")
	require.NoError(t, err)

	var wire string
	for _, edge := range before.Edges {
		if edge.Part == mechanics.EdgeCrosswire {
			wire = edge.Crosswire
			break
		}
	}
	require.NotEmpty(t, wire)
	require.NoError(t, e.Store().UpdateCrosswireWeight(ctx, wire, 3.5))

	mech, err = e.Assemble(ctx, m)
	require.NoError(t, err)
	after, _, err := mech.Route("a")
	require.NoError(t, err)

	crossings := 0
	for _, edge := range after.Edges {
		if edge.Part == mechanics.EdgeCrosswire && edge.Crosswire == wire {
			crossings++
		}
	}
	require.Positive(t, crossings)
	assert.Greater(t, after.Cost, before.Cost)
	assert.Equal(t, before.Cost+float64(crossings)*2.5, after.Cost)

	last, _ := after.Last()
	lastBefore, _ := before.Last()
	assert.Equal(t, lastBefore.Combination.Letter, last.Combination.Letter, "weights never change the wiring")
}

func TestAssemble_ReadersNeverSeePartialGraph(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "race", "abcd", 2)
	_, err := e.Assemble(ctx, m)
	require.NoError(t, err)

	done := make(chan struct{})
	errs := make(chan error, 1)
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			if _, err := e.Assemble(ctx, m); err != nil {
				errs <- err
				return
			}
		}
	}()

	// A half-built graph resolves to a sentinel instead of a letter.
	for {
		select {
		case <-done:
			select {
			case err := <-errs:
				require.NoError(t, err)
			default:
			}
			return
		default:
		}
		out, err := e.Lookup(ctx, m, "a")
		require.NoError(t, err)
		require.NotEqual(t, Unreachable, out)
		require.Contains(t, []string{"a", "b", "c", "d"}, out)
	}
}

func TestAssemble_FailureKeepsNoStaleGraph(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newMachine(t, e, "k", "abcd", 1)
	m, err := e.InitCombinations(ctx, m)
	require.NoError(t, err)
	e.Cache().Put(mechanics.New(m.ID))

	_, err = e.Assemble(ctx, m)
	require.Error(t, err)

	_, err = e.Cache().Get(m.ID)
	assert.ErrorIs(t, err, mechanics.ErrNoMechanics)
}

func TestAssemble_NoRotors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newMachine(t, e, "k", "abcd", 1)
	m, err := e.InitCombinations(ctx, m)
	require.NoError(t, err)

	_, err = e.Assemble(ctx, m)
	assert.True(t, IsMachineError(err, ErrCodeNoRotors), "got %v", err)

	_, err = e.Cache().Get(m.ID)
	assert.ErrorIs(t, err, mechanics.ErrNoMechanics, "failed assembly leaves nothing cached")
}

func TestAssemble_MissingReflectorIsUnreachable(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	m := newReadyMachine(t, e, "k", "abcd", 1)
	require.NoError(t, e.CleanupReflector(ctx, m))

	_, err := e.Assemble(ctx, m)
	require.NoError(t, err)

	out, err := e.Lookup(ctx, m, "a")
	require.NoError(t, err)
	assert.Equal(t, Unreachable, out)
}
