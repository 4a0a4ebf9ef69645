package parts

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/roach88/rotorgraph/internal/ids"
	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/rng"
	"github.com/roach88/rotorgraph/internal/store"
)

// ErrIncompleteRotor indicates a rotor whose crosswires do not cover every
// combination of its machine exactly once.
var ErrIncompleteRotor = errors.New("parts: incomplete rotor")

// CrosswirePorts records which ports a crosswire occupies.
type CrosswirePorts struct {
	ID             string
	LeftPortOrder  int
	RightPortOrder int
}

// Port is one contact of an assembled rotor.
type Port struct {
	Node      mechanics.NodeID
	Crosswire CrosswirePorts
}

// RotorDescriptor is what rotor assembly hands back to the machine: the
// rotor's contacts on each side, indexed by port position.
type RotorDescriptor struct {
	Rotor           model.Rotor
	Reversed        bool
	RotorLeftPorts  []Port
	RotorRightPorts []Port
}

// Size returns the number of ports per side.
func (d RotorDescriptor) Size() int {
	return len(d.RotorRightPorts)
}

// RotorSeed derives the seed a rotor scrambles its crosswires from.
func RotorSeed(r model.Rotor) string {
	return fmt.Sprintf("%s:%s:%d:%t", r.Seed, strconv.FormatFloat(r.Order, 'g', -1, 64), r.Shift, r.Direction)
}

// InitCrosswires gives a rotor the identity wiring: one crosswire per
// combination of its machine, input == output, ordered by ordinal.
func InitCrosswires(ctx context.Context, st *store.Store, gen ids.Generator, rotor model.Rotor) ([]model.Crosswire, error) {
	combos, err := st.FindCombinations(ctx, rotor.Machine)
	if err != nil {
		return nil, fmt.Errorf("init crosswires: %w", err)
	}

	wires := make([]model.Crosswire, 0, len(combos))
	for _, c := range combos {
		w := model.Crosswire{
			ID:                gen.Generate(),
			Order:             float64(c.Number),
			InputCombination:  c.ID,
			OutputCombination: c.ID,
			Weight:            model.DefaultWeight,
			Rotor:             rotor.ID,
		}
		if err := st.InsertCrosswire(ctx, w); err != nil {
			return nil, fmt.Errorf("init crosswires: %w", err)
		}
		wires = append(wires, w)
	}
	return wires, nil
}

// CleanupCrosswires removes every crosswire of a rotor.
func CleanupCrosswires(ctx context.Context, st *store.Store, rotor model.Rotor) error {
	if _, err := st.RemoveCrosswires(ctx, rotor.ID); err != nil {
		return fmt.Errorf("cleanup crosswires: %w", err)
	}
	return nil
}

// ScrambleRotor rewires a rotor's crosswires from its current state.
//
// Crosswires are visited by input ordinal. Each draws a fresh order; the
// crosswire ranked k-th by that order is wired to combination k. Equal draws
// keep input order.
func ScrambleRotor(ctx context.Context, st *store.Store, rotor model.Rotor) error {
	combos, err := st.FindCombinations(ctx, rotor.Machine)
	if err != nil {
		return fmt.Errorf("scramble rotor %s: %w", rotor.ID, err)
	}
	wires, err := st.FindCrosswiresByInput(ctx, rotor.ID)
	if err != nil {
		return fmt.Errorf("scramble rotor %s: %w", rotor.ID, err)
	}
	if len(wires) != len(combos) {
		return fmt.Errorf("scramble rotor %s: %d crosswires for %d combinations: %w",
			rotor.ID, len(wires), len(combos), ErrIncompleteRotor)
	}

	gen := rng.New(RotorSeed(rotor))

	type draw struct {
		idx   int
		order float64
	}
	draws := make([]draw, len(wires))
	for i := range wires {
		draws[i] = draw{idx: i, order: gen.Float64()}
	}

	ranked := slices.Clone(draws)
	slices.SortStableFunc(ranked, func(a, b draw) int {
		return cmp.Compare(a.order, b.order)
	})
	rank := make([]int, len(wires))
	for pos, d := range ranked {
		rank[d.idx] = pos
	}

	for i, w := range wires {
		output := combos[rank[i]].ID
		if err := st.UpdateCrosswire(ctx, w.ID, draws[i].order, output); err != nil {
			return fmt.Errorf("scramble rotor %s: %w", rotor.ID, err)
		}
	}
	return nil
}

// AssembleRotor appends one pass of a rotor to m.
//
// Right ports are added first, then left ports, each in port order. The
// crosswire edges follow in crosswire order and point right to left unless
// reversed is set.
func AssembleRotor(ctx context.Context, st *store.Store, m *mechanics.Mechanics, rotor model.Rotor, reversed bool) (RotorDescriptor, error) {
	combos, err := st.FindCombinations(ctx, rotor.Machine)
	if err != nil {
		return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: %w", rotor.ID, err)
	}
	wires, err := st.FindCrosswires(ctx, rotor.ID)
	if err != nil {
		return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: %w", rotor.ID, err)
	}

	n := len(combos)
	if n == 0 || len(wires) != n {
		return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: %d crosswires for %d combinations: %w",
			rotor.ID, len(wires), n, ErrIncompleteRotor)
	}

	number := make(map[string]int, n)
	for _, c := range combos {
		number[c.ID] = c.Number
	}

	desc := RotorDescriptor{
		Rotor:           rotor,
		Reversed:        reversed,
		RotorLeftPorts:  make([]Port, n),
		RotorRightPorts: make([]Port, n),
	}
	for i := 0; i < n; i++ {
		desc.RotorRightPorts[i].Node = m.Add(mechanics.Node{
			Part: mechanics.NodeRotorPort, Owner: rotor.ID, Side: mechanics.SideRight, Index: i, Reversed: reversed,
		})
	}
	for i := 0; i < n; i++ {
		desc.RotorLeftPorts[i].Node = m.Add(mechanics.Node{
			Part: mechanics.NodeRotorPort, Owner: rotor.ID, Side: mechanics.SideLeft, Index: i, Reversed: reversed,
		})
	}

	seenRight := make([]bool, n)
	seenLeft := make([]bool, n)
	for _, w := range wires {
		in, ok := number[w.InputCombination]
		if !ok {
			return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: crosswire %s input %s: %w",
				rotor.ID, w.ID, w.InputCombination, ErrIncompleteRotor)
		}
		out, ok := number[w.OutputCombination]
		if !ok {
			return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: crosswire %s output %s: %w",
				rotor.ID, w.ID, w.OutputCombination, ErrIncompleteRotor)
		}

		r := (in - 1 + rotor.Shift) % n
		l := out - 1
		if rotor.Direction {
			l = n - 1 - l
		}
		if seenRight[r] || seenLeft[l] {
			return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: crosswire %s reuses a port: %w",
				rotor.ID, w.ID, ErrIncompleteRotor)
		}
		seenRight[r], seenLeft[l] = true, true

		ports := CrosswirePorts{ID: w.ID, LeftPortOrder: l, RightPortOrder: r}
		desc.RotorRightPorts[r].Crosswire = ports
		desc.RotorLeftPorts[l].Crosswire = ports

		edge := mechanics.Edge{
			Part:         mechanics.EdgeCrosswire,
			Length:       w.Weight,
			Direction:    reversed,
			Crosswire:    w.ID,
			InPortOrder:  r,
			OutPortOrder: l,
		}
		from, to := desc.RotorRightPorts[r].Node, desc.RotorLeftPorts[l].Node
		if reversed {
			from, to = to, from
			edge.InPortOrder, edge.OutPortOrder = l, r
		}
		if _, err := m.Connect(from, to, edge); err != nil {
			return RotorDescriptor{}, fmt.Errorf("assemble rotor %s: %w", rotor.ID, err)
		}
	}
	return desc, nil
}
