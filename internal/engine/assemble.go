package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/parts"
	"github.com/roach88/rotorgraph/internal/store"
)

// Assemble builds the machine's signal graph from its stored state and
// caches it, replacing any previous graph.
//
// Build order: genesis, infinity, the outbound rotor pass (order
// descending), the inbound pass (order ascending), the reflector, the
// plugboard, then the links between adjacent rotors of each pass. A
// missing reflector or plugboard is logged and skipped; lookups on such a
// graph resolve to the unreachable sentinel.
//
// The graph is cached only once it is complete. On error the machine's
// cache entry is dropped instead.
func (e *Engine) Assemble(ctx context.Context, m model.Machine) (mech *mechanics.Mechanics, err error) {
	start := time.Now()
	mech = mechanics.New(m.ID)
	defer func() {
		if err != nil {
			e.cache.Invalidate(m.ID)
			mech = nil
		}
	}()

	mech.Add(mechanics.Node{Part: mechanics.NodeGenesis, Owner: m.ID})
	mech.Add(mechanics.Node{Part: mechanics.NodeInfinity, Owner: m.ID})

	rtl, err := e.assemblePass(ctx, mech, m, store.SortOrderDesc, false)
	if err != nil {
		return nil, err
	}
	ltr, err := e.assemblePass(ctx, mech, m, store.SortOrderAsc, true)
	if err != nil {
		return nil, err
	}
	if len(rtl) == 0 || len(rtl) != len(ltr) {
		return nil, newMachineError(ErrCodeNoRotors, m.ID, "%d outbound and %d inbound rotors", len(rtl), len(ltr))
	}

	enter, in := rtl[0], rtl[len(rtl)-1]
	out, exit := ltr[0], ltr[len(ltr)-1]

	reflector, ok, err := e.store.FindReflector(ctx, m.Seed, m.ID)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if ok {
		if err := parts.AssembleReflector(mech, reflector, in, out); err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
	} else {
		slog.Warn("machine has no reflector", "machine", m.ID)
	}

	plugboard, ok, err := e.store.FindPlugboard(ctx, m.Seed, m.ID)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if ok {
		combos, err := e.store.FindCombinations(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		if err := parts.AssemblePlugboard(mech, plugboard, combos, enter, exit); err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
	} else {
		slog.Warn("machine has no plugboard", "machine", m.ID)
	}

	if err := linkOutbound(mech, rtl); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	if err := linkInbound(mech, ltr); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	e.cache.Put(mech)

	elapsed := time.Since(start)
	nodes, edges := mech.Structure.NodeCount(), mech.Structure.EdgeCount()
	e.metrics.Assembly(m.ID, nodes, edges, elapsed)
	slog.Info("machine assembled", "machine", m.ID, "rotors", len(rtl), "nodes", nodes, "edges", edges, "elapsed", elapsed)
	return mech, nil
}

// assemblePass assembles every rotor of the machine in the given order.
func (e *Engine) assemblePass(ctx context.Context, mech *mechanics.Mechanics, m model.Machine, sort store.RotorSort, reversed bool) ([]parts.RotorDescriptor, error) {
	rotors, err := e.store.FindRotors(ctx, m.Seed, m.ID, sort)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	descs := make([]parts.RotorDescriptor, 0, len(rotors))
	for _, r := range rotors {
		d, err := parts.AssembleRotor(ctx, e.store, mech, r, reversed)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// linkOutbound joins the left ports of each outbound rotor to the right
// ports of the next one.
func linkOutbound(mech *mechanics.Mechanics, rtl []parts.RotorDescriptor) error {
	for i := 1; i < len(rtl); i++ {
		from, to := rtl[i-1].RotorLeftPorts, rtl[i].RotorRightPorts
		for j := range from {
			_, err := mech.Connect(from[j].Node, to[j].Node, mechanics.Edge{
				Part:              mechanics.EdgeLink,
				Direction:         false,
				InCrosswireOrder:  from[j].Crosswire.LeftPortOrder,
				OutCrosswireOrder: to[j].Crosswire.RightPortOrder,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// linkInbound joins the right ports of each inbound rotor to the left
// ports of the next one.
func linkInbound(mech *mechanics.Mechanics, ltr []parts.RotorDescriptor) error {
	for i := 1; i < len(ltr); i++ {
		from, to := ltr[i-1].RotorRightPorts, ltr[i].RotorLeftPorts
		for j := range from {
			_, err := mech.Connect(from[j].Node, to[j].Node, mechanics.Edge{
				Part:              mechanics.EdgeLink,
				Direction:         true,
				InCrosswireOrder:  from[j].Crosswire.RightPortOrder,
				OutCrosswireOrder: to[j].Crosswire.LeftPortOrder,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
