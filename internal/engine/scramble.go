package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/parts"
	"github.com/roach88/rotorgraph/internal/rng"
	"github.com/roach88/rotorgraph/internal/store"
)

// ScrambleSeed is the seed a machine scrambles from.
func ScrambleSeed(m model.Machine, env model.Environment) string {
	return fmt.Sprintf("%s:%s:%s:%s:machine-%d", m.Seed, env.Galaxy, env.Star, env.Core, m.Order)
}

// DrawRotorState draws order, shift and direction for one rotor, in that
// order. Shift lands in [0, n-1].
func DrawRotorState(gen *rng.Generator, n int) model.RotorState {
	order := gen.Float64()
	shift := rng.IntFromInterval(gen.Float64(), 1, n) - 1
	direction := gen.Bool()
	return model.RotorState{Order: order, Shift: shift, Direction: direction}
}

// Scramble redraws every rotor's state and rewires the plugboard.
//
// Rotors are visited in creation order and each draws its state from one
// shared generator; the plugboard draws next. The machine's cached
// mechanics are invalidated.
func (e *Engine) Scramble(ctx context.Context, m model.Machine) error {
	q, err := e.store.FindQuorum(ctx, m.Quorum)
	if errors.Is(err, store.ErrNotFound) {
		return newMachineError(ErrCodeNoQuorum, m.ID, "quorum %s not found", m.Quorum)
	}
	if err != nil {
		return fmt.Errorf("scramble: %w", err)
	}

	seed := ScrambleSeed(m, q.Environment)
	gen := rng.New(seed)

	rotors, err := e.store.FindRotors(ctx, m.Seed, m.ID, store.SortCreated)
	if err != nil {
		return fmt.Errorf("scramble: %w", err)
	}
	if len(rotors) == 0 {
		return newMachineError(ErrCodeNoRotors, m.ID, "nothing to scramble")
	}

	for _, r := range rotors {
		state := DrawRotorState(gen, m.TargetCombinationCount)
		if err := e.store.UpdateRotorState(ctx, r.ID, state); err != nil {
			return fmt.Errorf("scramble: %w", err)
		}
		r.Order, r.Shift, r.Direction = state.Order, state.Shift, state.Direction
		if err := parts.ScrambleRotor(ctx, e.store, r); err != nil {
			return fmt.Errorf("scramble: %w", err)
		}
	}

	p, ok, err := e.store.FindPlugboard(ctx, m.Seed, m.ID)
	if err != nil {
		return fmt.Errorf("scramble: %w", err)
	}
	if !ok {
		return newMachineError(ErrCodeNoPlugboard, m.ID, "nothing to scramble")
	}
	combos, err := e.store.FindCombinations(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("scramble: %w", err)
	}
	wiring := parts.ScramblePlugboard(gen, len(combos))
	if err := e.store.UpdatePlugboardWiring(ctx, p.ID, wiring); err != nil {
		return fmt.Errorf("scramble: %w", err)
	}

	e.cache.Invalidate(m.ID)
	e.metrics.Scramble()

	slog.Info("machine scrambled", "machine", m.ID, "seed", seed, "rotors", len(rotors), "draws", gen.Draws())
	return nil
}
