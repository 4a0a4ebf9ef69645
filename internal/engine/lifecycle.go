package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/parts"
	"github.com/roach88/rotorgraph/internal/store"
)

// InitCombinations registers one combination per alphabet character, with
// ordinals from 1, and stores the id list on the machine. Existing
// combinations of the machine are replaced.
func (e *Engine) InitCombinations(ctx context.Context, m model.Machine) (model.Machine, error) {
	if err := e.CleanupCombinations(ctx, m); err != nil {
		return m, err
	}

	letters := model.Letters(m.Alphabet)
	if len(letters) == 0 {
		return m, newMachineError(ErrCodeNoCombinations, m.ID, "alphabet is empty")
	}

	combos := make([]string, 0, len(letters))
	for i, letter := range letters {
		c := model.Combination{ID: e.NewID(), Letter: letter, Number: i + 1, Machine: m.ID}
		if err := e.store.InsertCombination(ctx, c); err != nil {
			return m, fmt.Errorf("init combinations: %w", err)
		}
		combos = append(combos, c.ID)
	}

	if err := e.store.UpdateMachineCombinations(ctx, m.ID, combos); err != nil {
		return m, fmt.Errorf("init combinations: %w", err)
	}
	m.Combinations = combos
	e.cache.Invalidate(m.ID)

	slog.Info("combinations initialised", "machine", m.ID, "count", len(combos))
	return m, nil
}

// CleanupCombinations removes the machine's combinations.
func (e *Engine) CleanupCombinations(ctx context.Context, m model.Machine) error {
	n, err := e.store.RemoveCombinations(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("cleanup combinations: %w", err)
	}
	if n > 0 {
		slog.Debug("combinations removed", "machine", m.ID, "count", n)
	}
	return nil
}

// InitRotors creates TargetRotorCount rotors, each wired to the identity
// over the machine's combinations, and stores their ids on the machine.
// Existing rotors of the machine are replaced.
func (e *Engine) InitRotors(ctx context.Context, m model.Machine) (model.Machine, error) {
	if err := e.CleanupRotors(ctx, m); err != nil {
		return m, err
	}

	rotors := make([]string, 0, m.TargetRotorCount)
	for i := 0; i < m.TargetRotorCount; i++ {
		r, err := e.store.InsertRotor(ctx, model.Rotor{
			ID:                   e.NewID(),
			Seed:                 m.Seed,
			Machine:              m.ID,
			TargetCrosswireCount: m.TargetCombinationCount,
			Order:                0.5,
		})
		if err != nil {
			return m, fmt.Errorf("init rotors: %w", err)
		}
		if _, err := parts.InitCrosswires(ctx, e.store, e.ids, r); err != nil {
			return m, fmt.Errorf("init rotors: %w", err)
		}
		rotors = append(rotors, r.ID)
	}

	if err := e.store.UpdateMachineRotors(ctx, m.ID, rotors); err != nil {
		return m, fmt.Errorf("init rotors: %w", err)
	}
	m.Rotors = rotors
	e.cache.Invalidate(m.ID)

	slog.Info("rotors initialised", "machine", m.ID, "count", len(rotors))
	return m, nil
}

// CleanupRotors removes the machine's rotors, crosswires first.
func (e *Engine) CleanupRotors(ctx context.Context, m model.Machine) error {
	rotors, err := e.store.FindRotors(ctx, m.Seed, m.ID, store.SortCreated)
	if err != nil {
		return fmt.Errorf("cleanup rotors: %w", err)
	}
	for _, r := range rotors {
		if err := parts.CleanupCrosswires(ctx, e.store, r); err != nil {
			return fmt.Errorf("cleanup rotors: %w", err)
		}
		if err := e.store.RemoveRotor(ctx, r.ID); err != nil {
			return fmt.Errorf("cleanup rotors: %w", err)
		}
	}
	e.cache.Invalidate(m.ID)
	return nil
}

// InitReflector creates the machine's reflector, replacing any existing one.
func (e *Engine) InitReflector(ctx context.Context, m model.Machine) (model.Machine, error) {
	if err := e.CleanupReflector(ctx, m); err != nil {
		return m, err
	}

	r := model.Reflector{
		ID:                     e.NewID(),
		Seed:                   m.Seed,
		Machine:                m.ID,
		TargetCombinationCount: m.TargetCombinationCount,
	}
	if err := e.store.InsertReflector(ctx, r); err != nil {
		return m, fmt.Errorf("init reflector: %w", err)
	}
	if err := e.store.UpdateMachineReflector(ctx, m.ID, r.ID); err != nil {
		return m, fmt.Errorf("init reflector: %w", err)
	}
	m.Reflector = r.ID
	e.cache.Invalidate(m.ID)

	slog.Info("reflector initialised", "machine", m.ID)
	return m, nil
}

// CleanupReflector removes the machine's reflector, if any.
func (e *Engine) CleanupReflector(ctx context.Context, m model.Machine) error {
	r, ok, err := e.store.FindReflector(ctx, m.Seed, m.ID)
	if err != nil {
		return fmt.Errorf("cleanup reflector: %w", err)
	}
	if !ok {
		return nil
	}
	if err := e.store.RemoveReflector(ctx, r.ID); err != nil {
		return fmt.Errorf("cleanup reflector: %w", err)
	}
	e.cache.Invalidate(m.ID)
	return nil
}

// InitPlugboard creates the machine's plugboard with the identity wiring,
// replacing any existing one.
func (e *Engine) InitPlugboard(ctx context.Context, m model.Machine) (model.Machine, error) {
	if err := e.CleanupPlugboard(ctx, m); err != nil {
		return m, err
	}

	p := model.Plugboard{
		ID:                     e.NewID(),
		Seed:                   m.Seed,
		Main:                   m.Main,
		Machine:                m.ID,
		TargetCombinationCount: m.TargetCombinationCount,
	}
	if err := e.store.InsertPlugboard(ctx, p); err != nil {
		return m, fmt.Errorf("init plugboard: %w", err)
	}
	if err := e.store.UpdateMachinePlugboard(ctx, m.ID, p.ID); err != nil {
		return m, fmt.Errorf("init plugboard: %w", err)
	}
	m.Plugboard = p.ID
	e.cache.Invalidate(m.ID)

	slog.Info("plugboard initialised", "machine", m.ID)
	return m, nil
}

// CleanupPlugboard removes the machine's plugboard, if any.
func (e *Engine) CleanupPlugboard(ctx context.Context, m model.Machine) error {
	p, ok, err := e.store.FindPlugboard(ctx, m.Seed, m.ID)
	if err != nil {
		return fmt.Errorf("cleanup plugboard: %w", err)
	}
	if !ok {
		return nil
	}
	if err := e.store.RemovePlugboard(ctx, p.ID); err != nil {
		return fmt.Errorf("cleanup plugboard: %w", err)
	}
	e.cache.Invalidate(m.ID)
	return nil
}

// Init runs every initialiser in order: combinations, rotors, reflector,
// plugboard.
func (e *Engine) Init(ctx context.Context, m model.Machine) (model.Machine, error) {
	steps := []func(context.Context, model.Machine) (model.Machine, error){
		e.InitCombinations,
		e.InitRotors,
		e.InitReflector,
		e.InitPlugboard,
	}
	var err error
	for _, step := range steps {
		if m, err = step(ctx, m); err != nil {
			return m, err
		}
	}
	return m, nil
}
