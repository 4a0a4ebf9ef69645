package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rotorgraph/internal/model"
)

// InsertReflector inserts a reflector.
func (s *Store) InsertReflector(ctx context.Context, r model.Reflector) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reflectors (id, seed, machine, target_combination_count, created_seq)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Seed, r.Machine, r.TargetCombinationCount, s.clock.Next())
	if err != nil {
		return fmt.Errorf("insert reflector: %w", err)
	}
	return nil
}

// FindReflector returns the reflector for seed and machine.
// Returns (reflector, true, nil) if found, (zero, false, nil) if not.
func (s *Store) FindReflector(ctx context.Context, seed, machine string) (model.Reflector, bool, error) {
	var r model.Reflector
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed, machine, target_combination_count
		FROM reflectors
		WHERE seed = ? AND machine = ?
		ORDER BY created_seq ASC
		LIMIT 1
	`, seed, machine).Scan(&r.ID, &r.Seed, &r.Machine, &r.TargetCombinationCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reflector{}, false, nil
	}
	if err != nil {
		return model.Reflector{}, false, fmt.Errorf("find reflector: %w", err)
	}
	return r, true, nil
}

// RemoveReflector deletes a reflector by id.
func (s *Store) RemoveReflector(ctx context.Context, id string) error {
	return s.execOne(ctx, "remove reflector", `DELETE FROM reflectors WHERE id = ?`, id)
}

// InsertPlugboard inserts a plugboard with its current wiring.
func (s *Store) InsertPlugboard(ctx context.Context, p model.Plugboard) error {
	wiring, err := marshalWiring(p.Wiring)
	if err != nil {
		return fmt.Errorf("insert plugboard: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plugboards (id, seed, main_alphabet, machine, target_combination_count, wiring, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Seed, p.Main, p.Machine, p.TargetCombinationCount, wiring, s.clock.Next())
	if err != nil {
		return fmt.Errorf("insert plugboard: %w", err)
	}
	return nil
}

// FindPlugboard returns the plugboard for seed and machine.
// Returns (plugboard, true, nil) if found, (zero, false, nil) if not.
func (s *Store) FindPlugboard(ctx context.Context, seed, machine string) (model.Plugboard, bool, error) {
	var p model.Plugboard
	var wiring string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed, main_alphabet, machine, target_combination_count, wiring
		FROM plugboards
		WHERE seed = ? AND machine = ?
		ORDER BY created_seq ASC
		LIMIT 1
	`, seed, machine).Scan(&p.ID, &p.Seed, &p.Main, &p.Machine, &p.TargetCombinationCount, &wiring)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Plugboard{}, false, nil
	}
	if err != nil {
		return model.Plugboard{}, false, fmt.Errorf("find plugboard: %w", err)
	}
	if p.Wiring, err = unmarshalWiring(wiring); err != nil {
		return model.Plugboard{}, false, fmt.Errorf("find plugboard: %w", err)
	}
	return p, true, nil
}

// UpdatePlugboardWiring persists a scrambled plugboard wiring.
func (s *Store) UpdatePlugboardWiring(ctx context.Context, id string, wiring []int) error {
	data, err := marshalWiring(wiring)
	if err != nil {
		return fmt.Errorf("update plugboard wiring: %w", err)
	}
	return s.execOne(ctx, "update plugboard wiring",
		`UPDATE plugboards SET wiring = ? WHERE id = ?`, data, id)
}

// RemovePlugboard deletes a plugboard by id.
func (s *Store) RemovePlugboard(ctx context.Context, id string) error {
	return s.execOne(ctx, "remove plugboard", `DELETE FROM plugboards WHERE id = ?`, id)
}
