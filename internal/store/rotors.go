package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rotorgraph/internal/model"
)

// RotorSort selects the ordering used by FindRotors.
type RotorSort int

const (
	// SortCreated orders rotors by creation sequence.
	SortCreated RotorSort = iota
	// SortOrderDesc orders rotors by scrambled order, highest first (RTL).
	SortOrderDesc
	// SortOrderAsc orders rotors by scrambled order, lowest first (LTR).
	SortOrderAsc
)

func (r RotorSort) clause() string {
	switch r {
	case SortOrderDesc:
		return "sort_order DESC, created_seq DESC"
	case SortOrderAsc:
		return "sort_order ASC, created_seq ASC"
	default:
		return "created_seq ASC"
	}
}

// InsertRotor inserts a rotor and stamps its CreatedSeq.
func (s *Store) InsertRotor(ctx context.Context, r model.Rotor) (model.Rotor, error) {
	r.CreatedSeq = s.clock.Next()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rotors (id, seed, machine, target_crosswire_count, sort_order, shift, direction, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Seed, r.Machine, r.TargetCrosswireCount, r.Order, r.Shift, boolToInt(r.Direction), r.CreatedSeq)
	if err != nil {
		return model.Rotor{}, fmt.Errorf("insert rotor: %w", err)
	}
	return r, nil
}

const rotorColumns = `id, seed, machine, target_crosswire_count, sort_order, shift, direction, created_seq`

// FindRotor retrieves a rotor by id. Returns ErrNotFound if missing.
func (s *Store) FindRotor(ctx context.Context, id string) (model.Rotor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rotorColumns+` FROM rotors WHERE id = ?`, id)
	r, err := scanRotor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Rotor{}, fmt.Errorf("find rotor %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Rotor{}, fmt.Errorf("find rotor %s: %w", id, err)
	}
	return r, nil
}

// FindRotors returns the rotors matching seed and machine in the requested order.
// Returns an empty slice (not nil) if none match.
func (s *Store) FindRotors(ctx context.Context, seed, machine string, sort RotorSort) ([]model.Rotor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+rotorColumns+`
		FROM rotors
		WHERE seed = ? AND machine = ?
		ORDER BY `+sort.clause(), seed, machine)
	if err != nil {
		return nil, fmt.Errorf("query rotors: %w", err)
	}
	defer rows.Close()

	rotors := []model.Rotor{}
	for rows.Next() {
		r, err := scanRotor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rotor: %w", err)
		}
		rotors = append(rotors, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rotors: %w", err)
	}
	return rotors, nil
}

// UpdateRotorState persists a rotor's scramble state.
func (s *Store) UpdateRotorState(ctx context.Context, id string, state model.RotorState) error {
	return s.execOne(ctx, "update rotor state", `
		UPDATE rotors SET sort_order = ?, shift = ?, direction = ? WHERE id = ?
	`, state.Order, state.Shift, boolToInt(state.Direction), id)
}

// RemoveRotor deletes a rotor. Its crosswires must be removed first.
func (s *Store) RemoveRotor(ctx context.Context, id string) error {
	return s.execOne(ctx, "remove rotor", `DELETE FROM rotors WHERE id = ?`, id)
}

func scanRotor(row scanner) (model.Rotor, error) {
	var r model.Rotor
	var direction int
	if err := row.Scan(&r.ID, &r.Seed, &r.Machine, &r.TargetCrosswireCount, &r.Order, &r.Shift, &direction, &r.CreatedSeq); err != nil {
		return model.Rotor{}, err
	}
	r.Direction = direction != 0
	return r, nil
}
