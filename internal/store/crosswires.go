package store

import (
	"context"
	"fmt"

	"github.com/roach88/rotorgraph/internal/model"
)

// InsertCrosswire inserts a crosswire. A zero weight is stored as the default.
func (s *Store) InsertCrosswire(ctx context.Context, c model.Crosswire) error {
	if c.Weight == 0 {
		c.Weight = model.DefaultWeight
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crosswires (id, sort_order, input_combination, output_combination, weight, rotor, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Order, c.InputCombination, c.OutputCombination, c.Weight, c.Rotor, s.clock.Next())
	if err != nil {
		return fmt.Errorf("insert crosswire: %w", err)
	}
	return nil
}

// FindCrosswires returns a rotor's crosswires ordered by their scrambled order.
// Ties fall back to creation order.
func (s *Store) FindCrosswires(ctx context.Context, rotor string) ([]model.Crosswire, error) {
	return s.queryCrosswires(ctx, `
		SELECT id, sort_order, input_combination, output_combination, weight, rotor
		FROM crosswires
		WHERE rotor = ?
		ORDER BY sort_order ASC, created_seq ASC
	`, rotor)
}

// FindCrosswiresByInput returns a rotor's crosswires ordered by the ordinal
// of their input combination.
func (s *Store) FindCrosswiresByInput(ctx context.Context, rotor string) ([]model.Crosswire, error) {
	return s.queryCrosswires(ctx, `
		SELECT x.id, x.sort_order, x.input_combination, x.output_combination, x.weight, x.rotor
		FROM crosswires x
		JOIN combinations c ON c.id = x.input_combination
		WHERE x.rotor = ?
		ORDER BY c.number ASC, x.created_seq ASC
	`, rotor)
}

func (s *Store) queryCrosswires(ctx context.Context, query string, args ...any) ([]model.Crosswire, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query crosswires: %w", err)
	}
	defer rows.Close()

	wires := []model.Crosswire{}
	for rows.Next() {
		var c model.Crosswire
		if err := rows.Scan(&c.ID, &c.Order, &c.InputCombination, &c.OutputCombination, &c.Weight, &c.Rotor); err != nil {
			return nil, fmt.Errorf("scan crosswire: %w", err)
		}
		wires = append(wires, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crosswires: %w", err)
	}
	return wires, nil
}

// UpdateCrosswire rewrites a crosswire's order and output combination.
func (s *Store) UpdateCrosswire(ctx context.Context, id string, order float64, output string) error {
	return s.execOne(ctx, "update crosswire", `
		UPDATE crosswires SET sort_order = ?, output_combination = ? WHERE id = ?
	`, order, output, id)
}

// UpdateCrosswireWeight sets the traversal cost of a crosswire.
func (s *Store) UpdateCrosswireWeight(ctx context.Context, id string, weight float64) error {
	return s.execOne(ctx, "update crosswire weight",
		`UPDATE crosswires SET weight = ? WHERE id = ?`, weight, id)
}

// RemoveCrosswires deletes every crosswire of a rotor and returns how many
// were removed.
func (s *Store) RemoveCrosswires(ctx context.Context, rotor string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM crosswires WHERE rotor = ?`, rotor)
	if err != nil {
		return 0, fmt.Errorf("remove crosswires: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove crosswires: rows affected: %w", err)
	}
	return n, nil
}
