package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rotorgraph/internal/model"
)

// InsertCombination inserts one combination. Letters are unique per machine.
func (s *Store) InsertCombination(ctx context.Context, c model.Combination) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO combinations (id, letter, number, machine, created_seq)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Letter, c.Number, c.Machine, s.clock.Next())
	if err != nil {
		return fmt.Errorf("insert combination %q: %w", c.Letter, err)
	}
	return nil
}

// FindCombination looks up a machine's combination by letter.
// Returns (combination, true, nil) if found, (zero, false, nil) if not.
func (s *Store) FindCombination(ctx context.Context, machine, letter string) (model.Combination, bool, error) {
	var c model.Combination
	err := s.db.QueryRowContext(ctx, `
		SELECT id, letter, number, machine
		FROM combinations
		WHERE machine = ? AND letter = ?
	`, machine, letter).Scan(&c.ID, &c.Letter, &c.Number, &c.Machine)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Combination{}, false, nil
	}
	if err != nil {
		return model.Combination{}, false, fmt.Errorf("find combination %q: %w", letter, err)
	}
	return c, true, nil
}

// FindCombinationByID retrieves a combination by id. Returns ErrNotFound if missing.
func (s *Store) FindCombinationByID(ctx context.Context, id string) (model.Combination, error) {
	var c model.Combination
	err := s.db.QueryRowContext(ctx, `
		SELECT id, letter, number, machine FROM combinations WHERE id = ?
	`, id).Scan(&c.ID, &c.Letter, &c.Number, &c.Machine)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Combination{}, fmt.Errorf("find combination %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Combination{}, fmt.Errorf("find combination %s: %w", id, err)
	}
	return c, nil
}

// FindCombinations returns a machine's combinations ordered by number.
// Returns an empty slice (not nil) if there are none.
func (s *Store) FindCombinations(ctx context.Context, machine string) ([]model.Combination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, letter, number, machine
		FROM combinations
		WHERE machine = ?
		ORDER BY number ASC
	`, machine)
	if err != nil {
		return nil, fmt.Errorf("query combinations: %w", err)
	}
	defer rows.Close()

	combos := []model.Combination{}
	for rows.Next() {
		var c model.Combination
		if err := rows.Scan(&c.ID, &c.Letter, &c.Number, &c.Machine); err != nil {
			return nil, fmt.Errorf("scan combination: %w", err)
		}
		combos = append(combos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate combinations: %w", err)
	}
	return combos, nil
}

// RemoveCombinations deletes every combination of a machine and returns
// how many were removed.
func (s *Store) RemoveCombinations(ctx context.Context, machine string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM combinations WHERE machine = ?`, machine)
	if err != nil {
		return 0, fmt.Errorf("remove combinations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove combinations: rows affected: %w", err)
	}
	return n, nil
}
