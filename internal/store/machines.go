package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rotorgraph/internal/model"
)

// InsertQuorum inserts a quorum and stamps its CreatedSeq.
func (s *Store) InsertQuorum(ctx context.Context, q model.Quorum) (model.Quorum, error) {
	q.CreatedSeq = s.clock.Next()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quorums (id, quorum_key, main_alphabet, galaxy, star, core, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Key, q.Main, q.Environment.Galaxy, q.Environment.Star, q.Environment.Core, q.CreatedSeq)
	if err != nil {
		return model.Quorum{}, fmt.Errorf("insert quorum: %w", err)
	}
	return q, nil
}

// FindQuorum retrieves a quorum by id. Returns ErrNotFound if missing.
func (s *Store) FindQuorum(ctx context.Context, id string) (model.Quorum, error) {
	var q model.Quorum
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quorum_key, main_alphabet, galaxy, star, core, created_seq
		FROM quorums
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Key, &q.Main, &q.Environment.Galaxy, &q.Environment.Star, &q.Environment.Core, &q.CreatedSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quorum{}, fmt.Errorf("find quorum %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Quorum{}, fmt.Errorf("find quorum %s: %w", id, err)
	}
	return q, nil
}

// FindQuorumByKey returns the most recently created quorum with the given
// key. Returns ErrNotFound if none exists.
func (s *Store) FindQuorumByKey(ctx context.Context, key string) (model.Quorum, error) {
	var q model.Quorum
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quorum_key, main_alphabet, galaxy, star, core, created_seq
		FROM quorums
		WHERE quorum_key = ?
		ORDER BY created_seq DESC
		LIMIT 1
	`, key).Scan(&q.ID, &q.Key, &q.Main, &q.Environment.Galaxy, &q.Environment.Star, &q.Environment.Core, &q.CreatedSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quorum{}, fmt.Errorf("find quorum %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return model.Quorum{}, fmt.Errorf("find quorum %q: %w", key, err)
	}
	return q, nil
}

// InsertMachine inserts a machine and stamps its CreatedSeq.
func (s *Store) InsertMachine(ctx context.Context, m model.Machine) (model.Machine, error) {
	combos, err := marshalIDs(m.Combinations)
	if err != nil {
		return model.Machine{}, fmt.Errorf("insert machine: %w", err)
	}
	rotors, err := marshalIDs(m.Rotors)
	if err != nil {
		return model.Machine{}, fmt.Errorf("insert machine: %w", err)
	}

	m.CreatedSeq = s.clock.Next()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO machines
		(id, seed, sort_order, quorum, alphabet, main_alphabet, target_rotor_count, target_combination_count,
		 layer_by, combinations, rotors, reflector, plugboard, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.Seed, m.Order, m.Quorum, m.Alphabet, m.Main, m.TargetRotorCount, m.TargetCombinationCount,
		m.LayerBy, combos, rotors, m.Reflector, m.Plugboard, m.CreatedSeq,
	)
	if err != nil {
		return model.Machine{}, fmt.Errorf("insert machine: %w", err)
	}
	if m.Combinations == nil {
		m.Combinations = []string{}
	}
	if m.Rotors == nil {
		m.Rotors = []string{}
	}
	return m, nil
}

const machineColumns = `id, seed, sort_order, quorum, alphabet, main_alphabet, target_rotor_count,
	target_combination_count, layer_by, combinations, rotors, reflector, plugboard, created_seq`

// FindMachine retrieves a machine by id. Returns ErrNotFound if missing.
func (s *Store) FindMachine(ctx context.Context, id string) (model.Machine, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+machineColumns+` FROM machines WHERE id = ?`, id)
	m, err := scanMachine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Machine{}, fmt.Errorf("find machine %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Machine{}, fmt.Errorf("find machine %s: %w", id, err)
	}
	return m, nil
}

// FindMachines returns the machines of a quorum ordered by their position.
// Returns an empty slice (not nil) if the quorum has no machines.
func (s *Store) FindMachines(ctx context.Context, quorumID string) ([]model.Machine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+machineColumns+`
		FROM machines
		WHERE quorum = ?
		ORDER BY sort_order ASC, id COLLATE BINARY ASC
	`, quorumID)
	if err != nil {
		return nil, fmt.Errorf("query machines: %w", err)
	}
	defer rows.Close()

	machines := []model.Machine{}
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		machines = append(machines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate machines: %w", err)
	}
	return machines, nil
}

// FindMachineByOrder returns the machine at the given position of a quorum.
func (s *Store) FindMachineByOrder(ctx context.Context, quorumID string, order int) (model.Machine, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+machineColumns+` FROM machines WHERE quorum = ? AND sort_order = ?
	`, quorumID, order)
	m, err := scanMachine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Machine{}, fmt.Errorf("find machine %d of quorum %s: %w", order, quorumID, ErrNotFound)
	}
	if err != nil {
		return model.Machine{}, fmt.Errorf("find machine %d of quorum %s: %w", order, quorumID, err)
	}
	return m, nil
}

// UpdateMachineCombinations replaces the machine's combination id list.
func (s *Store) UpdateMachineCombinations(ctx context.Context, id string, ids []string) error {
	data, err := marshalIDs(ids)
	if err != nil {
		return fmt.Errorf("update machine combinations: %w", err)
	}
	return s.execOne(ctx, "update machine combinations",
		`UPDATE machines SET combinations = ? WHERE id = ?`, data, id)
}

// UpdateMachineRotors replaces the machine's rotor id list.
func (s *Store) UpdateMachineRotors(ctx context.Context, id string, ids []string) error {
	data, err := marshalIDs(ids)
	if err != nil {
		return fmt.Errorf("update machine rotors: %w", err)
	}
	return s.execOne(ctx, "update machine rotors",
		`UPDATE machines SET rotors = ? WHERE id = ?`, data, id)
}

// UpdateMachineReflector sets the machine's reflector id.
func (s *Store) UpdateMachineReflector(ctx context.Context, id, reflectorID string) error {
	return s.execOne(ctx, "update machine reflector",
		`UPDATE machines SET reflector = ? WHERE id = ?`, reflectorID, id)
}

// UpdateMachinePlugboard sets the machine's plugboard id.
func (s *Store) UpdateMachinePlugboard(ctx context.Context, id, plugboardID string) error {
	return s.execOne(ctx, "update machine plugboard",
		`UPDATE machines SET plugboard = ? WHERE id = ?`, plugboardID, id)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMachine(row scanner) (model.Machine, error) {
	var m model.Machine
	var combos, rotors string
	if err := row.Scan(
		&m.ID, &m.Seed, &m.Order, &m.Quorum, &m.Alphabet, &m.Main, &m.TargetRotorCount,
		&m.TargetCombinationCount, &m.LayerBy, &combos, &rotors, &m.Reflector, &m.Plugboard, &m.CreatedSeq,
	); err != nil {
		return model.Machine{}, err
	}

	var err error
	if m.Combinations, err = unmarshalIDs(combos); err != nil {
		return model.Machine{}, err
	}
	if m.Rotors, err = unmarshalIDs(rotors); err != nil {
		return model.Machine{}, err
	}
	return m, nil
}
