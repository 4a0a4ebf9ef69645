// Package quorum builds the machines of a quorum from its definition.
package quorum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/config"
	"github.com/roach88/rotorgraph/internal/engine"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/store"
)

// Built is a stored quorum with its initialised machines, ordered 1..M.
type Built struct {
	Quorum   model.Quorum
	Machines []model.Machine
}

// Build stores the quorum described by def and creates def.MachineCount
// machines, each with combinations, rotors, a reflector and a plugboard.
// Every machine is seeded with the quorum key and ciphers over the first
// BaseCount characters of Main.
func Build(ctx context.Context, e *engine.Engine, def config.Quorum) (Built, error) {
	if err := def.Validate(); err != nil {
		return Built{}, fmt.Errorf("build quorum: %w", err)
	}

	q, err := e.Store().InsertQuorum(ctx, model.Quorum{
		ID:          e.NewID(),
		Key:         def.Key,
		Main:        def.Main,
		Environment: def.Environment,
	})
	if err != nil {
		return Built{}, fmt.Errorf("build quorum: %w", err)
	}

	alphabet := def.Alphabet()
	built := Built{Quorum: q, Machines: make([]model.Machine, 0, def.MachineCount)}
	for order := 1; order <= def.MachineCount; order++ {
		if err := ctx.Err(); err != nil {
			return built, err
		}

		m, err := e.Store().InsertMachine(ctx, model.Machine{
			ID:                     e.NewID(),
			Seed:                   def.Key,
			Order:                  order,
			Quorum:                 q.ID,
			Alphabet:               alphabet,
			Main:                   def.Main,
			TargetRotorCount:       def.RotorCount,
			TargetCombinationCount: len(model.Letters(alphabet)),
			LayerBy:                def.LayerBy,
		})
		if err != nil {
			return built, fmt.Errorf("build machine %d: %w", order, err)
		}
		m, err = e.Init(ctx, m)
		if err != nil {
			return built, fmt.Errorf("build machine %d: %w", order, err)
		}
		built.Machines = append(built.Machines, m)
	}

	slog.Info("quorum built", "quorum", q.ID, "key", q.Key, "machines", len(built.Machines))
	return built, nil
}

// Machine returns the machine of quorumID at the given order.
func Machine(ctx context.Context, st *store.Store, quorumID string, order int) (model.Machine, error) {
	m, err := st.FindMachineByOrder(ctx, quorumID, order)
	if err != nil {
		return model.Machine{}, fmt.Errorf("select machine %d: %w", order, err)
	}
	return m, nil
}

// Load returns a stored quorum and its machines.
func Load(ctx context.Context, st *store.Store, quorumID string) (Built, error) {
	q, err := st.FindQuorum(ctx, quorumID)
	if err != nil {
		return Built{}, fmt.Errorf("load quorum: %w", err)
	}
	machines, err := st.FindMachines(ctx, quorumID)
	if err != nil {
		return Built{}, fmt.Errorf("load quorum: %w", err)
	}
	if len(machines) == 0 {
		return Built{}, fmt.Errorf("load quorum %s: %w", quorumID, store.ErrNotFound)
	}
	return Built{Quorum: q, Machines: machines}, nil
}

// IsMissing reports whether err means the quorum or machine does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
