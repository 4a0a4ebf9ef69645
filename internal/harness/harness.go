package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/engine"
	"github.com/roach88/rotorgraph/internal/ids"
	"github.com/roach88/rotorgraph/internal/metrics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/quorum"
	"github.com/roach88/rotorgraph/internal/store"
)

// Harness holds one scenario run.
type Harness struct {
	store   *store.Store
	engine  *engine.Engine
	metrics *metrics.Metrics
	machine model.Machine
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with sequential ids.
// Execution flow:
//  1. Build the quorum and select the machine under test
//  2. Encrypt each message, then decrypt the ciphertext
//  3. Take the graph census and keystroke counts
//  4. Evaluate assertions
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	m := metrics.New()
	eng := engine.New(st,
		engine.WithIDGenerator(ids.NewSequenceGenerator("id")),
		engine.WithMetrics(m),
	)

	built, err := quorum.Build(ctx, eng, scenario.Quorum)
	if err != nil {
		return nil, fmt.Errorf("failed to build quorum: %w", err)
	}
	machine, err := quorum.Machine(ctx, st, built.Quorum.ID, scenario.Machine)
	if err != nil {
		return nil, err
	}

	h := &Harness{store: st, engine: eng, metrics: m, machine: machine}
	result := NewResult()
	if err := h.executeMessages(ctx, scenario.Messages, result); err != nil {
		return nil, fmt.Errorf("failed to execute messages: %w", err)
	}

	mech, err := eng.Mechanics(ctx, machine)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	result.Census = mech.Census()

	result.Keystrokes, err = m.Summary()
	if err != nil {
		return nil, err
	}

	actx := &AssertionContext{Ctx: ctx, Engine: eng, Machine: machine}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	slog.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

// executeMessages encrypts and decrypts each message on the machine.
func (h *Harness) executeMessages(ctx context.Context, messages []string, result *Result) error {
	for i, msg := range messages {
		enc, err := h.engine.Channel(ctx, h.machine, msg)
		if err != nil {
			return fmt.Errorf("messages[%d]: encrypt: %w", i, err)
		}
		result.AddTrace(KindEncrypt, msg, enc.Scrambled)

		dec, err := h.engine.DecryptChannel(ctx, h.machine, enc.Scrambled)
		if err != nil {
			return fmt.Errorf("messages[%d]: decrypt: %w", i, err)
		}
		result.AddTrace(KindDecrypt, enc.Scrambled, dec.Scrambled)
	}
	return nil
}
