package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/metrics"
	"github.com/roach88/rotorgraph/internal/model"
)

// Sentinel letters returned in place of a cipher letter.
const (
	// Unreachable means the terminal node could not be reached.
	Unreachable = "y"
	// Malformed means the path ended on an edge without a letter.
	Malformed = "z"
)

// Cipher transforms one letter.
//
// channel and keyPress are 1-based. The first key press of the first
// channel rescrambles and reassembles the machine; every other key press
// goes to the Ticker with entropy. A letter outside the machine's alphabet
// returns "" without touching the machine.
//
// If no graph is cached (for instance when the first key press was not in
// the alphabet), the machine is assembled from its stored state without
// scrambling.
func (e *Engine) Cipher(ctx context.Context, m model.Machine, channel, keyPress int, letter, entropy string) (string, error) {
	letter = model.Letter(letter)

	combo, ok, err := e.store.FindCombination(ctx, m.ID, letter)
	if err != nil {
		return "", fmt.Errorf("cipher: %w", err)
	}
	if !ok {
		slog.Warn("combination not found", "machine", m.ID, "letter", letter)
		e.metrics.Keystroke(metrics.OutcomeMissing)
		return "", nil
	}
	slog.Debug("combination", "machine", m.ID, "letter", letter, "number", combo.Number)

	if channel == 1 && keyPress == 1 {
		if err := e.Scramble(ctx, m); err != nil {
			return "", fmt.Errorf("cipher: %w", err)
		}
		if _, err := e.Assemble(ctx, m); err != nil {
			return "", fmt.Errorf("cipher: %w", err)
		}
	} else if err := e.ticker.Tick(ctx, m, channel, keyPress, entropy); err != nil {
		return "", fmt.Errorf("cipher: tick: %w", err)
	}

	return e.Lookup(ctx, m, letter)
}

// Encrypt enciphers one letter. The machine is reciprocal, so this is the
// same operation as Decrypt.
func (e *Engine) Encrypt(ctx context.Context, m model.Machine, channel, keyPress int, letter, entropy string) (string, error) {
	return e.Cipher(ctx, m, channel, keyPress, letter, entropy)
}

// Decrypt deciphers one letter.
func (e *Engine) Decrypt(ctx context.Context, m model.Machine, channel, keyPress int, letter, entropy string) (string, error) {
	return e.Cipher(ctx, m, channel, keyPress, letter, entropy)
}

// Lookup resolves letter on the machine's current graph without
// scrambling. The graph is assembled first if none is cached.
func (e *Engine) Lookup(ctx context.Context, m model.Machine, letter string) (string, error) {
	mech, err := e.Mechanics(ctx, m)
	if err != nil {
		return "", err
	}

	path, ok, err := mech.Route(letter)
	if errors.Is(err, mechanics.ErrNoPath) || (err == nil && !ok) {
		slog.Warn("no route to terminal", "machine", m.ID, "letter", letter, "entry", ok)
		e.metrics.Keystroke(metrics.OutcomeUnreachable)
		return Unreachable, nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", letter, err)
	}

	last, ok := path.Last()
	if !ok || last.Combination == nil {
		slog.Warn("route ended without a letter", "machine", m.ID, "letter", letter, "edge", last.Part)
		e.metrics.Keystroke(metrics.OutcomeMalformed)
		return Malformed, nil
	}

	e.metrics.Keystroke(metrics.OutcomeOK)
	e.metrics.Path(path.Cost)
	slog.Debug("keystroke", "machine", m.ID, "letter", letter, "cipher", last.Combination.Letter,
		"cost", path.Cost, "edges", len(path.Edges))
	return last.Combination.Letter, nil
}

// Mechanics returns the machine's cached graph, assembling it if needed.
func (e *Engine) Mechanics(ctx context.Context, m model.Machine) (*mechanics.Mechanics, error) {
	mech, err := e.cache.Get(m.ID)
	if errors.Is(err, mechanics.ErrNoMechanics) {
		slog.Debug("assembling without scramble", "machine", m.ID)
		return e.Assemble(ctx, m)
	}
	return mech, err
}
