package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/rotorgraph/internal/engine"
	"github.com/roach88/rotorgraph/internal/metrics"
	"github.com/roach88/rotorgraph/internal/model"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for i, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %q -> %q\n", i+1, event.Kind, event.Input, event.Output)
		}
	}
	return buf.String()
}

// AssertionContext gives assertions access to the machine under test.
type AssertionContext struct {
	Ctx     context.Context
	Engine  *engine.Engine
	Machine model.Machine
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertRoundTrip:
			err = assertRoundTrip(result.Trace)
		case AssertDeterministic:
			err = assertDeterministic(result.Trace, actx)
		case AssertNoSentinels:
			err = assertNoSentinels(result.Keystrokes)
		case AssertExpect:
			err = assertExpect(result, a, actx)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// assertRoundTrip checks that each decrypt event restores the input of
// the encrypt event before it.
func assertRoundTrip(trace []TraceEvent) error {
	for i := 0; i+1 < len(trace); i += 2 {
		enc, dec := trace[i], trace[i+1]
		if enc.Kind != KindEncrypt || dec.Kind != KindDecrypt {
			return fmt.Errorf("trace event %d is not an encrypt/decrypt pair", i)
		}
		if dec.Output != enc.Input {
			return &AssertionError{
				Type:     AssertRoundTrip,
				Expected: fmt.Sprintf("%q", enc.Input),
				Actual:   fmt.Sprintf("%q", dec.Output),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertDeterministic encrypts each message again and compares.
func assertDeterministic(trace []TraceEvent, actx *AssertionContext) error {
	for _, ev := range trace {
		if ev.Kind != KindEncrypt {
			continue
		}
		again, err := actx.Engine.Channel(actx.Ctx, actx.Machine, ev.Input)
		if err != nil {
			return err
		}
		if again.Scrambled != ev.Output {
			return &AssertionError{
				Type:     AssertDeterministic,
				Expected: fmt.Sprintf("%q", ev.Output),
				Actual:   fmt.Sprintf("%q", again.Scrambled),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertNoSentinels checks that no key press hit an unreachable or
// malformed terminal.
func assertNoSentinels(keystrokes map[string]string) error {
	for _, outcome := range []string{metrics.OutcomeUnreachable, metrics.OutcomeMalformed} {
		if n, ok := keystrokes[outcome]; ok && n != "0" {
			return &AssertionError{
				Type:     AssertNoSentinels,
				Expected: fmt.Sprintf("no %s key presses", outcome),
				Actual:   n,
			}
		}
	}
	return nil
}

// assertExpect checks the ciphertext of one message. Messages that were
// not part of the run are encrypted on demand.
func assertExpect(result *Result, a Assertion, actx *AssertionContext) error {
	got, ok := result.Encrypted(a.Message)
	if !ok {
		enc, err := actx.Engine.Channel(actx.Ctx, actx.Machine, a.Message)
		if err != nil {
			return err
		}
		got = enc.Scrambled
	}
	if got != a.Scrambled {
		return &AssertionError{
			Type:     AssertExpect,
			Expected: fmt.Sprintf("%q encrypts to %q", a.Message, a.Scrambled),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}
