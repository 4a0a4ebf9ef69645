package harness

import "github.com/roach88/rotorgraph/internal/mechanics"

// Trace event kinds.
const (
	KindEncrypt = "encrypt"
	KindDecrypt = "decrypt"
)

// TraceEvent is one channel call.
type TraceEvent struct {
	Kind   string `json:"kind"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Trace holds an encrypt and a decrypt event per message.
	Trace []TraceEvent `json:"trace"`

	Errors []string `json:"errors,omitempty"`

	// Census describes the machine's graph after the run.
	Census mechanics.Census `json:"census"`

	// Keystrokes counts key presses by outcome before assertions ran.
	Keystrokes map[string]string `json:"keystrokes"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Errors:     []string{},
		Keystrokes: map[string]string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a channel call.
func (r *Result) AddTrace(kind, input, output string) {
	r.Trace = append(r.Trace, TraceEvent{Kind: kind, Input: input, Output: output})
}

// Encrypted returns the encrypt output recorded for message.
func (r *Result) Encrypted(message string) (string, bool) {
	for _, ev := range r.Trace {
		if ev.Kind == KindEncrypt && ev.Input == message {
			return ev.Output, true
		}
	}
	return "", false
}
