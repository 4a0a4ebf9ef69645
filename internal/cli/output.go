package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Scenario failure or cipher error
	ExitCommandError = 2 // Command error (bad config, missing quorum, unreadable database)
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the JSON envelope written with --format json.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
	Error  *Fault `json:"error,omitempty"`
}

// Fault describes a failed command in a Response.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Printer writes command results as text or JSON.
type Printer struct {
	Format string
	Writer io.Writer
}

// JSON reports whether output is JSON.
func (p *Printer) JSON() bool {
	return p.Format == "json"
}

// Success writes data. In text mode, text renders it; a nil text prints
// data with fmt.
func (p *Printer) Success(data any, text func(w io.Writer)) error {
	if p.JSON() {
		enc := json.NewEncoder(p.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	if text == nil {
		fmt.Fprintln(p.Writer, data)
		return nil
	}
	text(p.Writer)
	return nil
}

// Failure writes data with an error envelope in JSON mode, or the message
// in text mode.
func (p *Printer) Failure(code, message string, data any) error {
	if p.JSON() {
		enc := json.NewEncoder(p.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "error", Data: data, Error: &Fault{Code: code, Message: message}})
	}
	fmt.Fprintf(p.Writer, "Error [%s]: %s\n", code, message)
	return nil
}
