package engine

import (
	"errors"
	"fmt"
)

// MachineError reports a machine that cannot be scrambled or assembled.
//
// Storage failures are not MachineErrors; they are returned wrapped as-is.
type MachineError struct {
	// Code identifies the error category.
	Code MachineErrorCode

	// Machine is the id of the affected machine.
	Machine string

	// Message is a human-readable description.
	Message string
}

// MachineErrorCode categorizes machine errors.
type MachineErrorCode string

const (
	// ErrCodeNoRotors indicates a machine without rotors.
	ErrCodeNoRotors MachineErrorCode = "NO_ROTORS"

	// ErrCodeNoPlugboard indicates a machine without a plugboard to scramble.
	ErrCodeNoPlugboard MachineErrorCode = "NO_PLUGBOARD"

	// ErrCodeNoQuorum indicates the machine's quorum is missing.
	ErrCodeNoQuorum MachineErrorCode = "NO_QUORUM"

	// ErrCodeNoCombinations indicates an empty alphabet.
	ErrCodeNoCombinations MachineErrorCode = "NO_COMBINATIONS"
)

// Error implements the error interface.
func (e *MachineError) Error() string {
	if e.Machine != "" {
		return fmt.Sprintf("%s: %s (machine=%s)", e.Code, e.Message, e.Machine)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsMachineError reports whether err is a MachineError with the given code.
// Uses errors.As to handle wrapped errors.
func IsMachineError(err error, code MachineErrorCode) bool {
	var me *MachineError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}

func newMachineError(code MachineErrorCode, machine, format string, args ...any) *MachineError {
	return &MachineError{Code: code, Machine: machine, Message: fmt.Sprintf(format, args...)}
}
