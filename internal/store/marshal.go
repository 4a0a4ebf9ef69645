package store

import (
	"encoding/json"
	"fmt"
)

// marshalIDs converts an id list to JSON TEXT for storage.
// A nil list is stored as "[]".
func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal ids: %w", err)
	}
	return string(data), nil
}

// unmarshalIDs parses JSON TEXT to an id list. Returns an empty (not nil) slice.
func unmarshalIDs(data string) ([]string, error) {
	ids := []string{}
	if data == "" || data == "[]" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal ids: %w", err)
	}
	return ids, nil
}

// marshalWiring converts a plugboard wiring to JSON TEXT.
func marshalWiring(wiring []int) (string, error) {
	if wiring == nil {
		wiring = []int{}
	}
	data, err := json.Marshal(wiring)
	if err != nil {
		return "", fmt.Errorf("marshal wiring: %w", err)
	}
	return string(data), nil
}

// unmarshalWiring parses JSON TEXT to a plugboard wiring.
func unmarshalWiring(data string) ([]int, error) {
	wiring := []int{}
	if data == "" || data == "[]" {
		return wiring, nil
	}
	if err := json.Unmarshal([]byte(data), &wiring); err != nil {
		return nil, fmt.Errorf("unmarshal wiring: %w", err)
	}
	return wiring, nil
}

// boolToInt maps a bool onto SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
