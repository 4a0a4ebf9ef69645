// Package config loads quorum definitions.
//
// A definition is read from YAML, laid over the defaults, then checked
// against an embedded CUE schema. Rules the schema cannot express (the
// alphabet must hold baseCount distinct characters) are checked in Go.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rotorgraph/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalid is returned for definitions that fail validation.
var ErrInvalid = errors.New("config: invalid quorum")

// Defaults.
const (
	DefaultKey          = "rotorgraph"
	DefaultMain         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890!@#$%^&*()"
	DefaultMachineCount = 1
	DefaultRotorCount   = 4
	DefaultBaseCount    = 26
	DefaultLayerBy      = " "
)

// Quorum describes a quorum and the machines built for it.
type Quorum struct {
	Key          string            `yaml:"key" json:"key"`
	Main         string            `yaml:"main" json:"main"`
	MachineCount int               `yaml:"machineCount" json:"machineCount"`
	RotorCount   int               `yaml:"rotorCount" json:"rotorCount"`
	BaseCount    int               `yaml:"baseCount" json:"baseCount"`
	LayerBy      string            `yaml:"layerBy" json:"layerBy"`
	Environment  model.Environment `yaml:"environment" json:"environment"`
}

// Default returns the built-in definition.
func Default() Quorum {
	return Quorum{
		Key:          DefaultKey,
		Main:         DefaultMain,
		MachineCount: DefaultMachineCount,
		RotorCount:   DefaultRotorCount,
		BaseCount:    DefaultBaseCount,
		LayerBy:      DefaultLayerBy,
	}
}

// Alphabet returns the machine alphabet: the first BaseCount characters
// of Main.
func (q Quorum) Alphabet() string {
	return model.Prefix(q.Main, q.BaseCount)
}

// Load reads a definition from path. An empty path yields the defaults.
func Load(path string) (Quorum, error) {
	if path == "" {
		q := Default()
		return q, q.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return Quorum{}, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML definition over the defaults and validates it.
// Unknown fields are rejected.
func Parse(r io.Reader) (Quorum, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Quorum{}, fmt.Errorf("failed to read config: %w", err)
	}

	q := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&q); err != nil && !errors.Is(err, io.EOF) {
		return Quorum{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := q.Validate(); err != nil {
		return Quorum{}, err
	}
	return q, nil
}

// Validate checks q against the schema.
func (q Quorum) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Quorum"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(q))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !model.Distinct(q.Main) {
		return fmt.Errorf("%w: main alphabet repeats a character", ErrInvalid)
	}
	if n := len(model.Letters(q.Main)); q.BaseCount > n {
		return fmt.Errorf("%w: baseCount %d exceeds the %d characters of main", ErrInvalid, q.BaseCount, n)
	}
	// Words are split on layerBy, so it can never be a cipher letter.
	if strings.Contains(q.Alphabet(), q.LayerBy) {
		return fmt.Errorf("%w: layerBy %q is part of the alphabet", ErrInvalid, q.LayerBy)
	}
	return nil
}
