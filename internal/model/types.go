package model

// DefaultWeight is the cost of a crosswire that was never reweighted.
const DefaultWeight = 1.0

// Environment seeds every machine of a quorum.
type Environment struct {
	Galaxy string `json:"galaxy" yaml:"galaxy"`
	Star   string `json:"star" yaml:"star"`
	Core   string `json:"core" yaml:"core"`
}

// Quorum groups machines built from the same key.
type Quorum struct {
	ID          string      `json:"id"`
	Key         string      `json:"key"`
	Main        string      `json:"main"`
	Environment Environment `json:"environment"`
	CreatedSeq  int64       `json:"created_seq"`
}

// Machine is one rotor cipher machine. Component ids are persisted on the
// record; the components themselves live in their own tables.
type Machine struct {
	ID                     string   `json:"id"`
	Seed                   string   `json:"seed"`
	Order                  int      `json:"order"` // position within the quorum
	Quorum                 string   `json:"quorum"`
	Alphabet               string   `json:"alphabet"`
	Main                   string   `json:"main"`
	TargetRotorCount       int      `json:"target_rotor_count"`
	TargetCombinationCount int      `json:"target_combination_count"`
	LayerBy                string   `json:"layer_by"` // word separator
	Combinations           []string `json:"combinations"`
	Rotors                 []string `json:"rotors"`
	Reflector              string   `json:"reflector,omitempty"`
	Plugboard              string   `json:"plugboard,omitempty"`
	CreatedSeq             int64    `json:"created_seq"`
}

// Combination is a machine-scoped (letter, ordinal) pair. Immutable once created.
type Combination struct {
	ID      string `json:"id"`
	Letter  string `json:"letter"`
	Number  int    `json:"number"` // 1..N
	Machine string `json:"machine"`
}

// Crosswire is one wire inside a rotor. Order is rewritten on every scramble.
type Crosswire struct {
	ID                string  `json:"id"`
	Order             float64 `json:"order"`
	InputCombination  string  `json:"input_combination"`
	OutputCombination string  `json:"output_combination"`
	Weight            float64 `json:"weight"`
	Rotor             string  `json:"rotor"`
}

// Rotor owns its crosswires. Order, Shift and Direction are scramble state.
type Rotor struct {
	ID                   string  `json:"id"`
	Seed                 string  `json:"seed"`
	Machine              string  `json:"machine"`
	TargetCrosswireCount int     `json:"target_crosswire_count"`
	Order                float64 `json:"order"`
	Shift                int     `json:"shift"`
	Direction            bool    `json:"direction"`
	CreatedSeq           int64   `json:"created_seq"`
}

// RotorState is the scramble state drawn for a rotor.
type RotorState struct {
	Order     float64 `json:"order"`
	Shift     int     `json:"shift"`
	Direction bool    `json:"direction"`
}

// State returns the rotor's current scramble state.
func (r Rotor) State() RotorState {
	return RotorState{Order: r.Order, Shift: r.Shift, Direction: r.Direction}
}

// Reflector turns the signal back through the rotor stack.
type Reflector struct {
	ID                     string `json:"id"`
	Seed                   string `json:"seed"`
	Machine                string `json:"machine"`
	TargetCombinationCount int    `json:"target_combination_count"`
}

// Plugboard wires external letters to the outermost rotor contacts.
//
// Wiring[i] is the 1-based port ordinal that external letter i+1 is plugged
// into. The wiring is an involution; an empty wiring is the identity.
type Plugboard struct {
	ID                     string `json:"id"`
	Seed                   string `json:"seed"`
	Main                   string `json:"main"`
	Machine                string `json:"machine"`
	TargetCombinationCount int    `json:"target_combination_count"`
	Wiring                 []int  `json:"wiring"`
}

// Port returns the port ordinal the given letter ordinal is plugged into.
func (p Plugboard) Port(number int) int {
	if number < 1 || number > len(p.Wiring) {
		return number
	}
	return p.Wiring[number-1]
}
