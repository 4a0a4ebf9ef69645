package parts

import (
	"fmt"

	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/model"
	"github.com/roach88/rotorgraph/internal/rng"
)

// ScramblePlugboard draws a fresh wiring for n letters. Letters are paired
// off along a permutation drawn from gen; with odd n the last one stays
// plugged into its own port.
func ScramblePlugboard(gen *rng.Generator, n int) []int {
	wiring := make([]int, n)
	for i := range wiring {
		wiring[i] = i + 1
	}
	perm := gen.Perm(n)
	for i := 0; i+1 < n; i += 2 {
		a, b := perm[i], perm[i+1]
		wiring[a], wiring[b] = b+1, a+1
	}
	return wiring
}

// ValidWiring reports whether wiring is empty or a pairing of 1..n.
func ValidWiring(wiring []int, n int) bool {
	if len(wiring) == 0 {
		return true
	}
	if len(wiring) != n {
		return false
	}
	for i, port := range wiring {
		if port < 1 || port > n || wiring[port-1] != i+1 {
			return false
		}
	}
	return true
}

// AssemblePlugboard wires the keyboard and lightboard to the outermost
// rotors. combos must be the machine's combinations in ordinal order.
//
// Entry ports (level 1) hang off genesis and feed the enter rotor's right
// ports through the plugboard wiring. The exit rotor's right ports come back
// through the same wiring to exit ports (level 2), which light up infinity.
func AssemblePlugboard(m *mechanics.Mechanics, p model.Plugboard, combos []model.Combination, enter, exit RotorDescriptor) error {
	n := len(combos)
	if enter.Size() != n || exit.Size() != n {
		return fmt.Errorf("assemble plugboard %s: rotors have %d and %d ports for %d combinations",
			p.ID, enter.Size(), exit.Size(), n)
	}
	if !ValidWiring(p.Wiring, n) {
		return fmt.Errorf("assemble plugboard %s: invalid wiring %v", p.ID, p.Wiring)
	}

	entries := make([]mechanics.NodeID, n)
	for i, c := range combos {
		combo := mechanics.CombinationOf(c)
		entries[i] = m.Add(mechanics.Node{
			Part: mechanics.NodePlugboardPort, Owner: p.ID, Index: i, Level: mechanics.LevelEntry, Combination: combo,
		})
		if _, err := m.Connect(mechanics.GenesisID, entries[i], mechanics.Edge{
			Part: mechanics.EdgeKeyboard, Combination: combo,
		}); err != nil {
			return fmt.Errorf("assemble plugboard %s: %w", p.ID, err)
		}
	}

	for i, c := range combos {
		port := p.Port(c.Number) - 1
		if _, err := m.Connect(entries[i], enter.RotorRightPorts[port].Node, mechanics.Edge{
			Part:            mechanics.EdgePlugboard,
			Crosswire:       enter.RotorRightPorts[port].Crosswire.ID,
			OutPortOrder:    port,
			FromCombination: mechanics.CombinationOf(c),
			ToCombination:   mechanics.CombinationOf(combos[port]),
		}); err != nil {
			return fmt.Errorf("assemble plugboard %s: %w", p.ID, err)
		}
	}

	exits := make([]mechanics.NodeID, n)
	for i, c := range combos {
		combo := mechanics.CombinationOf(c)
		exits[i] = m.Add(mechanics.Node{
			Part: mechanics.NodePlugboardPort, Owner: p.ID, Index: i, Level: mechanics.LevelExit, Combination: combo,
		})
		if _, err := m.Connect(exits[i], m.CompleteID, mechanics.Edge{
			Part: mechanics.EdgeLightboard, Direction: true, Combination: combo,
		}); err != nil {
			return fmt.Errorf("assemble plugboard %s: %w", p.ID, err)
		}
	}

	for k := 0; k < n; k++ {
		letter := p.Port(k+1) - 1
		if _, err := m.Connect(exit.RotorRightPorts[k].Node, exits[letter], mechanics.Edge{
			Part:            mechanics.EdgeGateway,
			Direction:       true,
			Crosswire:       exit.RotorRightPorts[k].Crosswire.ID,
			InPortOrder:     k,
			FromCombination: mechanics.CombinationOf(combos[k]),
			ToCombination:   mechanics.CombinationOf(combos[letter]),
		}); err != nil {
			return fmt.Errorf("assemble plugboard %s: %w", p.ID, err)
		}
	}
	return nil
}
