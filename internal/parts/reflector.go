package parts

import (
	"fmt"

	"github.com/roach88/rotorgraph/internal/mechanics"
	"github.com/roach88/rotorgraph/internal/model"
)

// Reflect returns the port a reflector sends port j of n to.
func Reflect(j, n int) int {
	return n - 1 - j
}

// AssembleReflector turns the signal around between the innermost rotors.
// Left port j of in feeds reflector port j, which feeds left port
// Reflect(j) of out.
func AssembleReflector(m *mechanics.Mechanics, reflector model.Reflector, in, out RotorDescriptor) error {
	n := in.Size()
	if len(in.RotorLeftPorts) != n || len(out.RotorLeftPorts) != n {
		return fmt.Errorf("assemble reflector %s: rotor sizes %d and %d differ",
			reflector.ID, len(in.RotorLeftPorts), len(out.RotorLeftPorts))
	}

	for j := 0; j < n; j++ {
		k := Reflect(j, n)
		node := m.Add(mechanics.Node{Part: mechanics.NodeReflectorPort, Owner: reflector.ID, Index: j})

		edge := mechanics.Edge{
			Part:         mechanics.EdgeReflector,
			Crosswire:    in.RotorLeftPorts[j].Crosswire.ID,
			InPortOrder:  j,
			OutPortOrder: k,
		}
		if _, err := m.Connect(in.RotorLeftPorts[j].Node, node, edge); err != nil {
			return fmt.Errorf("assemble reflector %s: %w", reflector.ID, err)
		}

		edge.Crosswire = out.RotorLeftPorts[k].Crosswire.ID
		edge.Direction = true
		if _, err := m.Connect(node, out.RotorLeftPorts[k].Node, edge); err != nil {
			return fmt.Errorf("assemble reflector %s: %w", reflector.ID, err)
		}
	}
	return nil
}
