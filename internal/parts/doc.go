// Package parts implements the physical components of a machine: rotors with
// their crosswires, the reflector and the plugboard.
//
// Each component knows how to append its own nodes and edges to a shared
// mechanics.Mechanics. Rotors also own their scramble: given the state drawn
// by the machine, a rotor rewires its crosswires from a seed derived from
// that state.
//
// Port geometry, for a machine with N combinations:
//
//	right[r] --crosswire--> left[l]    outbound (not reversed)
//	left[l]  --crosswire--> right[r]   inbound (reversed)
//
//	r = (input-1 + shift) mod N
//	l = output-1, mirrored to N-1-l when the rotor's direction is set
//
// The reflector joins port j of the innermost outbound rotor to port N-1-j of
// the innermost inbound rotor, so the whole signal path is an involution.
package parts
