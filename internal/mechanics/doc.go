// Package mechanics implements the assembled signal-path graph of a machine.
//
// A Mechanics value is an arena: nodes and edges live in slices and refer to
// each other by integer handle (NodeID, EdgeID). There are no pointers between
// nodes, so a Mechanics can be read concurrently once assembly finishes.
//
// Node and edge roles are closed enums (NodePart, EdgePart). Edge payloads
// carry the data a role needs (crosswire port orders, combinations), and
// every field that does not apply to a role is left at its zero value.
//
// Fixed handles:
//
//	0  genesis   - root of the keyboard edges
//	1  infinity  - terminal node every lookup searches for (CompleteID)
//
// Cost policy: only EdgeCrosswire edges carry cost (their Length). Every other
// edge is an instantaneous wire and costs 0, so the shortest path is the route
// with the least total crosswire weight.
//
// Lifetime: a Cache holds at most one Mechanics per machine id. Any rescramble
// must Invalidate the cached value before further lookups.
package mechanics
