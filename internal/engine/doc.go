// Package engine assembles machines into signal graphs and enciphers text
// through them.
//
// Flow of one message:
//
//  1. Channel splits the text on the machine's word separator.
//  2. Stream feeds each word letter by letter into Encrypt (or Decrypt).
//  3. Cipher looks up the letter's combination. On the first key press of
//     the first channel it rescrambles and reassembles the machine; on every
//     other key press it calls the Ticker hook.
//  4. Lookup finds the cheapest path from the letter's plugboard entry port
//     to the terminal node and returns the letter on the last edge.
//
// Scrambling is driven by one rng.Generator per call, seeded from the
// machine seed, the quorum environment and the machine order. Draw order is
// fixed (rotors by creation order, then the plugboard), so the same machine
// always lands in the same state.
//
// Sentinel letters:
//
//	"y"  no route from the entry port to the terminal node
//	"z"  the route ended on an edge that carries no letter
//
// A letter outside the machine's alphabet enciphers to "" and is logged.
//
// Concurrency: an Engine may be shared, but a machine must only be driven
// by one goroutine at a time. The mechanics cache is goroutine-safe.
package engine
