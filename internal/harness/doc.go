// Package harness runs cipher scenarios against freshly built machines.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: hi_there
//	description: "Greeting survives a round trip"
//	quorum:
//	  key: isTrav
//	  rotorCount: 2
//	  environment: { galaxy: milky-way, star: sol, core: earth }
//	machine: 1
//	messages:
//	  - hi there
//	assertions:
//	  - type: roundtrip
//	  - type: deterministic
//	  - type: no_sentinels
//	  - type: expect
//	    message: hi there
//	    scrambled: "..."
//
// The quorum block is a config.Quorum laid over config.Default.
//
// # Assertion Types
//
//   - roundtrip: decrypting every encrypted message yields the message
//   - deterministic: encrypting a message again yields the same text
//   - no_sentinels: no key press ended unreachable or malformed
//   - expect: a message encrypts to the given text
//
// # Deterministic Runs
//
// Each run uses a fresh in-memory store and sequential record ids, so two
// runs of the same scenario produce identical machines, graphs and
// ciphertext. RunWithGolden snapshots the graph census and keystroke
// outcomes under testdata/golden.
package harness
