// Package rng provides the seeded pseudorandom stream used for scrambling.
//
// Goals:
//   - Determinism: the same seed string yields the same draw sequence on every
//     platform and every run.
//   - Encapsulation: a Generator is created once per scramble and threaded
//     explicitly through every draw; nothing reads ambient randomness.
//
// Concurrency:
//   - A Generator is NOT goroutine-safe. Draw order is part of the contract, so
//     sharing one across goroutines would break reproducibility anyway.
package rng

import (
	"crypto/sha256"
	"math"
	"math/rand/v2"
)

// Generator is a reproducible stream of floats in [0,1) keyed by a seed string.
type Generator struct {
	seed  string
	src   *rand.Rand
	draws int
}

// New returns a Generator for seed. The seed string is hashed with SHA-256 to
// form the 32-byte ChaCha8 key, so any string (including "") is a valid seed.
func New(seed string) *Generator {
	key := sha256.Sum256([]byte(seed))
	return &Generator{
		seed: seed,
		src:  rand.New(rand.NewChaCha8(key)),
	}
}

// Seed returns the seed string the generator was created with.
func (g *Generator) Seed() string {
	return g.seed
}

// Draws returns how many values have been drawn so far.
func (g *Generator) Draws() int {
	return g.draws
}

// Float64 draws the next value in [0,1).
func (g *Generator) Float64() float64 {
	g.draws++
	return g.src.Float64()
}

// IntFromInterval maps a draw r in [0,1) onto the closed interval [min,max]:
// floor(r*(max-min+1)+min).
func IntFromInterval(r float64, min, max int) int {
	return int(math.Floor(r*float64(max-min+1) + float64(min)))
}

// Intn draws an int in [0,n). n must be positive.
func (g *Generator) Intn(n int) int {
	return IntFromInterval(g.Float64(), 0, n-1)
}

// Bool draws a boolean from a 0/1 interval draw.
func (g *Generator) Bool() bool {
	return IntFromInterval(g.Float64(), 0, 1) == 1
}

// Perm returns a Fisher-Yates permutation of [0,n) drawn from the stream.
// It consumes exactly n-1 draws for n > 1.
func (g *Generator) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
