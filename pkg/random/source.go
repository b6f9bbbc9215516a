package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/mendelian/mendel/pkg/domain"
)

// Source is a stream of uniform random values. All sampling in the
// simulation core goes through this interface so callers can substitute
// a seeded source for reproducible runs.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
	// IntN returns a uniformly distributed integer in [0, n).
	// It fails when n <= 0.
	IntN(n int) (int, error)
}

// Splitter is implemented by sources that can derive independent,
// non-overlapping child streams for parallel trial batches.
type Splitter interface {
	Split(n int) []Source
}

// Seeded is a deterministic Source backed by a PCG generator.
// Two Seeded sources built from the same seed produce identical streams.
type Seeded struct {
	seed   uint64
	stream uint64
	rng    *rand.Rand
}

// NewSeeded creates a reproducible source from an explicit seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, 0)),
	}
}

// New creates a source seeded from the operating system's entropy pool.
// Use NewSeeded when reproducibility matters.
func New() *Seeded {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// Entropy read failures are effectively impossible on supported
		// platforms; fall back to the runtime's global generator.
		return NewSeeded(rand.Uint64())
	}
	return NewSeeded(binary.BigEndian.Uint64(buf[:]))
}

// Seed returns the seed this source was created from.
func (s *Seeded) Seed() uint64 { return s.seed }

// Float64 returns a uniformly distributed value in [0, 1).
func (s *Seeded) Float64() float64 { return s.rng.Float64() }

// IntN returns a uniformly distributed integer in [0, n).
func (s *Seeded) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: upper bound must be positive, got %d", domain.ErrConfiguration, n)
	}
	return s.rng.IntN(n), nil
}

// childStream derives a child stream id by mixing the parent's stream id
// with the child index (splitmix64 finalizer). Mixing keeps the ids of a
// child's own splits disjoint from its siblings', so nested splits do not
// replay each other's sequences.
func childStream(parent, i uint64) uint64 {
	z := parent + (i+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Split derives n independent child sources. Children share the parent's
// seed but run on distinct PCG streams, including across nested splits.
// The parent remains usable; its own stream is unaffected by the children.
func (s *Seeded) Split(n int) []Source {
	children := make([]Source, n)
	for i := range children {
		stream := childStream(s.stream, uint64(i))
		children[i] = &Seeded{
			seed:   s.seed,
			stream: stream,
			rng:    rand.New(rand.NewPCG(s.seed, stream)),
		}
	}
	return children
}

var _ Source = (*Seeded)(nil)
var _ Splitter = (*Seeded)(nil)
