package store

import (
	"errors"
	"math/rand/v2"
	"strconv"
)

// DefaultIDAttempts bounds the search for an unused id. It is a safety valve
// for a practically unreachable condition, not a capacity guarantee.
const DefaultIDAttempts = 1_000_000_000

// idSpace scales the random source; ids are decimal numbers below it.
const idSpace = 1_000_000_000

var ErrIDSpaceExhausted = errors.New("no unused id found")

// IDGenerator produces item ids that do not collide with a given id set.
type IDGenerator struct {
	// MaxAttempts is the number of candidates tried before giving up.
	// Zero or negative means DefaultIDAttempts.
	MaxAttempts int

	// Float returns a value in [0, 1). Nil means math/rand/v2.
	Float func() float64
}

func NewIDGenerator(maxAttempts int) *IDGenerator {
	return &IDGenerator{MaxAttempts: maxAttempts}
}

// Generate returns a candidate that is not a key of existing.
func (g *IDGenerator) Generate(existing map[string]bool) (string, error) {
	limit := DefaultIDAttempts
	next := rand.Float64
	if g != nil {
		if g.MaxAttempts > 0 {
			limit = g.MaxAttempts
		}
		if g.Float != nil {
			next = g.Float
		}
	}
	for i := 0; i < limit; i++ {
		id := candidateID(next())
		if !existing[id] {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

func candidateID(f float64) string {
	return strconv.FormatFloat(f*idSpace, 'f', -1, 64)
}
