package app

import (
	"math/rand"
	"time"

	"monopoly/internal/domain"
)

// Dice is the source of die rolls for movement and turn-order draws.
// Injecting it keeps every game action deterministic under test.
type Dice interface {
	// Roll returns a uniform value in [1, DiceSides].
	Roll() int
}

type randDice struct {
	rng *rand.Rand
}

// NewDice wraps the provided rng as a Dice source, or a time-seeded
// default when rng is nil.
func NewDice(rng *rand.Rand) Dice {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randDice{rng: rng}
}

func (d *randDice) Roll() int {
	return d.rng.Intn(domain.DiceSides) + 1
}
