package receipt

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"
)

const prefix = "HTL"

// Generator issues receipt ids of the form HTL<unix millis><0..999>.
type Generator struct {
	now   func() time.Time
	randN func(n int) int
}

func New() *Generator {
	return &Generator{
		now:   time.Now,
		randN: rand.IntN,
	}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	ms := g.now().UnixMilli()

	return prefix + strconv.FormatInt(ms, 10) + strconv.Itoa(g.randN(1000)), nil //nolint:gomnd
}
