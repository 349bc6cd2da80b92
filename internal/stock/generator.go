package stock

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Generator fabricates rows. It is safe for concurrent use so the page source
// goroutine and the refresh loop can share one instance.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewGenerator returns a generator seeded with seed. A zero seed picks a
// random one.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Rows returns count new rows whose ids run from start to start+count-1.
// Prices start at zero until the first refresh touches them.
func (g *Generator) Rows(start, count int) []Stock {
	if count <= 0 {
		return []Stock{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	rows := make([]Stock, count)
	for i := range rows {
		rows[i] = Stock{
			ID:     start + i,
			Symbol: strings.ToUpper(g.faker.LetterN(4)),
			Name:   g.faker.Company(),
		}
	}
	return rows
}

// Price draws a new price in [PriceMin, PriceMax).
func (g *Generator) Price() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.Float64Range(PriceMin, PriceMax)
}

// IntRange draws an int in [min, max).
func (g *Generator) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.IntRange(min, max-1)
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.Float64Range(0, 1) < p
}
