package sim

import (
	"math/rand"
	"sync"
)

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a seeded uniform [-1,1] source, safe for concurrent use
// across ensemble workers.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Uniform() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()*2 - 1
}
