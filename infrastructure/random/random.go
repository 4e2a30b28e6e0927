package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a mutex-guarded math/rand generator satisfying domain.RandomSource.
type Source struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource creates a generator. A zero seed picks a time based one.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rnd: rand.New(rand.NewSource(seed))}
}

func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// Sequence replays fixed values in order and wraps around. Used to drive the
// engine deterministically from tests and simulations.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	value := s.values[s.next%len(s.values)]
	s.next++
	return value
}
