// Package rng provides the thread-local random number facade used by every
// concurrent phase of the generation loop: uniform draws, normal draws,
// index draws, and reproducible sampling without replacement.
//
// Each goroutine that needs randomness pulls its own *rand.Rand from Get,
// seeded once from a process-wide, mutex-guarded seed sequence. There is no
// locking on the hot path: the seed sequence is only touched when a new
// generator is created, not on every draw.
package rng

import (
	"math/rand/v2"
	"sync"
)

// seedSeq is the process-wide seed source: a single, serialized splitmix64
// generator that hands out independent seeds to per-goroutine engines.
type seedSeq struct {
	mu    sync.Mutex
	state uint64
}

func (s *seedSeq) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	// splitmix64
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

var globalSeed = &seedSeq{state: 0xCAFEF00DD15EA5E5}

// Seed reseeds the global seed sequence. Intended for reproducible runs
// (e.g. the end-to-end scenarios in ga_test.go, which derive a seed from
// the scenario name).
func Seed(seed uint64) {
	globalSeed.mu.Lock()
	globalSeed.state = seed
	globalSeed.mu.Unlock()
}

// New returns a fresh generator seeded from the global seed sequence. Safe
// to call concurrently; each call yields an independent stream.
func New() *rand.Rand {
	return rand.New(rand.NewPCG(globalSeed.next(), globalSeed.next()))
}

// pool hands out one *rand.Rand per goroutine. Goroutines in the data-
// parallel phases (crossover, mutation, evaluation, ...) are short-lived
// relative to a generation, so a sync.Pool recycles generators across
// phases instead of reseeding on every single item.
var pool = sync.Pool{
	New: func() any { return New() },
}

// Get borrows a goroutine-local generator. Pair with Put when the calling
// goroutine is done with it (typically: once per data-parallel work item).
func Get() *rand.Rand {
	return pool.Get().(*rand.Rand)
}

// Put returns a generator to the pool.
func Put(r *rand.Rand) {
	pool.Put(r)
}

// Float64 draws a uniform value in [0, 1) using a pooled generator.
func Float64() float64 {
	r := Get()
	defer Put(r)
	return r.Float64()
}

// Normal draws a standard-normal value using a pooled generator.
func Normal() float64 {
	r := Get()
	defer Put(r)
	return r.NormFloat64()
}

// Index draws a uniform index in [0, n) using a pooled generator.
func Index(n int) int {
	r := Get()
	defer Put(r)
	return r.IntN(n)
}

// SampleUnique draws k distinct indices from [0, n) without replacement,
// using partial Fisher-Yates so it stays O(k) instead of rejection
// sampling. Panics if k > n: a tournament/sample size must never exceed
// the population it draws from.
func SampleUnique(n, k int) []int {
	if k > n {
		panic("rng: SampleUnique requires k <= n")
	}
	r := Get()
	defer Put(r)

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
