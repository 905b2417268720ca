package utils

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	MinRiderCode = 1000
	MaxRiderCode = 9999
)

// CodeGenerator draws rider codes uniformly from [MinRiderCode, MaxRiderCode].
// It is safe for concurrent use.
type CodeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewCodeGenerator creates a generator seeded from the wall clock
func NewCodeGenerator() *CodeGenerator {
	return NewSeededCodeGenerator(time.Now().UnixNano())
}

// NewSeededCodeGenerator creates a generator with a fixed seed, for tests
func NewSeededCodeGenerator(seed int64) *CodeGenerator {
	return &CodeGenerator{rnd: rand.New(rand.NewSource(seed))}
}

// Next returns a fresh 4-digit code. Uniqueness is the caller's job.
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	n := MinRiderCode + g.rnd.Intn(MaxRiderCode-MinRiderCode+1)
	g.mu.Unlock()
	return strconv.Itoa(n)
}
