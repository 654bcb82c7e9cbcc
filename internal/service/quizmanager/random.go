package quizmanager

import (
	"math/rand"
	"sync"
	"time"
)

// LockedRandom — потокобезопасная обёртка над *rand.Rand.
// Один экземпляр разделяется всеми запросами сервера.
type LockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRandom создает источник с заданным seed; 0 означает seed от текущего времени
func NewLockedRandom(seed int64) *LockedRandom {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedRandom{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 возвращает число в [0, 1)
func (r *LockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

// Intn возвращает число в [0, n)
func (r *LockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}
