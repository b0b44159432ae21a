package parallel

import (
	"sync"
)

// Striped is a table of mutexes, one per partition of some shared
// structure, so that workers touching different partitions do not
// contend with each other.
type Striped struct {
	locks []sync.Mutex
}

// NewStriped returns a lock table with n stripes.
func NewStriped(n int) *Striped {
	return &Striped{
		locks: make([]sync.Mutex, n),
	}
}

// Len returns the number of stripes.
func (s *Striped) Len() int {
	return len(s.locks)
}

// Lock locks stripe i.
func (s *Striped) Lock(i int) {
	s.locks[i].Lock()
}

// Unlock unlocks stripe i.
func (s *Striped) Unlock(i int) {
	s.locks[i].Unlock()
}

// Do calls fn while holding stripe i and returns its result.
// The stripe is released as soon as fn returns.
func (s *Striped) Do(i int, fn func() bool) bool {
	s.Lock(i)
	defer s.Unlock(i)
	return fn()
}
