package observer

import (
	"sync"

	"github.com/tidwall/btree"
)

const degree = 32

// Registry keeps observers in attach order. The same observer may be added
// more than once; each addition is a separate entry. O must hold comparable
// dynamic values (pointers in practice), otherwise Remove panics.
type Registry[O comparable] struct {
	mu      sync.Mutex
	seq     uint64
	entries *btree.Map[uint64, O]
}

func NewRegistry[O comparable]() *Registry[O] {
	return &Registry[O]{
		entries: btree.NewMap[uint64, O](degree),
	}
}

func (r *Registry[O]) Add(o O) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.entries.Set(r.seq, o)
}

// Remove deletes the earliest entry equal to o and reports whether one was found.
func (r *Registry[O]) Remove(o O) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	var key uint64
	found := false
	r.entries.Scan(func(k uint64, v O) bool {
		if v == o {
			key, found = k, true
			return false
		}
		return true
	})
	if found {
		r.entries.Delete(key)
	}
	return found
}

// Snapshot returns the registered observers in attach order. Later Add and
// Remove calls do not affect the returned slice.
func (r *Registry[O]) Snapshot() []O {
	r.mu.Lock()
	entries := r.entries.Copy()
	r.mu.Unlock()

	observers := make([]O, 0, entries.Len())
	entries.Scan(func(_ uint64, v O) bool {
		observers = append(observers, v)
		return true
	})
	return observers
}

func (r *Registry[O]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.entries.Len()
}
