package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

const defaultBuffer = 32

// Registry tracks connected subscribers. Its lock is held only for
// membership changes and snapshots, never while sending.
type Registry struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]*Subscriber
	buffer int
}

func NewRegistry(buffer int) *Registry {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Registry{
		subs:   make(map[uuid.UUID]*Subscriber),
		buffer: buffer,
	}
}

func (r *Registry) Join() *Subscriber {
	sub := newSubscriber(r.buffer)

	r.mu.Lock()
	r.subs[sub.id] = sub
	r.mu.Unlock()

	return sub
}

// Leave removes the subscriber and closes its done channel. It reports true
// only for the call that actually removed it, so concurrent callers agree
// on a single removal.
func (r *Registry) Leave(sub *Subscriber) bool {
	if sub == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.id]; !ok {
		return false
	}
	delete(r.subs, sub.id)
	close(sub.done)
	return true
}

// Snapshot returns the membership at call time.
func (r *Registry) Snapshot() []*Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Subscriber, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// Close removes every subscriber and returns how many were removed.
func (r *Registry) Close() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.subs)
	for id, sub := range r.subs {
		delete(r.subs, id)
		close(sub.done)
	}
	return n
}
