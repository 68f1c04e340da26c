package store

import "sync"

// listenerRegistry invokes registered callbacks after every store
// transition. A listener that unsubscribes simply stops being called; the
// store never suppresses the transition itself, so a late response landing
// after a view went away still merges normally.
type listenerRegistry struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[int]func())}
}

// add registers fn and returns a function that removes it again.
func (r *listenerRegistry) add(fn func()) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// fire invokes every registered listener.
func (r *listenerRegistry) fire() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
