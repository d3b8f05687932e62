package Generation

import "sync"

// keyedLocks hands out one mutex per key so two concurrent generation runs
// for the same (agent, date) serialize instead of racing between the
// existing-tasks read and the task writes.
type keyedLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{held: make(map[string]*sync.Mutex)}
}

func (k *keyedLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.held[key]
	if !ok {
		m = &sync.Mutex{}
		k.held[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
