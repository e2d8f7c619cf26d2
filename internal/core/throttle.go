package core

// addrCounter tracks attachments (live connections or ghost sessions) per
// source address and gates admission at the configured ceiling. It is owned
// by the hub and only touched under the hub's lock.
type addrCounter struct {
	limit  int
	counts map[string]int
}

func newAddrCounter(limit int) *addrCounter {
	return &addrCounter{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// hasCapacity reports whether one more connection from addr is admissible.
// A non-positive limit disables throttling.
func (a *addrCounter) hasCapacity(addr string) bool {
	if a.limit <= 0 {
		return true
	}
	return a.counts[addr] < a.limit
}

// acquire claims a slot for addr, refusing at the ceiling.
func (a *addrCounter) acquire(addr string) bool {
	if !a.hasCapacity(addr) {
		return false
	}
	a.counts[addr]++
	return true
}

// release frees a slot for addr, removing the entry at zero.
func (a *addrCounter) release(addr string) {
	n, ok := a.counts[addr]
	if !ok {
		return
	}
	if n <= 1 {
		delete(a.counts, addr)
		return
	}
	a.counts[addr] = n - 1
}
