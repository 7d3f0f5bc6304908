package cart

// LockedOwners reports how many owners have a live lock entry.
func LockedOwners(e *Engine) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.locks)
}
