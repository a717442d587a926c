package tracker

import "os"

// AcquireScopedAccess grants scoped access to path if it is openable,
// recording the grant in the per-path ledger. Returns false on denial.
func (t *Tracker) AcquireScopedAccess(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()

	t.scopeMu.Lock()
	defer t.scopeMu.Unlock()
	t.scopes[path]++
	return true
}

// ReleaseScopedAccess releases one grant for path. Releasing without a
// matching grant is a no-op.
func (t *Tracker) ReleaseScopedAccess(path string) {
	t.scopeMu.Lock()
	defer t.scopeMu.Unlock()

	if t.scopes[path] <= 1 {
		delete(t.scopes, path)
		return
	}
	t.scopes[path]--
}

// scopeCount reports the open grants for path, for tests.
func (t *Tracker) scopeCount(path string) int {
	t.scopeMu.Lock()
	defer t.scopeMu.Unlock()
	return t.scopes[path]
}
