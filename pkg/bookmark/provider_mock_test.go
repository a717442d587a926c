package bookmark

import (
	"errors"
	"fmt"
	"sync"
)

// fakeEntry is the fake provider's record for one issued token.
type fakeEntry struct {
	path   string
	stale  bool
	gone   bool
	scoped bool
	alias  bool
	values map[string]any
}

// fakeProvider is an in-memory Provider that simulates staleness and
// invalidity without touching a file system. Tokens are small string
// ids; acquire/release calls are counted per path so tests can verify
// scoped-access pairing.
type fakeProvider struct {
	mu      sync.Mutex
	entries map[string]*fakeEntry
	nextID  int

	// resources maps path -> available resource values at encode time.
	resources map[string]map[string]any
	// typeIDs maps path -> TypeIdentifier result.
	typeIDs map[string]string

	failEncode   bool
	failTypeID   bool
	denyAcquire  bool
	strictScoped bool // scoped decode fails for tokens not created scoped

	acquires map[string]int
	releases map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		entries:   make(map[string]*fakeEntry),
		resources: make(map[string]map[string]any),
		typeIDs:   make(map[string]string),
		acquires:  make(map[string]int),
		releases:  make(map[string]int),
	}
}

func (f *fakeProvider) EncodeLocation(path string, keys []string, opts CreationOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failEncode {
		return nil, errors.New("target rejected")
	}
	f.nextID++
	id := fmt.Sprintf("tok-%d", f.nextID)
	entry := &fakeEntry{
		path:   path,
		scoped: opts.Scope == ScopeReadOnly || opts.Scope == ScopeReadWrite,
		alias:  opts.SuitableForAliasFile,
	}
	if avail := f.resources[path]; avail != nil && len(keys) > 0 {
		entry.values = make(map[string]any, len(keys))
		for _, k := range keys {
			if v, ok := avail[k]; ok {
				entry.values[k] = v
			}
		}
	}
	f.entries[id] = entry
	return []byte(id), nil
}

func (f *fakeProvider) DecodeBookmark(data []byte, opts ResolutionOptions) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[string(data)]
	if !ok {
		return "", false, errors.New("unknown token")
	}
	if entry.gone {
		return "", false, errors.New("target no longer exists")
	}
	if f.strictScoped && opts.WithSecurityScope && !entry.scoped {
		return "", false, errors.New("token carries no security scope")
	}
	return entry.path, entry.stale, nil
}

func (f *fakeProvider) ResourceValues(data []byte, keys []string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[string(data)]
	if !ok || entry.values == nil {
		return nil, false
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := entry.values[k]; ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func (f *fakeProvider) AcquireScopedAccess(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.denyAcquire {
		return false
	}
	f.acquires[path]++
	return true
}

func (f *fakeProvider) ReleaseScopedAccess(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases[path]++
}

func (f *fakeProvider) TypeIdentifier(path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTypeID {
		return "", errors.New("lookup failed")
	}
	if id, ok := f.typeIDs[path]; ok {
		return id, nil
	}
	return "text/plain", nil
}

// moveFile simulates a same-volume rename: every token pointing at old
// starts resolving to new and reporting stale.
func (f *fakeProvider) moveFile(old, new string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.path == old {
			e.path = new
			e.stale = true
		}
	}
}

// removeFile simulates deleting the target: every token pointing at
// path stops decoding.
func (f *fakeProvider) removeFile(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.path == path {
			e.gone = true
		}
	}
}

// entryFor returns the fake's record for a token, for assertions on
// embedded flags.
func (f *fakeProvider) entryFor(data []byte) *fakeEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[string(data)]
}
