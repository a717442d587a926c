package bookmark

// Security-scope modes for bookmark creation. Scoped modes matter only
// on profiles where scoping is optional; on mandatory-scoping profiles
// every bookmark behaves as read-write scoped.
type ScopeMode string

const (
	ScopeNone      ScopeMode = "none"
	ScopeReadOnly  ScopeMode = "read-only"
	ScopeReadWrite ScopeMode = "read-write"
)

// validScopeModes is the set of recognized scope mode values.
var validScopeModes = map[ScopeMode]bool{
	ScopeNone:      true,
	ScopeReadOnly:  true,
	ScopeReadWrite: true,
}

// Valid reports whether m is a recognized scope mode. The zero value
// is treated as ScopeNone.
func (m ScopeMode) Valid() bool {
	return m == "" || validScopeModes[m]
}

// CreationOptions control how a location is encoded into bookmark data.
// The zero value requests an unscoped, non-alias bookmark.
type CreationOptions struct {
	// Scope selects the security-scope mode embedded in the bookmark.
	Scope ScopeMode
	// SuitableForAliasFile marks the encoded data as writable to an
	// alias file. WriteAliasFile sets this itself; callers normally
	// leave it false.
	SuitableForAliasFile bool
}

// ResolutionOptions control how bookmark data is decoded back to a
// location. The zero value requests an unscoped resolution.
type ResolutionOptions struct {
	// WithSecurityScope requests a security-scoped resolution. On a
	// mandatory-scoping profile the flag is implied and ignored.
	WithSecurityScope bool
}

// WriteOptions control how bookmark bytes are written to disk.
type WriteOptions struct {
	// Atomic writes through a temp file, fsync, and rename instead of
	// writing the destination in place.
	Atomic bool
}

// Profile captures the one platform capability the core consults: whether
// security scoping is optional (desktop) or mandatory (sandboxed). It is
// resolved once at configuration time and injected alongside the Provider.
type Profile struct {
	// ScopingOptional is true when callers choose per-operation whether
	// scoped access applies. When false, every resolution and scoped
	// access is security-scoped regardless of option flags.
	ScopingOptional bool
}

// Standard profiles.
var (
	DesktopProfile = Profile{ScopingOptional: true}
	SandboxProfile = Profile{ScopingOptional: false}
)
