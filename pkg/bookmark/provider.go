package bookmark

// Provider is the narrow interface to the host platform's bookmark
// primitive. The byte layout of encoded data is owned entirely by the
// Provider; the core passes it through without inspection.
//
// The tracker package ships a SQLite-indexed implementation for
// platforms without a native primitive; tests use in-memory fakes.
type Provider interface {
	// EncodeLocation encodes the file at path into an opaque blob.
	// Values for the given resource keys are captured at encode time
	// and embedded for later offline retrieval.
	EncodeLocation(path string, keys []string, opts CreationOptions) ([]byte, error)

	// DecodeBookmark decodes a blob back to the file's current
	// location. stale is true when the location was recovered through
	// tracking rather than the encoded path still being current.
	DecodeBookmark(data []byte, opts ResolutionOptions) (path string, stale bool, err error)

	// ResourceValues reads resource values embedded at encode time,
	// without touching the file system. ok is false when the blob
	// carries no values for the requested keys.
	ResourceValues(data []byte, keys []string) (values map[string]any, ok bool)

	// AcquireScopedAccess acquires scoped access to path, returning
	// false on denial. Each successful acquisition must be paired with
	// exactly one ReleaseScopedAccess call.
	AcquireScopedAccess(path string) bool

	// ReleaseScopedAccess releases one scoped-access acquisition.
	ReleaseScopedAccess(path string)

	// TypeIdentifier returns the platform type identifier for the file
	// at path.
	TypeIdentifier(path string) (string, error)
}
