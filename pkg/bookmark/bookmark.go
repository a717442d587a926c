package bookmark

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Bookmark wraps an opaque blob that tracks a file across renames and
// moves on the same volume. The blob is the only persisted state and is
// immutable after construction; resolution state is re-derived from the
// live file system on every call, never stored.
//
// A Bookmark is a value type. It carries no OS handle and is safe to
// share across goroutines for concurrent reads.
type Bookmark struct {
	data     []byte
	provider Provider
	profile  Profile
}

// New encodes the file at path into a Bookmark bound to the given
// provider and profile. Values for the given resource keys are embedded
// in the blob for later offline retrieval.
//
// Returns ErrInvalidLocation if path does not denote a file-system
// path, and ErrEncodingFailed (wrapped) when the provider rejects the
// target.
func New(p Provider, profile Profile, path string, keys []string, opts CreationOptions) (Bookmark, error) {
	if p == nil {
		return Bookmark{}, ErrNoProvider
	}
	if err := checkLocation(path); err != nil {
		return Bookmark{}, err
	}
	data, err := p.EncodeLocation(path, keys, opts)
	if err != nil {
		return Bookmark{}, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	return Bookmark{data: cloneBytes(data), provider: p, profile: profile}, nil
}

// FromData constructs a Bookmark from previously persisted bytes. When
// validate is true, a resolution pass runs immediately and any decode
// failure surfaces as ErrMalformedBookmark; the resolved location is
// discarded. When validate is false, construction always succeeds and
// problems are deferred to the first resolve.
func FromData(p Provider, profile Profile, data []byte, validate bool) (Bookmark, error) {
	b := Bookmark{data: cloneBytes(data), provider: p, profile: profile}
	if validate {
		if _, err := b.Resolve(ResolutionOptions{}); err != nil {
			return Bookmark{}, fmt.Errorf("%w: %v", ErrMalformedBookmark, err)
		}
	}
	return b, nil
}

// Copy returns an independent Bookmark decoding from the same bytes.
// The copy shares no storage with the receiver.
func (b Bookmark) Copy() Bookmark {
	return Bookmark{data: cloneBytes(b.data), provider: b.provider, profile: b.profile}
}

// Bind returns a copy of the Bookmark bound to the given provider and
// profile. Bookmarks deserialized from JSON are unbound and must be
// bound before any operation.
func (b Bookmark) Bind(p Provider, profile Profile) Bookmark {
	return Bookmark{data: cloneBytes(b.data), provider: p, profile: profile}
}

// Data returns a copy of the opaque blob.
func (b Bookmark) Data() []byte {
	return cloneBytes(b.data)
}

// Base64 returns the blob encoded as a standard base64 string.
func (b Bookmark) Base64() string {
	return base64.StdEncoding.EncodeToString(b.data)
}

// bookmarkJSON is the stable serialized form: a single field holding
// the raw blob. encoding/json renders []byte as base64.
type bookmarkJSON struct {
	Data []byte `json:"data"`
}

// MarshalJSON serializes the Bookmark as {"data": <base64 blob>}.
func (b Bookmark) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookmarkJSON{Data: b.data})
}

// UnmarshalJSON restores the blob byte-identically. The result is
// unbound; call Bind before resolving.
func (b *Bookmark) UnmarshalJSON(raw []byte) error {
	var v bookmarkJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	b.data = v.Data
	b.provider = nil
	b.profile = Profile{}
	return nil
}

// checkLocation rejects inputs that are not file-system paths: empty
// strings, URLs, and relative paths.
func checkLocation(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidLocation)
	}
	if strings.Contains(path, "://") {
		return fmt.Errorf("%w: %q looks like a URL", ErrInvalidLocation, path)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidLocation, path)
	}
	return nil
}

// providerOrErr returns the bound provider, or ErrNoProvider for
// bookmarks that were deserialized without a Bind.
func (b Bookmark) providerOrErr() (Provider, error) {
	if b.provider == nil {
		return nil, ErrNoProvider
	}
	return b.provider, nil
}

func cloneBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
