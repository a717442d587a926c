package bookmark

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonFileLocations(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "relative path", path: "notes/book.txt"},
		{name: "http url", path: "https://example.com/book.txt"},
		{name: "file url", path: "file:///tmp/book.txt"},
	}

	p := newFakeProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(p, DesktopProfile, tt.path, nil, CreationOptions{})
			assert.ErrorIs(t, err, ErrInvalidLocation)
		})
	}
}

func TestNewPropagatesEncodeFailure(t *testing.T) {
	p := newFakeProvider()
	p.failEncode = true

	_, err := New(p, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	assert.ErrorIs(t, err, ErrEncodingFailed)
}

func TestNewRequiresProvider(t *testing.T) {
	_, err := New(nil, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestFromDataValidation(t *testing.T) {
	p := newFakeProvider()
	orig, err := New(p, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	require.NoError(t, err)

	t.Run("valid bytes pass eager validation", func(t *testing.T) {
		b, err := FromData(p, DesktopProfile, orig.Data(), true)
		require.NoError(t, err)
		assert.Equal(t, StateValid, b.State())
	})

	t.Run("garbage fails eager validation", func(t *testing.T) {
		_, err := FromData(p, DesktopProfile, []byte("garbage"), true)
		assert.ErrorIs(t, err, ErrMalformedBookmark)
	})

	t.Run("garbage accepted lazily, fails on first resolve", func(t *testing.T) {
		b, err := FromData(p, DesktopProfile, []byte("garbage"), false)
		require.NoError(t, err)
		_, err = b.Resolve(ResolutionOptions{})
		assert.ErrorIs(t, err, ErrUnresolvable)
		assert.Equal(t, StateInvalid, b.State())
	})
}

func TestCopyIsIndependent(t *testing.T) {
	p := newFakeProvider()
	orig, err := New(p, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	require.NoError(t, err)

	cp := orig.Copy()
	assert.Equal(t, orig.Data(), cp.Data())

	// Mutating a returned data slice must not leak into either value.
	leaked := orig.Data()
	for i := range leaked {
		leaked[i] = 0
	}
	assert.Equal(t, cp.Data(), orig.Data())
	assert.Equal(t, StateValid, cp.State())
}

func TestJSONRoundTrip(t *testing.T) {
	p := newFakeProvider()
	orig, err := New(p, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	require.NoError(t, err)

	raw, err := json.Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data"`)

	var restored Bookmark
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, orig.Data(), restored.Data())

	// Deserialized bookmarks are unbound until Bind.
	_, err = restored.Resolve(ResolutionOptions{})
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.Equal(t, StateInvalid, restored.State())

	bound := restored.Bind(p, DesktopProfile)
	res, err := bound.Resolve(ResolutionOptions{})
	require.NoError(t, err)
	assert.Equal(t, StateValid, res.State)
	assert.Equal(t, "/tmp/book.txt", res.Location)
}

func TestJSONRoundTripIsByteIdentical(t *testing.T) {
	p := newFakeProvider()
	orig, err := New(p, DesktopProfile, "/tmp/book.txt", nil, CreationOptions{})
	require.NoError(t, err)

	// Several encode/decode cycles must reproduce the identical blob.
	current := orig
	for i := 0; i < 3; i++ {
		raw, err := json.Marshal(current)
		require.NoError(t, err)
		var next Bookmark
		require.NoError(t, json.Unmarshal(raw, &next))
		current = next.Bind(p, DesktopProfile)
	}
	assert.Equal(t, orig.Data(), current.Data())
	assert.Equal(t, orig.Base64(), current.Base64())

	res, err := current.Resolve(ResolutionOptions{})
	require.NoError(t, err)
	assert.Equal(t, StateValid, res.State)
}

func TestScopeModeValid(t *testing.T) {
	assert.True(t, ScopeMode("").Valid())
	assert.True(t, ScopeNone.Valid())
	assert.True(t, ScopeReadOnly.Valid())
	assert.True(t, ScopeReadWrite.Valid())
	assert.False(t, ScopeMode("everything").Valid())
}
