package bookmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToFile(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	out := filepath.Join(t.TempDir(), "book.fmk")

	require.NoError(t, b.WriteToFile(out, WriteOptions{}))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, b.Data(), raw)
}

func TestWriteToFileAtomic(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	dir := t.TempDir()
	out := filepath.Join(dir, "book.fmk")

	require.NoError(t, b.WriteToFile(out, WriteOptions{Atomic: true}))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, b.Data(), raw)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteToFileRefusesStale(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	p.moveFile("/tmp/book.txt", "/tmp/moved.txt")

	out := filepath.Join(t.TempDir(), "book.fmk")
	err := b.WriteToFile(out, WriteOptions{})
	assert.ErrorIs(t, err, ErrStaleNeedsRebuild)
	assert.NoFileExists(t, out)
}

func TestWriteToFileUnresolvable(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	p.removeFile("/tmp/book.txt")

	err := b.WriteToFile(filepath.Join(t.TempDir(), "book.fmk"), WriteOptions{})
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestWriteAliasFile(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	out := filepath.Join(t.TempDir(), "book.alias")

	require.NoError(t, b.WriteAliasFile(out, CreationOptions{}, WriteOptions{}))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	// The written token is a fresh encoding carrying the alias flag,
	// not the original blob.
	assert.NotEqual(t, b.Data(), raw)
	entry := p.entryFor(raw)
	require.NotNil(t, entry)
	assert.True(t, entry.alias)
	assert.Equal(t, "/tmp/book.txt", entry.path)
}

func TestWriteAliasFileRefusesStale(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	p.moveFile("/tmp/book.txt", "/tmp/moved.txt")

	err := b.WriteAliasFile(filepath.Join(t.TempDir(), "book.alias"), CreationOptions{}, WriteOptions{})
	assert.ErrorIs(t, err, ErrStaleNeedsRebuild)
}

func TestRebuildAfterRename(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	p.moveFile("/tmp/book.txt", "/tmp/moved.txt")
	require.Equal(t, StateStale, b.State())

	rebuilt, err := b.Rebuild(nil, CreationOptions{})
	require.NoError(t, err)

	res, err := rebuilt.Resolve(ResolutionOptions{})
	require.NoError(t, err)
	assert.Equal(t, StateValid, res.State)
	assert.Equal(t, "/tmp/moved.txt", res.Location)

	// Rebuild never mutates the original.
	assert.Equal(t, StateStale, b.State())
	assert.NotEqual(t, b.Data(), rebuilt.Data())
}

func TestRebuildUnresolvable(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})
	p.removeFile("/tmp/book.txt")

	_, err := b.Rebuild(nil, CreationOptions{})
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestResourceValuesOffline(t *testing.T) {
	p := newFakeProvider()
	p.resources["/tmp/book.txt"] = map[string]any{
		"size":    int64(14),
		"content": "text/plain",
	}

	b, err := New(p, DesktopProfile, "/tmp/book.txt", []string{"size"}, CreationOptions{})
	require.NoError(t, err)

	// The target going away does not affect offline reads.
	p.removeFile("/tmp/book.txt")

	values, ok := b.ResourceValues([]string{"size"})
	require.True(t, ok)
	assert.Equal(t, int64(14), values["size"])

	// Keys not embedded at creation are absent.
	_, ok = b.ResourceValues([]string{"content"})
	assert.False(t, ok)
}

func TestResourceValuesAbsent(t *testing.T) {
	p := newFakeProvider()
	b := mustBookmark(t, p, DesktopProfile, "/tmp/book.txt", CreationOptions{})

	_, ok := b.ResourceValues([]string{"size"})
	assert.False(t, ok)
}
