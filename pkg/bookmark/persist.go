package bookmark

import (
	"fmt"
	"os"
	"path/filepath"
)

// Rebuild resolves the bookmark and encodes a brand-new Bookmark from
// the resolved location. It is the only remedy for staleness and never
// mutates the receiver. Fails when the bookmark does not resolve.
func (b Bookmark) Rebuild(keys []string, opts CreationOptions) (Bookmark, error) {
	res, err := b.Resolve(ResolutionOptions{})
	if err != nil {
		return Bookmark{}, err
	}
	return New(b.provider, b.profile, res.Location, keys, opts)
}

// WriteToFile resolves the bookmark and writes its raw bytes to path.
// A bookmark currently resolving as stale is refused with
// ErrStaleNeedsRebuild rather than persisted silently outdated.
func (b Bookmark) WriteToFile(path string, opts WriteOptions) error {
	res, err := b.Resolve(ResolutionOptions{})
	if err != nil {
		return err
	}
	if res.State == StateStale {
		return fmt.Errorf("%w: resolves to %s", ErrStaleNeedsRebuild, res.Location)
	}
	return writeFile(path, b.data, opts.Atomic)
}

// WriteAliasFile resolves the bookmark, re-encodes the resolved
// location with the alias-file flag merged into opts, and writes the
// new token's bytes to path. Alias files must carry the flag to be
// recognized as aliases by the host shell. Stale bookmarks are refused
// with ErrStaleNeedsRebuild.
func (b Bookmark) WriteAliasFile(path string, opts CreationOptions, wopts WriteOptions) error {
	p, err := b.providerOrErr()
	if err != nil {
		return err
	}
	res, err := b.Resolve(ResolutionOptions{})
	if err != nil {
		return err
	}
	if res.State == StateStale {
		return fmt.Errorf("%w: resolves to %s", ErrStaleNeedsRebuild, res.Location)
	}
	opts.SuitableForAliasFile = true
	data, err := p.EncodeLocation(res.Location, nil, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	return writeFile(path, data, wopts.Atomic)
}

// ResourceValues reads resource values embedded at creation time
// without touching the file system. ok is false when the blob carries
// no values for the requested keys or the bookmark is unbound.
func (b Bookmark) ResourceValues(keys []string) (map[string]any, bool) {
	if b.provider == nil {
		return nil, false
	}
	return b.provider.ResourceValues(b.data, keys)
}

// writeFile writes data to path, in place or through the temp-file,
// fsync, rename pattern when atomic.
func writeFile(path string, data []byte, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fmk-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
