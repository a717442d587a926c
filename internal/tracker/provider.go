package tracker

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

// Compile-time interface check: Tracker must implement Provider.
var _ bookmark.Provider = (*Tracker)(nil)

// Resource keys the tracker can embed at encode time.
const (
	KeySize        = "size"
	KeyModTime     = "mod_time"
	KeyMode        = "mode"
	KeyContentType = "content_type"
)

// EncodeLocation captures the file's identity, records it in the
// index, and returns the token bytes. Values for the given resource
// keys are read now and embedded in the token. Only regular files can
// be tracked; directories and other special files are rejected because
// the recovery scans would never find them again after a rename.
func (t *Tracker) EncodeLocation(path string, keys []string, opts bookmark.CreationOptions) ([]byte, error) {
	db, err := t.handle()
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	dev, ino, err := fileIdentity(path)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating record id: %w", err)
	}
	recordID := id.String()

	if err := t.upsertMark(db, recordID, dev, ino, path); err != nil {
		return nil, err
	}

	payload := tokenPayload{
		RecordID: recordID,
		Device:   dev,
		Inode:    ino,
		Path:     path,
		Alias:    opts.SuitableForAliasFile,
		Values:   captureValues(path, keys),
	}
	if opts.Scope != "" && opts.Scope != bookmark.ScopeNone {
		payload.Scope = string(opts.Scope)
	}

	t.log.Debug("encoded location",
		zap.String("record_id", recordID),
		zap.String("path", path),
	)
	return marshalToken(payload)
}

// DecodeBookmark locates the token's target. The lookup order is:
// the encoded path itself (valid), a same-directory identity scan
// (stale), then the index's last-seen path (stale). A miss everywhere
// is ErrTargetMissing; staleness beyond these mechanisms is not
// detected.
func (t *Tracker) DecodeBookmark(data []byte, opts bookmark.ResolutionOptions) (string, bool, error) {
	db, err := t.handle()
	if err != nil {
		return "", false, err
	}
	payload, err := unmarshalToken(data)
	if err != nil {
		return "", false, err
	}
	if opts.WithSecurityScope && payload.Scope == "" {
		return "", false, fmt.Errorf("%w: %s", ErrNotScoped, payload.RecordID)
	}

	// Fast path: the encoded path still names the same file.
	if dev, ino, err := fileIdentity(payload.Path); err == nil && dev == payload.Device && ino == payload.Inode {
		if err := t.upsertMark(db, payload.RecordID, dev, ino, payload.Path); err != nil {
			return "", false, err
		}
		return payload.Path, false, nil
	}

	// Renamed within its directory: scan siblings for the identity.
	if found, ok := t.scanDirectory(filepath.Dir(payload.Path), payload.Device, payload.Inode); ok {
		if err := t.upsertMark(db, payload.RecordID, payload.Device, payload.Inode, found); err != nil {
			return "", false, err
		}
		t.log.Debug("recovered renamed target",
			zap.String("record_id", payload.RecordID),
			zap.String("path", found),
		)
		return found, true, nil
	}

	// Moved elsewhere: trust the index's last-seen path if the
	// identity still checks out there.
	if last, ok, err := t.lookupMarkPath(db, payload.RecordID); err != nil {
		return "", false, err
	} else if ok && last != payload.Path {
		if dev, ino, err := fileIdentity(last); err == nil && dev == payload.Device && ino == payload.Inode {
			return last, true, nil
		}
	}

	return "", false, fmt.Errorf("%w: %s", ErrTargetMissing, payload.Path)
}

// scanDirectory looks for a regular file in dir with the given
// identity, returning its path.
func (t *Tracker) scanDirectory(dir string, device, inode uint64) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		candidate := filepath.Join(dir, entry.Name())
		if dev, ino, err := fileIdentity(candidate); err == nil && dev == device && ino == inode {
			return candidate, true
		}
	}
	return "", false
}

// ResourceValues reads values embedded at encode time without touching
// the file system.
func (t *Tracker) ResourceValues(data []byte, keys []string) (map[string]any, bool) {
	payload, err := unmarshalToken(data)
	if err != nil || payload.Values == nil {
		return nil, false
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := payload.Values[k]; ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// TypeIdentifier returns the MIME type registered for the path's
// extension. A pass-through to the host lookup; extensionless and
// unregistered names fail.
func (t *Tracker) TypeIdentifier(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("no extension on %s", path)
	}
	id := mime.TypeByExtension(ext)
	if id == "" {
		return "", fmt.Errorf("no type registered for %s", ext)
	}
	return id, nil
}

// captureValues reads the requested resource values from the live
// file. Unknown keys and stat failures yield no values; encoding
// proceeds without them.
func captureValues(path string, keys []string) map[string]any {
	if len(keys) == 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	values := make(map[string]any, len(keys))
	for _, k := range keys {
		switch k {
		case KeySize:
			values[k] = info.Size()
		case KeyModTime:
			values[k] = info.ModTime().UTC().Format(time.RFC3339Nano)
		case KeyMode:
			values[k] = info.Mode().String()
		case KeyContentType:
			if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
				values[k] = ct
			}
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
