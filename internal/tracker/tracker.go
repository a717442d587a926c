// Package tracker implements a SQLite-indexed bookmark provider for
// platforms without a native file-tracking primitive. Tokens carry the
// target's device/inode identity; a small index database maps known
// identities to their last-seen paths so renamed and moved files can be
// recovered.
// See docs/ARCHITECTURE.md § Tracker Provider.
package tracker

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Lifecycle errors.
var (
	ErrDetached        = errors.New("tracker is detached")
	ErrAlreadyAttached = errors.New("tracker is already attached")
)

// Encode and decode errors. The bookmark core maps these to its own
// sentinels.
var (
	ErrNotRegular    = errors.New("target is not a regular file")
	ErrBadToken      = errors.New("token is not tracker data")
	ErrTargetMissing = errors.New("target cannot be located")
	ErrNotScoped     = errors.New("token carries no security scope")
)

// indexFileName is the SQLite index database inside the data dir.
const indexFileName = "marks.db"

// Config holds parameters for Tracker.Attach.
type Config struct {
	// DataDir is where the index database lives. Empty means the
	// current directory.
	DataDir string
}

// Validate checks that the Config is usable. A DataDir that exists but
// is not a directory is rejected here rather than failing later inside
// the SQLite driver.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return nil
	}
	info, err := os.Stat(c.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Attach creates it
		}
		return fmt.Errorf("checking data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", c.DataDir)
	}
	return nil
}

// Tracker is the provider. It is safe for concurrent use; all index
// access goes through one connection pool and the scoped-access ledger
// has its own lock.
type Tracker struct {
	mu       sync.RWMutex
	attached bool
	config   Config
	db       *sql.DB
	log      *zap.Logger

	scopeMu sync.Mutex
	scopes  map[string]int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		t.log = log
	}
}

// New creates a detached Tracker; call Attach before use.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		log:    zap.NewNop(),
		scopes: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Attach opens (creating if needed) the index database under the
// configured data dir. Returns ErrAlreadyAttached if called while
// attached.
func (t *Tracker) Attach(config Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, indexFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initializing schema: %w", err)
	}

	t.db = db
	t.config = config
	t.attached = true
	t.log.Debug("tracker attached", zap.String("index", dbPath))
	return nil
}

// Detach closes the index database. Idempotent; after Detach,
// operations return ErrDetached.
func (t *Tracker) Detach() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.attached {
		return nil
	}
	if t.db != nil {
		if err := t.db.Close(); err != nil {
			return fmt.Errorf("closing index: %w", err)
		}
		t.db = nil
	}
	t.attached = false
	t.log.Debug("tracker detached")
	return nil
}

// handle returns the open database, or ErrDetached.
func (t *Tracker) handle() (*sql.DB, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.attached {
		return nil, ErrDetached
	}
	return t.db, nil
}

// upsertMark records or refreshes the index row for one token.
func (t *Tracker) upsertMark(db *sql.DB, recordID string, dev, ino uint64, path string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := db.Exec(
		`INSERT INTO marks (record_id, device, inode, path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(record_id) DO UPDATE SET
		   device = excluded.device,
		   inode = excluded.inode,
		   path = excluded.path,
		   updated_at = excluded.updated_at`,
		recordID, int64(dev), int64(ino), path, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting mark %s: %w", recordID, err)
	}
	return nil
}

// lookupMarkPath returns the last-seen path recorded for a token.
func (t *Tracker) lookupMarkPath(db *sql.DB, recordID string) (string, bool, error) {
	row := db.QueryRow("SELECT path FROM marks WHERE record_id = ?", recordID)
	var path string
	if err := row.Scan(&path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("looking up mark %s: %w", recordID, err)
	}
	return path, true, nil
}

// Reindex walks root and refreshes the recorded path of every known
// identity it encounters. Returns how many index rows were updated.
// Cross-directory moves become resolvable only after a Reindex over a
// tree containing the moved file.
func (t *Tracker) Reindex(root string) (int, error) {
	db, err := t.handle()
	if err != nil {
		return 0, err
	}

	updated := 0
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		dev, ino, idErr := fileIdentity(path)
		if idErr != nil {
			return nil
		}
		res, execErr := db.Exec(
			"UPDATE marks SET path = ?, updated_at = ? WHERE device = ? AND inode = ? AND path != ?",
			path, now, int64(dev), int64(ino), path,
		)
		if execErr != nil {
			return fmt.Errorf("updating mark for %s: %w", path, execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			updated += int(n)
			t.log.Debug("reindexed mark", zap.String("path", path), zap.Int64("rows", n))
		}
		return nil
	})
	if err != nil {
		return updated, fmt.Errorf("walking %s: %w", root, err)
	}
	return updated, nil
}
