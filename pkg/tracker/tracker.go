// Package tracker provides the public API for the SQLite-indexed
// bookmark provider. It exposes the factory and configuration types
// while keeping the index implementation internal.
package tracker

import (
	"github.com/mesh-intelligence/filemark/internal/tracker"
)

// Config holds parameters for Tracker.Attach.
type Config = tracker.Config

// Tracker implements bookmark.Provider backed by a SQLite location
// index. It is detached on creation; call Attach before use.
type Tracker = tracker.Tracker

// Option configures a Tracker.
type Option = tracker.Option

// WithLogger sets the tracker's logger. The default discards everything.
var WithLogger = tracker.WithLogger

// Resource keys the tracker can embed at encode time.
const (
	KeySize        = tracker.KeySize
	KeyModTime     = tracker.KeyModTime
	KeyMode        = tracker.KeyMode
	KeyContentType = tracker.KeyContentType
)

// New creates a detached Tracker.
//
// Example:
//
//	tr := tracker.New()
//	err := tr.Attach(tracker.Config{DataDir: ".filemark-db"})
//	defer tr.Detach()
//	b, err := bookmark.New(tr, bookmark.DesktopProfile, path, nil, bookmark.CreationOptions{})
func New(opts ...Option) *Tracker {
	return tracker.New(opts...)
}
