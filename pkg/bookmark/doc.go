// Package bookmark defines the Bookmark value type, the Provider
// interface it resolves through, and the standard error values for the
// filemark location-tracking system.
// See docs/ARCHITECTURE.md § Core Library.
package bookmark
