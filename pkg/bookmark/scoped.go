package bookmark

import "fmt"

// WithResolvedTarget resolves the bookmark and invokes block with the
// result. The block receives the full Resolved, so a stale-but-usable
// location is observable by the caller.
//
// If the bookmark does not resolve, WithResolvedTarget returns
// ErrBookmarkInvalid and block never runs. When scoped access applies
// (requested via opts on an optional-scoping profile, always on a
// mandatory-scoping one), access is acquired before block and released
// exactly once on every exit path, including a panicking block. An
// acquisition failure returns ErrAccessDenied and block never runs.
func (b Bookmark) WithResolvedTarget(opts ResolutionOptions, block func(Resolved) error) error {
	p, err := b.providerOrErr()
	if err != nil {
		return err
	}
	res, err := b.Resolve(opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBookmarkInvalid, err)
	}
	if opts.WithSecurityScope || !b.profile.ScopingOptional {
		if !p.AcquireScopedAccess(res.Location) {
			return fmt.Errorf("%w: %s", ErrAccessDenied, res.Location)
		}
		defer p.ReleaseScopedAccess(res.Location)
	}
	return block(res)
}
