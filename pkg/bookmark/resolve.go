package bookmark

import (
	"fmt"
	"strings"
)

// Resolution states. Valid and stale both yield a usable location;
// invalid yields none.
type State string

const (
	StateValid   State = "valid"
	StateStale   State = "stale"
	StateInvalid State = "invalid"
)

// Security-scope classifications.
type ScopeClass string

const (
	ScopeClassInvalid ScopeClass = "invalid"
	SecurityScoped    ScopeClass = "security-scoped"
	NotSecurityScoped ScopeClass = "not-security-scoped"
)

// Resolved is the transient result of a resolution. Location is
// meaningful only when State is not StateInvalid. A Resolved is
// produced fresh on every call and never cached: the true answer can
// change any time the underlying file system changes.
type Resolved struct {
	State    State  `json:"state"`
	Location string `json:"location,omitempty"`
}

// Resolve decodes the blob back to the file's current location.
// A decode reporting staleness yields StateStale with the recovered
// location; a decode failure returns ErrUnresolvable (wrapped).
//
// On a mandatory-scoping profile the resolution is security-scoped
// regardless of opts.
func (b Bookmark) Resolve(opts ResolutionOptions) (Resolved, error) {
	p, err := b.providerOrErr()
	if err != nil {
		return Resolved{State: StateInvalid}, err
	}
	if !b.profile.ScopingOptional {
		opts.WithSecurityScope = true
	}
	path, stale, err := p.DecodeBookmark(b.data, opts)
	if err != nil {
		return Resolved{State: StateInvalid}, fmt.Errorf("%w: %v", ErrUnresolvable, err)
	}
	if stale {
		return Resolved{State: StateStale, Location: path}, nil
	}
	return Resolved{State: StateValid, Location: path}, nil
}

// State resolves with default options and collapses any error into
// StateInvalid. It agrees with Resolve for identical inputs; use
// Resolve when the failure itself matters.
func (b Bookmark) State() State {
	res, err := b.Resolve(ResolutionOptions{})
	if err != nil {
		return StateInvalid
	}
	return res.State
}

// IsValidTarget reports whether the bookmark currently resolves to a
// location, stale or not.
func (b Bookmark) IsValidTarget() bool {
	return b.State() != StateInvalid
}

// SecurityScope classifies the bookmark's security scoping. An
// unresolvable bookmark is ScopeClassInvalid. Otherwise a scoped
// resolution is attempted: success means SecurityScoped, failure means
// NotSecurityScoped. On a mandatory-scoping profile every resolvable
// bookmark is SecurityScoped.
//
// Like State, this collapses underlying errors into the classification.
func (b Bookmark) SecurityScope() ScopeClass {
	if b.State() == StateInvalid {
		return ScopeClassInvalid
	}
	if !b.profile.ScopingOptional {
		return SecurityScoped
	}
	if _, err := b.Resolve(ResolutionOptions{WithSecurityScope: true}); err != nil {
		return NotSecurityScoped
	}
	return SecurityScoped
}

// TargetType resolves the bookmark and returns the platform type
// identifier of the target. Returns ErrTargetTypeUnavailable when the
// bookmark cannot be resolved or the lookup fails, and
// ErrInvalidTargetType when the lookup returns an unrecognizable value.
func (b Bookmark) TargetType() (string, error) {
	p, err := b.providerOrErr()
	if err != nil {
		return "", err
	}
	res, err := b.Resolve(ResolutionOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTargetTypeUnavailable, err)
	}
	id, err := p.TypeIdentifier(res.Location)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTargetTypeUnavailable, err)
	}
	if id == "" || !strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidTargetType, id)
	}
	return id, nil
}
