package journal

import (
	"dailyjournal/internal/apperr"
	"dailyjournal/internal/auth"
)

// Publication state machine. Invariants, checked by the tests after every
// transition:
//   - EverPublished is monotonic
//   - HiddenByAdmin implies !IsPublished

// Publish makes the entry visible in the global published feed. Idempotent.
func (e *Entry) Publish() {
	e.IsPublished = true
	e.EverPublished = true
	e.HiddenByAdmin = false
}

// Unpublish is the owner taking the entry off the feed. It also clears any
// admin hide, since the entry is no longer published at all.
func (e *Entry) Unpublish() {
	e.IsPublished = false
	e.HiddenByAdmin = false
}

// Hide is an administrative takedown, distinct from the owner unpublishing.
func (e *Entry) Hide() {
	e.IsPublished = false
	e.HiddenByAdmin = true
}

// Restore puts a hidden entry back on the feed. Only entries that were
// published at some point can be restored.
func (e *Entry) Restore() error {
	if !e.EverPublished {
		return apperr.E(apperr.InvalidState, "cannot restore journal that was never published")
	}
	e.IsPublished = true
	e.HiddenByAdmin = false
	return nil
}

// ReadableBy implements the read-visibility rule: owner, admin, or public.
func (e *Entry) ReadableBy(caller auth.Identity) bool {
	return caller.ID == e.UserID || caller.Admin || !e.IsPrivate
}
