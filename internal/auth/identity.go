package auth

import "dailyjournal/internal/apperr"

// Identity is the resolved caller threaded explicitly through every
// operation. Business logic never reaches for ambient auth state.
type Identity struct {
	ID      uint64
	Name    string
	Email   string
	Enabled bool
	Admin   bool
}

func RequireAdmin(caller Identity) error {
	if !caller.Admin {
		return apperr.E(apperr.Forbidden, "admin role required")
	}
	return nil
}

func RequireOwnerOrAdmin(caller Identity, ownerID uint64) error {
	if caller.ID != ownerID && !caller.Admin {
		return apperr.E(apperr.Forbidden, "not authorized to access this resource")
	}
	return nil
}
