package domain

// Scope is the record-visibility filter computed for one principal. Every list
// and get-by-id query intersects with it. Exactly one of the three tiers is in
// effect: unrestricted (admin), team, or owner.
type Scope struct {
	Unrestricted bool
	TeamID       *string // non-nil: visible records are those with a matching teamID
	OwnerID      string  // owner fallback when not unrestricted and TeamID is nil
}

// ScopeFor computes the access scope for a principal. The tiers are evaluated
// strictly in admin > team > owner order; a non-admin with no team always lands
// on the owner-only filter.
func ScopeFor(p Principal) Scope {
	if p.IsAdmin() {
		return Scope{Unrestricted: true}
	}
	if p.TeamID != nil {
		teamID := *p.TeamID
		return Scope{TeamID: &teamID}
	}
	return Scope{OwnerID: p.UserID}
}

// Allows reports whether a record with the given ownership is visible under
// this scope. Mirrors the SQL filter the repositories render.
func (s Scope) Allows(ownerID string, teamID *string) bool {
	if s.Unrestricted {
		return true
	}
	if s.TeamID != nil {
		return teamID != nil && *teamID == *s.TeamID
	}
	return ownerID == s.OwnerID
}
