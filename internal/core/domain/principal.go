package domain

// Principal is the resolved identity and privilege context for one request.
// It is recomputed from the Profile on every request and never persisted, so a
// role change takes effect on the very next request.
type Principal struct {
	UserID string  `json:"userID"`
	Email  string  `json:"email"`
	Role   Role    `json:"role"`
	TeamID *string `json:"teamID,omitempty"`
}

// IsAdmin is derived from the role, never stored, so it cannot go stale.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
