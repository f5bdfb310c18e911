package domain

// Ownership is embedded in every business record a user can own. TeamID is
// copied from the creator's team at creation time and is immutable afterwards;
// only ownership transfer tooling ever changes OwnerID.
type Ownership struct {
	OwnerID string  `json:"ownerID" db:"owner_id"`
	TeamID  *string `json:"teamID,omitempty" db:"team_id"`
}
