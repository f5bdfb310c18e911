package domain

// Profile is the persistent identity record for one external identity. The id
// equals the subject the identity provider issues for the user.
type Profile struct {
	ProfileID string  `json:"profileID" db:"profile_id"`
	Email     string  `json:"email" db:"email"`
	Name      string  `json:"name" db:"name"`
	Role      Role    `json:"role" db:"role"`
	TeamID    *string `json:"teamID,omitempty" db:"team_id"`
	AvatarURL string  `json:"avatarURL,omitempty" db:"avatar_url"`
	AuditFields
}
