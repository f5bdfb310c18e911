package domain

// Team groups profiles; all entities created by members carry the team id and
// become visible to the whole team.
type Team struct {
	TeamID      string `json:"teamID" db:"team_id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"` // unique, lowercase/digits/hyphen only
	Description string `json:"description" db:"description"`
	AuditFields
}

// TeamStats is the aggregate dashboard view of one team's records.
type TeamStats struct {
	TeamID         string `json:"teamID"`
	Name           string `json:"name"`
	MemberCount    int    `json:"memberCount"`
	CustomerCount  int    `json:"customerCount"`
	DealCount      int    `json:"dealCount"`
	TotalDealValue string `json:"totalDealValue"`
	WonDealValue   string `json:"wonDealValue"`
	TaskCount      int    `json:"taskCount"`
	CompletedTasks int    `json:"completedTasks"`
	WinRatePercent int    `json:"winRatePercent"`
}
