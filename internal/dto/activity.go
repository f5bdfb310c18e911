package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Activity log DTOs ---

// ActivityLogEntryResponse defines data returned for one audit entry. The
// entity reference is weak: the referenced entity may no longer exist.
type ActivityLogEntryResponse struct {
	EntryID    string    `json:"entryID"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	EntityName string    `json:"entityName"`
	OldValue   *string   `json:"oldValue,omitempty"`
	NewValue   *string   `json:"newValue,omitempty"`
	UserID     *string   `json:"userID,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToActivityLogEntryResponse converts domain.ActivityLogEntry to DTO.
func ToActivityLogEntryResponse(e *domain.ActivityLogEntry) ActivityLogEntryResponse {
	return ActivityLogEntryResponse{
		EntryID:    e.EntryID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		EntityName: e.EntityName,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
	}
}

// ListActivityLogResponse wraps a list of audit entries.
type ListActivityLogResponse struct {
	Entries []ActivityLogEntryResponse `json:"entries"`
}

// ToListActivityLogResponse converts a slice of domain.ActivityLogEntry to DTO.
func ToListActivityLogResponse(es []domain.ActivityLogEntry) ListActivityLogResponse {
	list := make([]ActivityLogEntryResponse, len(es))
	for i, e := range es {
		list[i] = ToActivityLogEntryResponse(&e)
	}
	return ListActivityLogResponse{Entries: list}
}
