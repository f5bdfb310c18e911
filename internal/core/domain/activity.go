package domain

import "time"

// ActivityAction names the kind of mutation an audit entry records.
type ActivityAction string

const (
	ActionCreated      ActivityAction = "created"
	ActionUpdated      ActivityAction = "updated"
	ActionDeleted      ActivityAction = "deleted"
	ActionStageChanged ActivityAction = "stage_changed"
	ActionCompleted    ActivityAction = "completed"
	ActionReopened     ActivityAction = "reopened"
)

// Entity type names used in audit entries.
const (
	EntityCustomer    = "customer"
	EntityCompany     = "company"
	EntityDeal        = "deal"
	EntityTask        = "task"
	EntityInteraction = "interaction"
)

// ActivityLogEntry is one append-only audit record. It references the affected
// entity by (EntityType, EntityID) only, a weak reference that stays readable
// after the entity is deleted. UserID is nil for legacy or system-originated
// entries; readers must tolerate that.
type ActivityLogEntry struct {
	EntryID    string         `json:"entryID" db:"entry_id"`
	Action     ActivityAction `json:"action" db:"action"`
	EntityType string         `json:"entityType" db:"entity_type"`
	EntityID   string         `json:"entityID" db:"entity_id"`
	EntityName string         `json:"entityName" db:"entity_name"`
	OldValue   *string        `json:"oldValue,omitempty" db:"old_value"`
	NewValue   *string        `json:"newValue,omitempty" db:"new_value"`
	UserID     *string        `json:"userID,omitempty" db:"user_id"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}
