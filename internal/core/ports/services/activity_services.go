package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// ActivityRecorderSvc is the narrow write side of the audit recorder, embedded
// by every entity service. Recording is best-effort: implementations log
// failures instead of returning them, so a failed audit write never rolls back
// the mutation it describes.
type ActivityRecorderSvc interface {
	// RecordActivity appends one audit entry after a successful mutation.
	RecordActivity(ctx context.Context, entry domain.ActivityLogEntry)
}

// ActivityReaderSvc is the read side of the audit trail.
type ActivityReaderSvc interface {
	// ListRecentActivity returns the newest entries the principal may see,
	// scoped by who performed the action. limit <= 0 falls back to the default
	// of 50.
	ListRecentActivity(ctx context.Context, p domain.Principal, limit int) ([]domain.ActivityLogEntry, error)

	// ListActivityByEntity returns the full history of one entity, including
	// entries whose entity has since been deleted.
	ListActivityByEntity(ctx context.Context, p domain.Principal, entityType, entityID string) ([]domain.ActivityLogEntry, error)
}

// ActivitySvcFacade combines the audit recorder interfaces.
type ActivitySvcFacade interface {
	ActivityRecorderSvc
	ActivityReaderSvc
}
