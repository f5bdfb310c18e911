package repositories

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// ActivityLogReader defines read operations over the audit trail.
type ActivityLogReader interface {
	// ListRecentEntries retrieves the newest entries visible under the scope.
	// Scoping applies to the entry's user_id (who performed the action), not to
	// the affected entity's owner. Entries with a nil user_id are visible only
	// under an unrestricted scope.
	ListRecentEntries(ctx context.Context, scope domain.Scope, limit int) ([]domain.ActivityLogEntry, error)

	// ListEntriesByEntity retrieves the full history of one entity, newest
	// first. Works after the entity has been deleted.
	ListEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.ActivityLogEntry, error)
}

// ActivityLogWriter appends audit entries. There is deliberately no update or
// delete: the log is append-only.
type ActivityLogWriter interface {
	// SaveEntry appends one audit entry.
	SaveEntry(ctx context.Context, entry domain.ActivityLogEntry) error
}

// ActivityLogRepositoryFacade combines the activity log repository interfaces.
type ActivityLogRepositoryFacade interface {
	ActivityLogReader
	ActivityLogWriter
}
