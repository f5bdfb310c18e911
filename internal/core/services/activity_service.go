package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
)

const defaultActivityLimit = 50

// maxActivityLimit caps how much history a single request can pull.
const maxActivityLimit = 500

var auditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "crm_audit_write_failures_total",
	Help: "Number of audit log writes that failed and were dropped.",
})

// activityService implements the ActivitySvcFacade interface
type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityLogRepositoryFacade
}

// NewActivityService creates a new activity service with the provided dependencies
func NewActivityService(activityRepo portsrepo.ActivityLogRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// RecordActivity appends one audit entry. Failures are logged and counted but
// never returned: the mutation the entry describes has already committed.
func (s *activityService) RecordActivity(ctx context.Context, entry domain.ActivityLogEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.activityRepo.SaveEntry(ctx, entry); err != nil {
		auditWriteFailures.Inc()
		s.LogError(ctx, err, "Failed to record activity entry",
			slog.String("action", string(entry.Action)),
			slog.String("entity_type", entry.EntityType),
			slog.String("entity_id", entry.EntityID))
	}
}

// ListRecentActivity returns the newest entries visible to the principal.
func (s *activityService) ListRecentActivity(ctx context.Context, p domain.Principal, limit int) ([]domain.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	scope := domain.ScopeFor(p)
	entries, err := s.activityRepo.ListRecentEntries(ctx, scope, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent activity",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if entries == nil {
		return []domain.ActivityLogEntry{}, nil
	}
	return entries, nil
}

// ListActivityByEntity returns the full history of one entity, newest first.
func (s *activityService) ListActivityByEntity(ctx context.Context, p domain.Principal, entityType, entityID string) ([]domain.ActivityLogEntry, error) {
	entries, err := s.activityRepo.ListEntriesByEntity(ctx, entityType, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activity for entity",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID))
		return nil, err
	}

	if entries == nil {
		return []domain.ActivityLogEntry{}, nil
	}
	return entries, nil
}
