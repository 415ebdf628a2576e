package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
	"github.com/aussiebroadwan/pilotba/pkg/idx"
	"github.com/aussiebroadwan/pilotba/pkg/slogx"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// AuditService records who did what and reads it back. Recording is
// best-effort: a failed write is logged and swallowed so an audit outage can
// never fail the operation it describes.
type AuditService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *AuditService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Record persists one audit entry. ID and CreatedAt are assigned here; the
// caller fills in the who, what and where.
func (s *AuditService) Record(ctx context.Context, e domain.AuditEntry) {
	e.ID = idx.New().String()
	e.CreatedAt = s.now()

	if err := s.Store.Audit().RecordAuditEntry(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("audit write failed",
			slog.String("action", e.Action),
			slog.Any("error", err),
		)
	}
}

// ListForUser returns a page of one user's audit trail, newest first.
func (s *AuditService) ListForUser(ctx context.Context, userID string, limit, offset int64) ([]domain.AuditEntry, error) {
	limit, offset = clampAuditPage(limit, offset)
	entries, err := s.Store.Audit().ListAuditForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}

// ListForTeam returns a page of one team's audit trail, newest first.
func (s *AuditService) ListForTeam(ctx context.Context, teamID string, limit, offset int64) ([]domain.AuditEntry, error) {
	limit, offset = clampAuditPage(limit, offset)
	entries, err := s.Store.Audit().ListAuditForTeam(ctx, teamID, limit, offset)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}

// ListAll returns a page of the platform-wide audit trail, newest first.
func (s *AuditService) ListAll(ctx context.Context, limit, offset int64) ([]domain.AuditEntry, error) {
	limit, offset = clampAuditPage(limit, offset)
	entries, err := s.Store.Audit().ListAudit(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}

// clampAuditPage forces limit and offset into sane bounds so a hostile
// query string cannot ask the store for the whole table.
func clampAuditPage(limit, offset int64) (int64, int64) {
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
