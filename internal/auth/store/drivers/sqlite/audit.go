package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
)

type auditRepo struct {
	db dbtx
}

const auditColumns = `id, user_id, team_id, action, resource_type, resource_id,
	details, ip_address, user_agent, created_at`

func (r *auditRepo) RecordAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (`+auditColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, mapStringNull(e.UserID), mapStringNull(e.TeamID), e.Action,
		mapStringNull(e.ResourceType), mapStringNull(e.ResourceID),
		mapStringNull(e.Details), mapStringNull(e.IPAddress),
		mapStringNull(e.UserAgent), utc(e.CreatedAt),
	)
	return err
}

func (r *auditRepo) ListAuditForUser(ctx context.Context, userID string, limit, offset int64) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return scanAuditEntries(rows)
}

func (r *auditRepo) ListAuditForTeam(ctx context.Context, teamID string, limit, offset int64) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log
		WHERE team_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		teamID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return scanAuditEntries(rows)
}

func (r *auditRepo) ListAudit(ctx context.Context, limit, offset int64) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+auditColumns+`
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return scanAuditEntries(rows)
}

func scanAuditEntries(rows *sql.Rows) ([]domain.AuditEntry, error) {
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e                              domain.AuditEntry
			userID, teamID, resType, resID sql.NullString
			details, ip, ua                sql.NullString
		)
		err := rows.Scan(&e.ID, &userID, &teamID, &e.Action, &resType, &resID,
			&details, &ip, &ua, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.UserID = mapNullString(userID)
		e.TeamID = mapNullString(teamID)
		e.ResourceType = mapNullString(resType)
		e.ResourceID = mapNullString(resID)
		e.Details = mapNullString(details)
		e.IPAddress = mapNullString(ip)
		e.UserAgent = mapNullString(ua)
		out = append(out, e)
	}
	return out, rows.Err()
}
