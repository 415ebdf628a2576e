package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
)

type revokedTokensRepo struct {
	db dbtx
}

func (r *revokedTokensRepo) RecordRevokedToken(ctx context.Context, t domain.RevokedToken) error {
	// INSERT OR IGNORE keeps recording idempotent: logout and rotation can
	// both revoke the same token and neither must fail.
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO revoked_tokens (token_hash, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)`,
		t.TokenHash, t.UserID, utc(t.ExpiresAt), utc(t.CreatedAt),
	)
	return err
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, tokenHash string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM revoked_tokens WHERE token_hash = ?`, tokenHash)

	var n int64
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	// datetime() normalises both sides so the comparison stays chronological
	// regardless of how the driver serialised the timestamps.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE datetime(expires_at) <= datetime(?)`, utc(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
