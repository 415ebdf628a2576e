package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
)

type resourcesRepo struct {
	db dbtx
}

func (r *resourcesRepo) GetResourceByID(ctx context.Context, id string) (domain.Resource, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, resource_type, owner_id, team_id, name, created_at
		FROM resources
		WHERE id = ?`,
		id,
	)

	var (
		res    domain.Resource
		teamID sql.NullString
	)
	err := row.Scan(&res.ID, &res.Type, &res.OwnerID, &teamID, &res.Name, &res.CreatedAt)
	if err != nil {
		return domain.Resource{}, mapNotFound(err)
	}
	res.TeamID = mapNullStringPtr(teamID)
	return res, nil
}

func (r *resourcesRepo) CreateResource(ctx context.Context, res domain.Resource) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO resources (id, resource_type, owner_id, team_id, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.Type, res.OwnerID, mapOptionalString(res.TeamID), res.Name,
		utc(res.CreatedAt),
	)
	return mapConflict(err)
}

func (r *resourcesRepo) DeleteResource(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *resourcesRepo) ListResourcesByOwner(ctx context.Context, ownerID string) ([]domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, resource_type, owner_id, team_id, name, created_at
		FROM resources
		WHERE owner_id = ?
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		var (
			res    domain.Resource
			teamID sql.NullString
		)
		if err := rows.Scan(&res.ID, &res.Type, &res.OwnerID, &teamID, &res.Name, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.TeamID = mapNullStringPtr(teamID)
		out = append(out, res)
	}
	return out, rows.Err()
}
