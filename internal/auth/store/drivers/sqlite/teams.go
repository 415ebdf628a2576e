package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
)

type teamsRepo struct {
	db dbtx
}

const teamColumns = `id, name, slug, description, created_by, created_at, updated_at`

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	return scanTeam(row)
}

func (r *teamsRepo) GetTeamBySlug(ctx context.Context, slug string) (domain.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE slug = ?`, slug)
	return scanTeam(row)
}

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, slug, description, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, mapStringNull(t.Description), t.CreatedBy,
		utc(t.CreatedAt), utc(t.UpdatedAt),
	)
	return mapConflict(err)
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, t domain.Team) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE teams
		SET name = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, mapStringNull(t.Description), utc(t.UpdatedAt), t.ID,
	)
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

func (r *teamsRepo) DeleteTeam(ctx context.Context, teamID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, teamID)
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

func (r *teamsRepo) ListTeamsForUser(ctx context.Context, userID string) ([]domain.TeamInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, t.description, tm.role,
		       (SELECT COUNT(*) FROM team_members WHERE team_id = t.id) AS member_count
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = ?
		ORDER BY t.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TeamInfo
	for rows.Next() {
		var (
			info domain.TeamInfo
			desc sql.NullString
			role string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Slug, &desc, &role, &info.MemberCount); err != nil {
			return nil, err
		}
		info.Description = mapNullString(desc)
		info.Role = domain.ParseTeamRole(role).String()
		out = append(out, info)
	}
	return out, rows.Err()
}

func scanTeam(row *sql.Row) (domain.Team, error) {
	var (
		t    domain.Team
		desc sql.NullString
	)
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &desc, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	t.Description = mapNullString(desc)
	return t, nil
}
