package sqlite

import (
	"context"

	"github.com/aussiebroadwan/pilotba/internal/auth/domain"
	"github.com/aussiebroadwan/pilotba/internal/auth/store"
)

type membersRepo struct {
	db dbtx
}

func (r *membersRepo) GetMember(ctx context.Context, teamID, userID string) (domain.TeamMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT team_id, user_id, role, created_at
		FROM team_members
		WHERE team_id = ? AND user_id = ?`,
		teamID, userID,
	)

	var (
		m    domain.TeamMember
		role string
	)
	if err := row.Scan(&m.TeamID, &m.UserID, &role, &m.CreatedAt); err != nil {
		return domain.TeamMember{}, mapNotFound(err)
	}
	m.Role = domain.ParseTeamRole(role)
	return m, nil
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.TeamMember) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_members (team_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)`,
		m.TeamID, m.UserID, m.Role.String(), utc(m.CreatedAt),
	)
	return mapConflict(err)
}

func (r *membersRepo) UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.TeamRole) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE team_members SET role = ? WHERE team_id = ? AND user_id = ?`,
		role.String(), teamID, userID,
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

func (r *membersRepo) RemoveMember(ctx context.Context, teamID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM team_members WHERE team_id = ? AND user_id = ?`,
		teamID, userID,
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

func (r *membersRepo) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMemberInfo, error) {
	// Owners first, then admins, members, viewers; name breaks ties. Roles are
	// stored as text so the rank has to be spelled out.
	rows, err := r.db.QueryContext(ctx, `
		SELECT tm.user_id, u.email, u.name, tm.role, tm.created_at
		FROM team_members tm
		INNER JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = ?
		ORDER BY CASE tm.role
			WHEN 'owner' THEN 0
			WHEN 'admin' THEN 1
			WHEN 'member' THEN 2
			ELSE 3
		END, u.name`,
		teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TeamMemberInfo
	for rows.Next() {
		var (
			info domain.TeamMemberInfo
			role string
		)
		if err := rows.Scan(&info.UserID, &info.Email, &info.Name, &role, &info.JoinedAt); err != nil {
			return nil, err
		}
		info.Role = domain.ParseTeamRole(role).String()
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *membersRepo) CountTeamMembers(ctx context.Context, teamID string) (int64, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = ?`, teamID)

	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
