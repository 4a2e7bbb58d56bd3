package repository

import (
	"context"
	"errors"
	"fmt"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	teamColumns = `id, name, description, cohort_id, leader_id, is_published, created_at, disbanded_at`

	constraintActiveLeader = "teams_one_active_per_leader"
	constraintTeamCohort   = "teams_cohort_id_fkey"
	constraintTeamLeader   = "teams_leader_id_fkey"
	constraintMemberUnique = "team_memberships_user_id_team_id_key"
)

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var team domain.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.CohortID,
		&team.LeaderID,
		&team.IsPublished,
		&team.CreatedAt,
		&team.DisbandedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// ListUnpublishedTeams returns the active teams of a cohort that are still unpublished.
func (r *TeamRepository) ListUnpublishedTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error) {
	query := `
        SELECT ` + teamColumns + `
        FROM teams
        WHERE cohort_id = $1 AND is_published = FALSE AND disbanded_at IS NULL
        ORDER BY created_at DESC
    `
	rows, err := r.pool.Query(ctx, query, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

// GetTeamByID loads the team with one row per membership.
func (r *TeamRepository) GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	query := `
        SELECT t.id, t.name, t.description, t.cohort_id, t.leader_id, t.is_published, t.created_at, t.disbanded_at,
               tm.id, tm.user_id, tm.created_at, u.name, u.email
        FROM teams t
        LEFT JOIN team_memberships tm ON tm.team_id = t.id
        LEFT JOIN users u ON u.id = tm.user_id
        WHERE t.id = $1
        ORDER BY tm.created_at, tm.id
    `
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	defer rows.Close()

	var team *domain.Team
	for rows.Next() {
		var (
			t            domain.Team
			membershipID pgtype.UUID
			memberID     pgtype.UUID
			joinedAt     pgtype.Timestamptz
			memberName   pgtype.Text
			memberEmail  pgtype.Text
		)
		err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.CohortID, &t.LeaderID, &t.IsPublished, &t.CreatedAt, &t.DisbandedAt,
			&membershipID, &memberID, &joinedAt, &memberName, &memberEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}

		if team == nil {
			t.Members = []domain.TeamMember{}
			team = &t
		}
		if !membershipID.Valid {
			continue
		}
		team.Members = append(team.Members, domain.TeamMember{
			MembershipID: uuid.UUID(membershipID.Bytes),
			UserID:       uuid.UUID(memberID.Bytes),
			JoinedAt:     joinedAt.Time,
			Name:         memberName.String,
			Email:        memberEmail.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team rows: %w", err)
	}

	if team == nil {
		return nil, fmt.Errorf("%w", my_errors.ErrTeamNotFound)
	}
	return team, nil
}

func (r *TeamRepository) GetLeaderID(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	var leaderID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT leader_id FROM teams WHERE id = $1`, teamID).Scan(&leaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%w", my_errors.ErrTeamNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to get team leader: %w", err)
	}
	return leaderID, nil
}

func hasActiveTeam(ctx context.Context, tx pgx.Tx, userID, cohortID uuid.UUID) (bool, error) {
	query := `
        SELECT EXISTS(
            SELECT 1
            FROM team_memberships tm
            JOIN teams t ON t.id = tm.team_id
            WHERE tm.user_id = $1 AND t.cohort_id = $2 AND t.disbanded_at IS NULL
        )
    `
	var exists bool
	if err := tx.QueryRow(ctx, query, userID, cohortID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active team: %w", err)
	}
	return exists, nil
}

func insertMembership(ctx context.Context, tx pgx.Tx, teamID, userID uuid.UUID) error {
	query := `INSERT INTO team_memberships (team_id, user_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, query, teamID, userID); err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// CreateTeamWithLeader inserts the team and the leader's membership atomically.
// The active-team check runs under SERIALIZABLE isolation so concurrent
// requests from the same user cannot both pass it.
func (r *TeamRepository) CreateTeamWithLeader(ctx context.Context, newTeam domain.NewTeam) (*domain.Team, error) {
	var created *domain.Team

	err := runInTx(ctx, r.pool, serializable, func(tx pgx.Tx) error {
		active, err := hasActiveTeam(ctx, tx, newTeam.LeaderID, newTeam.CohortID)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("%w", my_errors.ErrActiveTeamExists)
		}

		query := `
            INSERT INTO teams (name, description, cohort_id, leader_id)
            VALUES ($1, $2, $3, $4)
            RETURNING ` + teamColumns
		team, err := scanTeam(tx.QueryRow(ctx, query, newTeam.Name, newTeam.Description, newTeam.CohortID, newTeam.LeaderID))
		if err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		if err := insertMembership(ctx, tx, team.ID, newTeam.LeaderID); err != nil {
			return err
		}

		created = team
		return nil
	})
	if err != nil {
		return nil, translateTeamError(err)
	}

	return created, nil
}

// AddMember joins userID to an active, unpublished team.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	err := runInTx(ctx, r.pool, serializable, func(tx pgx.Tx) error {
		var (
			cohortID    uuid.UUID
			isPublished bool
			disbanded   pgtype.Timestamptz
		)
		err := tx.QueryRow(ctx,
			`SELECT cohort_id, is_published, disbanded_at FROM teams WHERE id = $1`, teamID,
		).Scan(&cohortID, &isPublished, &disbanded)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w", my_errors.ErrTeamNotFound)
			}
			return fmt.Errorf("failed to get team: %w", err)
		}
		if disbanded.Valid {
			return fmt.Errorf("%w", my_errors.ErrTeamDisbanded)
		}
		if isPublished {
			return fmt.Errorf("%w", my_errors.ErrTeamNotRecruiting)
		}

		var member bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM team_memberships WHERE team_id = $1 AND user_id = $2)`, teamID, userID,
		).Scan(&member)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if member {
			return fmt.Errorf("%w", my_errors.ErrAlreadyTeamMember)
		}

		active, err := hasActiveTeam(ctx, tx, userID, cohortID)
		if err != nil {
			return err
		}
		if active {
			return fmt.Errorf("%w", my_errors.ErrActiveTeamExists)
		}

		return insertMembership(ctx, tx, teamID, userID)
	})
	if err != nil {
		return translateTeamError(err)
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_memberships WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("not a member of this team: %w", my_errors.ErrForbidden)
	}
	return nil
}

func (r *TeamRepository) SetPublished(ctx context.Context, teamID uuid.UUID, published bool) (*domain.Team, error) {
	query := `
        UPDATE teams
        SET is_published = $2
        WHERE id = $1 AND disbanded_at IS NULL
        RETURNING ` + teamColumns
	team, err := scanTeam(r.pool.QueryRow(ctx, query, teamID, published))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrTeamDisbanded)
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// Disband soft-deletes the team. It is one-way.
func (r *TeamRepository) Disband(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	query := `
        UPDATE teams
        SET disbanded_at = NOW()
        WHERE id = $1 AND disbanded_at IS NULL
        RETURNING ` + teamColumns
	team, err := scanTeam(r.pool.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrTeamDisbanded)
		}
		return nil, fmt.Errorf("failed to disband team: %w", err)
	}
	return team, nil
}

func translateTeamError(err error) error {
	switch {
	case isPgError(err, pgUniqueViolation) && constraintName(err) == constraintActiveLeader:
		return fmt.Errorf("%w", my_errors.ErrActiveTeamExists)
	case isPgError(err, pgUniqueViolation) && constraintName(err) == constraintMemberUnique:
		return fmt.Errorf("%w", my_errors.ErrAlreadyTeamMember)
	case isPgError(err, pgForeignKeyViolation) && constraintName(err) == constraintTeamCohort:
		return fmt.Errorf("%w", my_errors.ErrCohortNotFound)
	case isPgError(err, pgForeignKeyViolation) && constraintName(err) == constraintTeamLeader:
		return fmt.Errorf("%w", my_errors.ErrUserNotFound)
	default:
		return err
	}
}
