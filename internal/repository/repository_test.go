package repository

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"teabag/internal/domain"
	"teabag/internal/my_errors"
	"teabag/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDB connects to the database described by .env.tests and resets every
// table. Tests are skipped when no database is configured.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}

	cfg, err := config.Load("../../.env.tests")
	if err != nil || os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("postgres is not configured")
	}

	ctx := context.Background()
	pool, err := config.MustInitDB(ctx, *cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))

	_, err = pool.Exec(ctx, `TRUNCATE refresh_tokens, notices, team_memberships, teams, cohort_memberships, cohorts, users CASCADE`)
	require.NoError(t, err)

	return pool
}

func createUser(t *testing.T, pool *pgxpool.Pool, email string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, name) VALUES ($1, $1) RETURNING id`, email,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func createCohort(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO cohorts (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestTeamRepository_CreateTeamWithLeader(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool)

	leader := createUser(t, pool, "lead@example.com")
	cohort := createCohort(t, pool, "spring")

	team, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Red", CohortID: cohort, LeaderID: leader})
	require.NoError(t, err)
	assert.Equal(t, leader, team.LeaderID)
	assert.False(t, team.IsPublished)

	got, err := repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, leader, got.Members[0].UserID)

	t.Run("second active team conflicts", func(t *testing.T) {
		_, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Blue", CohortID: cohort, LeaderID: leader})
		assert.ErrorIs(t, err, my_errors.ErrActiveTeamExists)
	})

	t.Run("other cohort is allowed", func(t *testing.T) {
		other := createCohort(t, pool, "autumn")
		_, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Green", CohortID: other, LeaderID: leader})
		assert.NoError(t, err)
	})

	t.Run("disbanded team no longer blocks", func(t *testing.T) {
		_, err := repo.Disband(ctx, team.ID)
		require.NoError(t, err)

		_, err = repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Red again", CohortID: cohort, LeaderID: leader})
		assert.NoError(t, err)
	})

	t.Run("unknown cohort", func(t *testing.T) {
		_, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Ghost", CohortID: uuid.New(), LeaderID: leader})
		assert.ErrorIs(t, err, my_errors.ErrCohortNotFound)
	})
}

func TestTeamRepository_ConcurrentCreate(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool)

	leader := createUser(t, pool, "racer@example.com")
	cohort := createCohort(t, pool, "spring")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Race", CohortID: cohort, LeaderID: leader})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	var active int
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE leader_id = $1 AND cohort_id = $2 AND disbanded_at IS NULL`, leader, cohort,
	).Scan(&active)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	var orphans int
	err = pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams t WHERE NOT EXISTS (SELECT 1 FROM team_memberships m WHERE m.team_id = t.id)`,
	).Scan(&orphans)
	require.NoError(t, err)
	assert.Zero(t, orphans)
}

func TestTeamRepository_Membership(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool)

	leader := createUser(t, pool, "lead@example.com")
	cohort := createCohort(t, pool, "spring")
	team, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Red", CohortID: cohort, LeaderID: leader})
	require.NoError(t, err)

	members := []uuid.UUID{
		createUser(t, pool, "m1@example.com"),
		createUser(t, pool, "m2@example.com"),
	}
	for _, m := range members {
		require.NoError(t, repo.AddMember(ctx, team.ID, m))
	}

	got, err := repo.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 3)

	seen := map[uuid.UUID]bool{}
	for _, m := range got.Members {
		assert.False(t, seen[m.MembershipID], "duplicate membership row")
		seen[m.MembershipID] = true
	}

	assert.ErrorIs(t, repo.AddMember(ctx, team.ID, members[0]), my_errors.ErrAlreadyTeamMember)

	t.Run("member of another active team cannot join", func(t *testing.T) {
		otherLeader := createUser(t, pool, "other@example.com")
		other, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Blue", CohortID: cohort, LeaderID: otherLeader})
		require.NoError(t, err)

		assert.ErrorIs(t, repo.AddMember(ctx, other.ID, members[1]), my_errors.ErrActiveTeamExists)
	})

	t.Run("published teams stop recruiting", func(t *testing.T) {
		_, err := repo.SetPublished(ctx, team.ID, true)
		require.NoError(t, err)

		newcomer := createUser(t, pool, "late@example.com")
		assert.ErrorIs(t, repo.AddMember(ctx, team.ID, newcomer), my_errors.ErrTeamNotRecruiting)
	})

	t.Run("leave", func(t *testing.T) {
		require.NoError(t, repo.RemoveMember(ctx, team.ID, members[0]))
		assert.ErrorIs(t, repo.RemoveMember(ctx, team.ID, members[0]), my_errors.ErrForbidden)
	})

	t.Run("missing team", func(t *testing.T) {
		_, err := repo.GetTeamByID(ctx, uuid.New())
		assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
	})
}

func TestTeamRepository_ListUnpublishedTeams(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool)

	cohort := createCohort(t, pool, "spring")
	open, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Open", CohortID: cohort, LeaderID: createUser(t, pool, "a@example.com")})
	require.NoError(t, err)
	published, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Published", CohortID: cohort, LeaderID: createUser(t, pool, "b@example.com")})
	require.NoError(t, err)
	disbanded, err := repo.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Gone", CohortID: cohort, LeaderID: createUser(t, pool, "c@example.com")})
	require.NoError(t, err)

	_, err = repo.SetPublished(ctx, published.ID, true)
	require.NoError(t, err)
	_, err = repo.Disband(ctx, disbanded.ID)
	require.NoError(t, err)

	teams, err := repo.ListUnpublishedTeams(ctx, cohort)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, open.ID, teams[0].ID)

	empty, err := repo.ListUnpublishedTeams(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNoticeRepository(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	teams := NewTeamRepository(pool)
	repo := NewNoticeRepository(pool)

	leader := createUser(t, pool, "lead@example.com")
	team, err := teams.CreateTeamWithLeader(ctx, domain.NewTeam{Name: "Red", CohortID: createCohort(t, pool, "spring"), LeaderID: leader})
	require.NoError(t, err)

	list, err := repo.ListNoticesByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := repo.CreateNotice(ctx, team.ID, leader, "first")
	require.NoError(t, err)
	_, err = repo.CreateNotice(ctx, team.ID, leader, "second")
	require.NoError(t, err)

	list, err = repo.ListNoticesByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)

	updated, err := repo.UpdateNoticeMessage(ctx, first.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Message)
	assert.Equal(t, first.TeamID, updated.TeamID)
	assert.Equal(t, first.PostedBy, updated.PostedBy)
	assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))

	require.NoError(t, repo.DeleteNotice(ctx, first.ID))
	_, err = repo.GetNoticeByID(ctx, first.ID)
	assert.ErrorIs(t, err, my_errors.ErrNoticeNotFound)

	_, err = repo.CreateNotice(ctx, uuid.New(), leader, "orphan")
	assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
}

func TestRosterRepository_ImportRoster(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewRosterRepository(pool)

	createUser(t, pool, "existing@x.com")

	roster := &domain.Roster{
		Entries: []domain.RosterEntry{
			{Email: "a@x.com", Cohort: "spring"},
			{Email: "b@x.com", Cohort: "spring"},
			{Email: "existing@x.com", Cohort: "spring"},
			{Email: "c@x.com"},
		},
		Parsed:  5,
		Skipped: 1,
	}

	result, err := repo.ImportRoster(ctx, roster)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com", "c@x.com"}, result.InsertedEmails)
	assert.Equal(t, 1, result.CohortsCreated)
	assert.Equal(t, 3, result.MembershipsAdded)

	again, err := repo.ImportRoster(ctx, roster)
	require.NoError(t, err)
	assert.Empty(t, again.InsertedEmails)
	assert.Zero(t, again.CohortsCreated)
	assert.Zero(t, again.MembershipsAdded)

	cohorts, err := NewCohortRepository(pool).ListCohorts(ctx)
	require.NoError(t, err)
	require.Len(t, cohorts, 1)
	assert.Equal(t, "spring", cohorts[0].Name)
}

func TestAuthRepository_RefreshTokens(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewAuthRepository(pool)
	user := createUser(t, pool, "ada@example.com")

	live, expired := uuid.New(), uuid.New()
	require.NoError(t, repo.SaveRefreshToken(ctx, live, user, time.Now().Add(time.Hour)))
	require.NoError(t, repo.SaveRefreshToken(ctx, expired, user, time.Now().Add(-time.Hour)))

	token, err := repo.GetRefreshToken(ctx, live)
	require.NoError(t, err)
	assert.True(t, token.Usable(time.Now()))

	require.NoError(t, repo.RevokeRefreshToken(ctx, live))
	token, err = repo.GetRefreshToken(ctx, live)
	require.NoError(t, err)
	assert.False(t, token.Usable(time.Now()))

	deleted, err := repo.DeleteExpiredRefreshTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.GetRefreshToken(ctx, expired)
	assert.ErrorIs(t, err, my_errors.ErrInvalidToken)
}

func TestAuthRepository_ConsumeRefreshToken_OnlyOnce(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewAuthRepository(pool)
	owner := createUser(t, pool, "ada@example.com")
	other := createUser(t, pool, "bob@example.com")

	live, expired := uuid.New(), uuid.New()
	require.NoError(t, repo.SaveRefreshToken(ctx, live, owner, time.Now().Add(time.Hour)))
	require.NoError(t, repo.SaveRefreshToken(ctx, expired, owner, time.Now().Add(-time.Hour)))

	assert.ErrorIs(t, repo.ConsumeRefreshToken(ctx, live, other), my_errors.ErrInvalidToken)
	assert.ErrorIs(t, repo.ConsumeRefreshToken(ctx, expired, owner), my_errors.ErrInvalidToken)
	assert.ErrorIs(t, repo.ConsumeRefreshToken(ctx, uuid.New(), owner), my_errors.ErrInvalidToken)

	require.NoError(t, repo.ConsumeRefreshToken(ctx, live, owner))
	assert.ErrorIs(t, repo.ConsumeRefreshToken(ctx, live, owner), my_errors.ErrInvalidToken)

	token, err := repo.GetRefreshToken(ctx, live)
	require.NoError(t, err)
	assert.NotNil(t, token.RevokedAt)
}

func TestAuthRepository_ConsumeRefreshToken_Concurrent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewAuthRepository(pool)
	owner := createUser(t, pool, "ada@example.com")

	tokenID := uuid.New()
	require.NoError(t, repo.SaveRefreshToken(ctx, tokenID, owner, time.Now().Add(time.Hour)))

	const attempts = 8
	var wg sync.WaitGroup
	var won atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.ConsumeRefreshToken(ctx, tokenID, owner); err == nil {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, won.Load())
}

func TestUserRepository_UpsertGoogleUser(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	// roster-provisioned user signs in for the first time
	id := createUser(t, pool, "ada@example.com")

	user, err := repo.UpsertGoogleUser(ctx, &domain.ExternalIdentity{Subject: "g-1", Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, "g-1", *user.GoogleID)

	touched, err := repo.TouchLogin(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, id, touched.ID)
	assert.NotNil(t, touched.LastLoginAt)

	_, err = repo.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, my_errors.ErrUserNotFound)
}
