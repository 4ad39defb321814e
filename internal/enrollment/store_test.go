package enrollment_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/squadup/internal/database"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (enrollment.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return enrollment.New(db), db, teardown
}

func insertUser(t *testing.T, db *sql.DB, battlenetID string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO users (battlenet_id, email, avatar) VALUES (?, ?, ?)",
		battlenetID, battlenetID+"@example.com", "https://example.com/"+battlenetID+".png")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertTournament(t *testing.T, db *sql.DB, creatorID int64, teams int) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO tournaments (name, description, creator_user_id, no_of_teams) VALUES (?, ?, ?, ?)",
		"Spring Cup", "weekly scrims", creatorID, teams)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func insertTeam(t *testing.T, db *sql.DB, tournamentID int64, name string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO teams (tournament_id, team_name) VALUES (?, ?)", tournamentID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func sampleSummary() enrollment.Summary {
	return enrollment.Summary{
		Level: 245,
		Roles: []enrollment.RoleTime{
			{Role: enrollment.RoleSupport, Time: 900},
			{Role: enrollment.RoleTank, Time: 300},
			{Role: enrollment.RoleOffense, Time: 0},
			{Role: enrollment.RoleDefense, Time: 0},
		},
		HealingTime: 900,
		ElimsPerMin: 1.5,
		KDRatio:     2,
		GamesWon:    10,
		MedalsGold:  1,
	}
}

func enroll(t *testing.T, store enrollment.Store, userID, tournamentID int64, teamID *int64) {
	t.Helper()
	err := store.InsertEnrollment(context.Background(), &enrollment.Enrollment{
		UserID:       userID,
		TournamentID: tournamentID,
		TeamID:       teamID,
		Summary:      sampleSummary(),
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func teamOf(t *testing.T, db *sql.DB, tournamentID int64, battlenetID string) sql.NullInt64 {
	t.Helper()
	var teamID sql.NullInt64
	err := db.QueryRow(`
		SELECT e.team_id FROM enrollments e JOIN users u ON u.id = e.user_id
		WHERE e.tournament_id = ? AND u.battlenet_id = ?`, tournamentID, battlenetID).Scan(&teamID)
	require.NoError(t, err)
	return teamID
}

func TestStore_GetUserAndTournament(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 2)

	player, err := store.GetUser(ctx, creator)
	require.NoError(t, err)
	assert.Equal(t, "Creator#1000", player.BattlenetID)
	assert.Equal(t, "Creator#1000@example.com", player.Email)

	tournament, err := store.GetTournament(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Cup", tournament.Name)
	assert.Equal(t, creator, tournament.CreatorID)
	assert.Equal(t, "Creator#1000", tournament.CreatorBattlenetID)
	assert.Equal(t, 2, tournament.TeamCount)
	assert.False(t, tournament.Started)

	_, err = store.GetUser(ctx, 999)
	assert.ErrorIs(t, err, enrollment.ErrNotFound)
	_, err = store.GetTournament(ctx, 999)
	assert.ErrorIs(t, err, enrollment.ErrNotFound)
}

func TestStore_InsertEnrollment(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	player := insertUser(t, db, "Ana#2000")
	tournamentID := insertTournament(t, db, creator, 1)

	e := &enrollment.Enrollment{UserID: player, TournamentID: tournamentID, Summary: sampleSummary(), CreatedAt: time.Now()}
	require.NoError(t, store.InsertEnrollment(ctx, e))
	assert.NotZero(t, e.ID)
	assert.Equal(t, 1, e.Enrolled)

	enrolled, err := store.IsEnrolled(ctx, player, tournamentID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	count, err := store.CountEnrolled(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var (
		firstRole, secondRole, roleSummary string
		firstTime, healing                 int64
	)
	err = db.QueryRow(`SELECT first_role, first_role_time_played, second_role, role_summary, healing_time_played
		FROM enrollments WHERE id = ?`, e.ID).Scan(&firstRole, &firstTime, &secondRole, &roleSummary, &healing)
	require.NoError(t, err)
	assert.Equal(t, "support", firstRole)
	assert.Equal(t, int64(900), firstTime)
	assert.Equal(t, "tank", secondRole)
	assert.JSONEq(t, `[{"role":"support","time":900},{"role":"tank","time":300},{"role":"offense","time":0},{"role":"defense","time":0}]`, roleSummary)
	assert.Equal(t, int64(900), healing)

	dup := &enrollment.Enrollment{UserID: player, TournamentID: tournamentID, Summary: sampleSummary(), CreatedAt: time.Now()}
	err = store.InsertEnrollment(ctx, dup)
	assert.ErrorIs(t, err, enrollment.ErrConflict)

	count, err = store.CountEnrolled(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	next := &enrollment.Enrollment{UserID: insertUser(t, db, "Mei#3000"), TournamentID: tournamentID, Summary: sampleSummary(), CreatedAt: time.Now()}
	require.NoError(t, store.InsertEnrollment(ctx, next))
	assert.Equal(t, 2, next.Enrolled)
}

func TestStore_ListingQueries(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 2)
	red := insertTeam(t, db, tournamentID, "Red")
	blue := insertTeam(t, db, tournamentID, "Blue")

	enroll(t, store, insertUser(t, db, "Ana#1"), tournamentID, &red)
	enroll(t, store, insertUser(t, db, "Mei#2"), tournamentID, &blue)
	enroll(t, store, insertUser(t, db, "Zarya#3"), tournamentID, &blue)
	enroll(t, store, insertUser(t, db, "Genji#4"), tournamentID, nil)

	players, err := store.ListEnrolled(ctx, tournamentID)
	require.NoError(t, err)
	assert.Len(t, players, 4)

	info, err := store.GetEnrollmentInfo(ctx, tournamentID, "Mei#2")
	require.NoError(t, err)
	assert.Equal(t, "Blue", info.TeamName)
	require.NotNil(t, info.TeamID)
	assert.Equal(t, blue, *info.TeamID)
	assert.Equal(t, 245, info.Level)
	assert.Equal(t, enrollment.RoleSupport, info.FirstRole)
	assert.Equal(t, "Spring Cup", info.TournamentName)

	unassigned, err := store.GetEnrollmentInfo(ctx, tournamentID, "Genji#4")
	require.NoError(t, err)
	assert.Nil(t, unassigned.TeamID)
	assert.Empty(t, unassigned.TeamName)

	_, err = store.GetEnrollmentInfo(ctx, tournamentID, "Nobody#0")
	assert.ErrorIs(t, err, enrollment.ErrNotFound)

	names, err := store.ListTeamNames(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, []enrollment.TeamName{
		{TeamID: blue, TeamName: "Blue"},
		{TeamID: red, TeamName: "Red"},
	}, names)

	empty, err := store.ListTeamNames(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_SwapTeams(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 2)
	red := insertTeam(t, db, tournamentID, "Red")
	blue := insertTeam(t, db, tournamentID, "Blue")
	enroll(t, store, insertUser(t, db, "Ana#1"), tournamentID, &red)
	enroll(t, store, insertUser(t, db, "Mei#2"), tournamentID, &blue)

	require.NoError(t, store.SwapTeams(ctx, tournamentID, "Ana#1", "Mei#2"))
	assert.Equal(t, blue, teamOf(t, db, tournamentID, "Ana#1").Int64)
	assert.Equal(t, red, teamOf(t, db, tournamentID, "Mei#2").Int64)
}

func TestStore_SwapTeams_UnassignedPlayer(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 1)
	red := insertTeam(t, db, tournamentID, "Red")
	enroll(t, store, insertUser(t, db, "Ana#1"), tournamentID, &red)
	enroll(t, store, insertUser(t, db, "Mei#2"), tournamentID, nil)

	require.NoError(t, store.SwapTeams(ctx, tournamentID, "Ana#1", "Mei#2"))
	assert.False(t, teamOf(t, db, tournamentID, "Ana#1").Valid)
	assert.Equal(t, red, teamOf(t, db, tournamentID, "Mei#2").Int64)
}

func TestStore_SwapTeams_MissingPlayerChangesNothing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 2)
	other := insertTournament(t, db, creator, 2)
	red := insertTeam(t, db, tournamentID, "Red")
	blue := insertTeam(t, db, other, "Blue")
	enroll(t, store, insertUser(t, db, "Ana#1"), tournamentID, &red)
	// enrolled, but in a different tournament
	enroll(t, store, insertUser(t, db, "Mei#2"), other, &blue)

	err := store.SwapTeams(ctx, tournamentID, "Ana#1", "Mei#2")
	require.ErrorIs(t, err, enrollment.ErrNotFound)
	assert.Contains(t, err.Error(), "Mei#2")

	assert.Equal(t, red, teamOf(t, db, tournamentID, "Ana#1").Int64)
	assert.Equal(t, blue, teamOf(t, db, other, "Mei#2").Int64)
}

func TestStore_SwapTeams_FailedSecondUpdateRollsBack(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	creator := insertUser(t, db, "Creator#1000")
	tournamentID := insertTournament(t, db, creator, 2)
	red := insertTeam(t, db, tournamentID, "Red")
	blue := insertTeam(t, db, tournamentID, "Blue")
	enroll(t, store, insertUser(t, db, "Ana#1"), tournamentID, &red)
	enroll(t, store, insertUser(t, db, "Mei#2"), tournamentID, &blue)

	var meiEnrollment int64
	err := db.QueryRow(`SELECT e.id FROM enrollments e JOIN users u ON u.id = e.user_id
		WHERE u.battlenet_id = 'Mei#2'`).Scan(&meiEnrollment)
	require.NoError(t, err)

	// Ana's row is updated first, then the write to Mei's row aborts.
	_, err = db.Exec(fmt.Sprintf(`CREATE TRIGGER block_second_swap BEFORE UPDATE OF team_id ON enrollments
		WHEN NEW.id = %d
		BEGIN SELECT RAISE(ABORT, 'team locked'); END`, meiEnrollment))
	require.NoError(t, err)

	err = store.SwapTeams(ctx, tournamentID, "Ana#1", "Mei#2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team locked")

	assert.Equal(t, red, teamOf(t, db, tournamentID, "Ana#1").Int64)
	assert.Equal(t, blue, teamOf(t, db, tournamentID, "Mei#2").Int64)
}
