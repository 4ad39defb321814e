package enrollment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-sqlite3"
)

// New creates a new enrollment Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) GetUser(ctx context.Context, userID int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		p             Player
		email, avatar sql.NullString
	)
	err := s.db.QueryRowContext(ctx, "SELECT id, battlenet_id, email, avatar FROM users WHERE id = ?", userID).
		Scan(&p.ID, &p.BattlenetID, &email, &avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	p.Email = email.String
	p.Avatar = avatar.String
	return &p, nil
}

func (s *store) GetTournament(ctx context.Context, tournamentID int64) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Tournament
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.name, t.description, t.creator_user_id, u.battlenet_id, t.no_of_teams, t.is_started
		FROM tournaments t
		JOIN users u ON u.id = t.creator_user_id
		WHERE t.id = ?
	`, tournamentID).Scan(&t.ID, &t.Name, &t.Description, &t.CreatorID, &t.CreatorBattlenetID, &t.TeamCount, &t.Started)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: tournament %d", ErrNotFound, tournamentID)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *store) IsEnrolled(ctx context.Context, userID, tournamentID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND tournament_id = ?)",
		userID, tournamentID,
	).Scan(&exists)
	return exists, err
}

// InsertEnrollment writes one enrollment row and sets e.Enrolled to the tournament's
// count in the same transaction. A second row for the same player and tournament is
// reported as ErrConflict.
func (s *store) InsertEnrollment(ctx context.Context, e *Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roleSummary, err := json.Marshal(e.Summary.Roles)
	if err != nil {
		return err
	}
	first, second := e.Summary.FirstRole(), e.Summary.SecondRole()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO enrollments (
			user_id, tournament_id, team_id, level, role_summary,
			first_role, first_role_time_played, second_role, second_role_time_played,
			medal_gold, medal_silver, medal_bronze, games_won,
			elims_per_min, k_d_ratio, healing_time_played, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.UserID, e.TournamentID, e.TeamID, e.Summary.Level, string(roleSummary),
		first.Role, first.Time, second.Role, second.Time,
		e.Summary.MedalsGold, e.Summary.MedalsSilver, e.Summary.MedalsBronze, e.Summary.GamesWon,
		e.Summary.ElimsPerMin, e.Summary.KDRatio, e.Summary.HealingTime, e.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %d is already enrolled in tournament %d", ErrConflict, e.UserID, e.TournamentID)
		}
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}

	var enrolled int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM enrollments WHERE tournament_id = ?", e.TournamentID).Scan(&enrolled); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	e.Enrolled = enrolled
	log.Info("Inserted enrollment", "userID", e.UserID, "tournamentID", e.TournamentID, "first_role", first.Role, "enrolled", enrolled)
	return nil
}

func (s *store) CountEnrolled(ctx context.Context, tournamentID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enrollments WHERE tournament_id = ?", tournamentID).Scan(&count)
	return count, err
}

const enrolledPlayerColumns = `
	SELECT u.id, t.name, u.battlenet_id, u.avatar, e.team_id, tm.team_name,
		e.level, e.games_won, e.medal_gold, e.medal_silver, e.medal_bronze,
		e.first_role, e.second_role, e.elims_per_min, e.k_d_ratio
	FROM enrollments e
	JOIN users u ON u.id = e.user_id
	JOIN tournaments t ON t.id = e.tournament_id
	LEFT JOIN teams tm ON tm.id = e.team_id
`

// ListEnrolled returns every player enrolled in a tournament ordered by team.
func (s *store) ListEnrolled(ctx context.Context, tournamentID int64) ([]EnrolledPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, enrolledPlayerColumns+`
		WHERE e.tournament_id = ?
		ORDER BY e.team_id ASC, e.id ASC
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []EnrolledPlayer{}
	for rows.Next() {
		p, err := scanEnrolledPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetEnrollmentInfo(ctx context.Context, tournamentID int64, battlenetID string) (*EnrolledPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, enrolledPlayerColumns+`
		WHERE e.tournament_id = ? AND u.battlenet_id = ?
	`, tournamentID, battlenetID)
	p, err := scanEnrolledPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s is not enrolled in tournament %d", ErrNotFound, battlenetID, tournamentID)
	}
	return p, err
}

// scanEnrolledPlayer is a helper function to scan a single enrolled player row.
func scanEnrolledPlayer(scanner interface{ Scan(...any) error }) (*EnrolledPlayer, error) {
	var (
		p                EnrolledPlayer
		avatar, teamName sql.NullString
		teamID           sql.NullInt64
	)
	err := scanner.Scan(
		&p.UserID, &p.TournamentName, &p.BattlenetID, &avatar, &teamID, &teamName,
		&p.Level, &p.GamesWon, &p.MedalGold, &p.MedalSilver, &p.MedalBronze,
		&p.FirstRole, &p.SecondRole, &p.ElimsPerMin, &p.KDRatio,
	)
	if err != nil {
		return nil, err
	}
	p.Avatar = avatar.String
	p.TeamName = teamName.String
	if teamID.Valid {
		id := teamID.Int64
		p.TeamID = &id
	}
	return &p, nil
}

// ListTeamNames returns the distinct teams players are assigned to, highest id first.
func (s *store) ListTeamNames(ctx context.Context, tournamentID int64) ([]TeamName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT e.team_id, tm.team_name
		FROM enrollments e
		JOIN teams tm ON tm.id = e.team_id
		WHERE e.tournament_id = ?
		ORDER BY e.team_id DESC
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []TeamName{}
	for rows.Next() {
		var n TeamName
		if err := rows.Scan(&n.TeamID, &n.TeamName); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// SwapTeams exchanges the team assignments of two enrolled players in one transaction.
// Either both rows change or neither does.
func (s *store) SwapTeams(ctx context.Context, tournamentID int64, battlenetID1, battlenetID2 string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT e.id, u.battlenet_id, e.team_id
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.tournament_id = ? AND u.battlenet_id IN (?, ?)
	`, tournamentID, battlenetID1, battlenetID2)
	if err != nil {
		return err
	}
	type assignment struct {
		enrollmentID int64
		teamID       sql.NullInt64
	}
	found := make(map[string]assignment, 2)
	for rows.Next() {
		var (
			a   assignment
			tag string
		)
		if err := rows.Scan(&a.enrollmentID, &tag, &a.teamID); err != nil {
			rows.Close()
			return err
		}
		found[tag] = a
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, tag := range []string{battlenetID1, battlenetID2} {
		if _, ok := found[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: not enrolled in tournament %d: %s", ErrNotFound, tournamentID, strings.Join(missing, ", "))
	}

	first, second := found[battlenetID1], found[battlenetID2]
	updates := []struct {
		enrollmentID int64
		teamID       sql.NullInt64
	}{
		{first.enrollmentID, second.teamID},
		{second.enrollmentID, first.teamID},
	}
	for _, u := range updates {
		res, err := tx.ExecContext(ctx,
			"UPDATE enrollments SET team_id = ? WHERE id = ? AND tournament_id = ?",
			u.teamID, u.enrollmentID, tournamentID,
		)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil || n != 1 {
			return fmt.Errorf("expected to update one enrollment, updated %d: %v", n, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Swapped teams", "tournamentID", tournamentID, "player1", battlenetID1, "player2", battlenetID2)
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	// remote libsql errors arrive as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
