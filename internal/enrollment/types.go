package enrollment

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/squadup/internal/session"
)

// SquadSize is the number of players on a full team.
const SquadSize = 6

// UnassignedTeam groups roster entries that have no team yet.
const UnassignedTeam = "unassigned"

// store handles all database operations for enrollments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a registered user.
type Player struct {
	ID          int64  `json:"id"`
	BattlenetID string `json:"battlenet_id"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Tournament is read-only from the enrollment side.
type Tournament struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	CreatorID          int64  `json:"creator_user_id"`
	CreatorBattlenetID string `json:"creator_battlenet_id"`
	TeamCount          int    `json:"no_of_teams"`
	Started            bool   `json:"is_started"`
}

// Enrollment is a player's registration in one tournament.
type Enrollment struct {
	ID           int64
	UserID       int64
	TournamentID int64
	TeamID       *int64
	Summary      Summary
	CreatedAt    time.Time
	// Enrolled is the tournament's enrollment count as of this row's commit.
	Enrolled     int
}

// EnrolledPlayer is the projection used by the listing endpoints.
type EnrolledPlayer struct {
	UserID         int64   `json:"id"`
	TournamentName string  `json:"name"`
	BattlenetID    string  `json:"battlenet_id"`
	Avatar         string  `json:"avatar,omitempty"`
	TeamID         *int64  `json:"team_id"`
	TeamName       string  `json:"team_name,omitempty"`
	Level          int     `json:"level"`
	GamesWon       int     `json:"games_won"`
	MedalGold      int     `json:"medal_gold"`
	MedalSilver    int     `json:"medal_silver"`
	MedalBronze    int     `json:"medal_bronze"`
	FirstRole      Role    `json:"first_role"`
	SecondRole     Role    `json:"second_role"`
	ElimsPerMin    float64 `json:"elims_per_min"`
	KDRatio        float64 `json:"k_d_ratio"`
}

// TeamName is a distinct team of a tournament.
type TeamName struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
}

// EnrollPage is what the enrollment screen renders.
type EnrollPage struct {
	Actor      session.Actor
	Player     *Player
	Tournament *Tournament
	Enrolled   []EnrolledPlayer
	IsReady    bool
}

// IsReady reports whether a tournament has exactly enough players to fill every team.
func IsReady(enrolled, teamCount int) bool {
	return enrolled == teamCount*SquadSize
}
