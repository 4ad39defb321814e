package overwatch

import "errors"

var (
	// ErrPlayerNotFound is returned when the stats API does not know the account handle.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrIncompleteStats is returned when the stats document lacks a section we rely on.
	ErrIncompleteStats = errors.New("incomplete stats document")
)

// StatsDocument is a player's quickplay statistics as returned by the stats API.
// All durations are in seconds.
type StatsDocument struct {
	Profile Profile
	Global  GlobalStats
	Heroes  map[string]HeroStats
}

// Profile holds the account level information.
type Profile struct {
	Nick   string
	Level  int
	Tier   int
	Avatar string
}

// GlobalStats holds aggregates across all heroes.
type GlobalStats struct {
	Eliminations int
	Deaths       int
	GamesWon     int
	TimePlayed   int64
	MedalsGold   int
	MedalsSilver int
	MedalsBronze int
}

// HeroStats holds the per-hero values used for role summaries.
type HeroStats struct {
	TimePlayed  int64
	HealingDone float64
}

// statsResponse defines the structure for the JSON response from the stats API.
type statsResponse struct {
	Profile   *profileResponse   `json:"profile"`
	Quickplay *quickplayResponse `json:"quickplay"`
}

type profileResponse struct {
	Nick   string `json:"nick"`
	Level  int    `json:"level"`
	Tier   int    `json:"tier"`
	Avatar string `json:"avatar"`
}

type quickplayResponse struct {
	Global *globalResponse          `json:"global"`
	Heroes map[string]heroResponse `json:"heroes"`
}

type globalResponse struct {
	Eliminations int   `json:"eliminations"`
	Deaths       int   `json:"deaths"`
	GamesWon     int   `json:"games_won"`
	TimePlayed   int64 `json:"time_played"`
	MedalsGold   int   `json:"medals_gold"`
	MedalsSilver int   `json:"medals_silver"`
	MedalsBronze int   `json:"medals_bronze"`
}

type heroResponse struct {
	TimePlayed  int64   `json:"time_played"`
	HealingDone float64 `json:"healing_done"`
}
