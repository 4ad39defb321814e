package enrollment

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/mauv0809/squadup/internal/overwatch"
)

// Role is one of the four hero classes a player can queue as.
type Role string

const (
	RoleOffense Role = "offense"
	RoleDefense Role = "defense"
	RoleTank    Role = "tank"
	RoleSupport Role = "support"
)

// roles is the declaration order used to break ties between equal play times.
var roles = [...]Role{RoleOffense, RoleDefense, RoleTank, RoleSupport}

// heroRoles maps each role to its heroes, keyed the way the stats API names them.
var heroRoles = map[Role][]string{
	RoleOffense: {"doomfist", "genji", "mccree", "pharah", "soldier:_76", "sombra", "tracer"},
	RoleDefense: {"bastion", "hanzo", "junkrat", "mei", "torbjörn", "widowmaker"},
	RoleTank:    {"d.va", "orisa", "reinhardt", "roadhog", "winston", "zarya"},
	RoleSupport: {"ana", "lúcio", "mercy", "moira", "symmetra", "zenyatta"},
}

// Roles returns the four roles in declaration order.
func Roles() []Role {
	return roles[:]
}

// RoleHeroes returns a copy of the heroes that belong to role.
func RoleHeroes(role Role) []string {
	return slices.Clone(heroRoles[role])
}

// RoleTime is the cumulative time, in seconds, a player spent on the heroes of one role.
type RoleTime struct {
	Role Role  `json:"role"`
	Time int64 `json:"time"`
}

// Summary is everything derived from a stats document at enrollment time.
type Summary struct {
	Level        int
	Roles        []RoleTime
	HealingTime  int64
	ElimsPerMin  float64
	KDRatio      float64
	GamesWon     int
	MedalsGold   int
	MedalsSilver int
	MedalsBronze int
}

// FirstRole is the role with the most time played.
func (s Summary) FirstRole() RoleTime { return s.Roles[0] }

// SecondRole is the role with the second most time played.
func (s Summary) SecondRole() RoleTime { return s.Roles[1] }

// Summarize computes the role breakdown and performance metrics for a stats document.
func Summarize(doc overwatch.StatsDocument) Summary {
	return Summary{
		Level:        DeriveLevel(doc.Profile.Tier, doc.Profile.Level),
		Roles:        RoleTimes(doc.Heroes),
		HealingTime:  HealingTime(doc.Heroes),
		ElimsPerMin:  ElimsPerMinute(doc.Global.Eliminations, doc.Global.TimePlayed),
		KDRatio:      KillDeathRatio(doc.Global.Eliminations, doc.Global.Deaths),
		GamesWon:     doc.Global.GamesWon,
		MedalsGold:   doc.Global.MedalsGold,
		MedalsSilver: doc.Global.MedalsSilver,
		MedalsBronze: doc.Global.MedalsBronze,
	}
}

// RoleTimes sums time played per role and orders the result from most to least played.
// Heroes missing from the document count as zero.
func RoleTimes(heroes map[string]overwatch.HeroStats) []RoleTime {
	times := make([]RoleTime, 0, len(roles))
	for _, role := range roles {
		var total int64
		for _, hero := range heroRoles[role] {
			if stats, ok := heroes[hero]; ok && stats.TimePlayed > 0 {
				total += stats.TimePlayed
			}
		}
		times = append(times, RoleTime{Role: role, Time: total})
	}
	sort.SliceStable(times, func(i, j int) bool {
		return times[i].Time > times[j].Time
	})
	return times
}

// HealingTime is the total time played on heroes that have done any healing.
func HealingTime(heroes map[string]overwatch.HeroStats) int64 {
	var total int64
	for _, stats := range heroes {
		if stats.HealingDone > 0 && stats.TimePlayed > 0 {
			total += stats.TimePlayed
		}
	}
	return total
}

// ElimsPerMinute divides eliminations by minutes played. No time played yields 0.
func ElimsPerMinute(eliminations int, timePlayedSeconds int64) float64 {
	if timePlayedSeconds <= 0 {
		return 0
	}
	return float64(eliminations) / (float64(timePlayedSeconds) / 60)
}

// KillDeathRatio divides eliminations by deaths.
//
// Zero eliminations always yields 0, whatever the deaths, which keeps rows written by
// the previous version comparable. A player without deaths gets their eliminations
// as the ratio, since JSON has no representation for infinity.
func KillDeathRatio(eliminations, deaths int) float64 {
	if eliminations == 0 {
		return 0
	}
	if deaths == 0 {
		return float64(eliminations)
	}
	return float64(eliminations) / float64(deaths)
}

// DeriveLevel joins the prestige tier and the level digits: tier 2, level 45 is 245.
func DeriveLevel(tier, level int) int {
	if tier <= 0 {
		return level
	}
	joined, err := strconv.Atoi(fmt.Sprintf("%d%d", tier, level))
	if err != nil {
		return level
	}
	return joined
}
