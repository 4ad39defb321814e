package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/squadup/internal/database"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/overwatch"
)

const (
	numTeams = 4
	// one short of a full tournament so the last real enrollment triggers the ready notice
	numEnrolled = numTeams*enrollment.SquadSize - 1
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "squadup.db",
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	store := enrollment.New(db)
	runID := uuid.NewString()[:8]

	creatorID := insertUser(db, fmt.Sprintf("Organiser%s#%04d", runID, gofakeit.Number(1000, 9999)))
	res, err := db.Exec("INSERT INTO tournaments (name, description, creator_user_id, no_of_teams) VALUES (?, ?, ?, ?)",
		fmt.Sprintf("%s Cup", gofakeit.City()), gofakeit.Sentence(8), creatorID, numTeams)
	if err != nil {
		log.Fatalf("Failed to insert tournament: %s", err)
	}
	tournamentID, _ := res.LastInsertId()
	log.Info("Created tournament", "tournamentID", tournamentID, "creatorID", creatorID)

	teamIDs := make([]int64, 0, numTeams)
	for i := 0; i < numTeams; i++ {
		res, err := db.Exec("INSERT INTO teams (tournament_id, team_name) VALUES (?, ?)", tournamentID, gofakeit.Animal()+"s")
		if err != nil {
			log.Fatalf("Failed to insert team: %s", err)
		}
		id, _ := res.LastInsertId()
		teamIDs = append(teamIDs, id)
	}

	startTime := time.Now()
	for i := 0; i < numEnrolled; i++ {
		userID := insertUser(db, fmt.Sprintf("%s%d#%04d", gofakeit.FirstName(), i, gofakeit.Number(1000, 9999)))
		teamID := teamIDs[i%numTeams]
		e := &enrollment.Enrollment{
			UserID:       userID,
			TournamentID: tournamentID,
			TeamID:       &teamID,
			Summary:      enrollment.Summarize(fakeStats()),
			CreatedAt:    time.Now(),
		}
		if err := store.InsertEnrollment(ctx, e); err != nil {
			log.Fatalf("Failed to insert enrollment: %s", err)
		}
	}
	log.Info("Successfully seeded enrollments.", "tournamentID", tournamentID, "count", numEnrolled, "duration", time.Since(startTime))
}

func insertUser(db *sql.DB, battlenetID string) int64 {
	res, err := db.Exec("INSERT INTO users (battlenet_id, email, avatar) VALUES (?, ?, ?)",
		battlenetID, gofakeit.Email(), gofakeit.URL())
	if err != nil {
		log.Fatalf("Failed to insert user %s: %s", battlenetID, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// fakeStats builds a plausible stats document with time spread over a few heroes.
func fakeStats() overwatch.StatsDocument {
	heroes := make(map[string]overwatch.HeroStats)
	var total int64
	for _, role := range enrollment.Roles() {
		for _, hero := range enrollment.RoleHeroes(role) {
			if !gofakeit.Bool() {
				continue
			}
			played := int64(gofakeit.Number(0, 20*3600))
			var healing float64
			if role == enrollment.RoleSupport {
				healing = gofakeit.Float64Range(100, 50000)
			}
			heroes[hero] = overwatch.HeroStats{TimePlayed: played, HealingDone: healing}
			total += played
		}
	}
	return overwatch.StatsDocument{
		Profile: overwatch.Profile{Level: gofakeit.Number(1, 100), Tier: gofakeit.Number(0, 5)},
		Global: overwatch.GlobalStats{
			Eliminations: gofakeit.Number(0, 20000),
			Deaths:       gofakeit.Number(0, 10000),
			GamesWon:     gofakeit.Number(0, 1500),
			TimePlayed:   total,
			MedalsGold:   gofakeit.Number(0, 800),
			MedalsSilver: gofakeit.Number(0, 800),
			MedalsBronze: gofakeit.Number(0, 800),
		},
		Heroes: heroes,
	}
}
