package notifier

import "github.com/mauv0809/squadup/internal/enrollment"

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For every new enrollment
	SendPlayerEnrolled(tournament *enrollment.Tournament, battlenetID string, enrolled int, dryRun bool) error
	// Once every team can be filled
	SendTournamentReady(tournament *enrollment.Tournament, enrolled int, dryRun bool) error
	// After the creator exchanged two players
	SendTeamsSwapped(tournament *enrollment.Tournament, battlenetID1, battlenetID2 string, dryRun bool) error
}
