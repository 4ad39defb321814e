package processor

import (
	"context"

	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetTournament(ctx context.Context, tournamentID int64) (*enrollment.Tournament, error)
	CountEnrolled(ctx context.Context, tournamentID int64) (int, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
