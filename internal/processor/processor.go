package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, notifier Notifier) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
	}
}

// HandleEvent decodes one event payload and sends the matching notices.
// Unknown events are logged and acknowledged.
func (p *Processor) HandleEvent(ctx context.Context, event pubsub.EventType, data []byte, dryRun bool) error {
	switch event {
	case pubsub.EventEnrollmentCreated:
		var payload pubsub.EnrollmentCreated
		if err := pubsub.Decode(data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return p.handleEnrollmentCreated(ctx, payload, dryRun)
	case pubsub.EventTeamsSwapped:
		var payload pubsub.TeamsSwapped
		if err := pubsub.Decode(data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return p.handleTeamsSwapped(ctx, payload, dryRun)
	default:
		log.Warn("Ignoring unknown event", "event", event)
		return nil
	}
}

func (p *Processor) handleEnrollmentCreated(ctx context.Context, payload pubsub.EnrollmentCreated, dryRun bool) error {
	log.Info("Processing enrollment", "eventID", payload.EventID, "tournamentID", payload.TournamentID, "player", payload.BattlenetID)
	tournament, err := p.store.GetTournament(ctx, payload.TournamentID)
	if err != nil {
		return fmt.Errorf("get tournament %d: %w", payload.TournamentID, err)
	}
	enrolled := payload.Enrolled
	if enrolled <= 0 {
		// events published without a count
		if enrolled, err = p.store.CountEnrolled(ctx, payload.TournamentID); err != nil {
			return fmt.Errorf("count enrolled for tournament %d: %w", payload.TournamentID, err)
		}
	}

	if err := p.notifier.SendPlayerEnrolled(tournament, payload.BattlenetID, enrolled, dryRun); err != nil {
		log.Error("Failed to send enrollment notice", "error", err, "tournamentID", tournament.ID)
	}
	if !enrollment.IsReady(enrolled, tournament.TeamCount) {
		log.Debug("Tournament not ready yet", "tournamentID", tournament.ID, "enrolled", enrolled, "teams", tournament.TeamCount)
		return nil
	}
	log.Info("Tournament is ready", "tournamentID", tournament.ID, "enrolled", enrolled)
	return p.notifier.SendTournamentReady(tournament, enrolled, dryRun)
}

func (p *Processor) handleTeamsSwapped(ctx context.Context, payload pubsub.TeamsSwapped, dryRun bool) error {
	log.Info("Processing team swap", "eventID", payload.EventID, "tournamentID", payload.TournamentID)
	tournament, err := p.store.GetTournament(ctx, payload.TournamentID)
	if err != nil {
		return fmt.Errorf("get tournament %d: %w", payload.TournamentID, err)
	}
	return p.notifier.SendTeamsSwapped(tournament, payload.BattlenetID1, payload.BattlenetID2, dryRun)
}
