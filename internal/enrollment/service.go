package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/squadup/internal/metrics"
	"github.com/mauv0809/squadup/internal/overwatch"
	"github.com/mauv0809/squadup/internal/pubsub"
	"github.com/mauv0809/squadup/internal/session"
)

// Options configure how the service talks to the stats API.
type Options struct {
	Platform     string
	Region       string
	StatsTimeout time.Duration
}

// Service implements enrollment creation, listing and team swaps.
type Service struct {
	store     Store
	stats     overwatch.StatsClient
	publisher pubsub.PubSubClient
	metrics   metrics.Metrics
	opts      Options
	now       func() time.Time
}

// NewService creates a new enrollment Service.
func NewService(store Store, stats overwatch.StatsClient, publisher pubsub.PubSubClient, m metrics.Metrics, opts Options) *Service {
	if opts.StatsTimeout <= 0 {
		opts.StatsTimeout = 10 * time.Second
	}
	return &Service{
		store:     store,
		stats:     stats,
		publisher: publisher,
		metrics:   m,
		opts:      opts,
		now:       time.Now,
	}
}

// Enroll registers the session player in a tournament, snapshotting their stats.
func (s *Service) Enroll(ctx context.Context, actor session.Actor, tournamentID int64) (*Enrollment, error) {
	e, err := s.enroll(ctx, actor, tournamentID)
	if err != nil {
		s.metrics.IncEnrollmentsRejected(Kind(err))
		log.Warn("Enrollment rejected", "tournamentID", tournamentID, "playerID", actor.PlayerID, "error", err)
		return nil, err
	}
	s.metrics.IncEnrollmentsCreated()
	log.Info("Player enrolled", "tournamentID", tournamentID, "playerID", actor.PlayerID, "level", e.Summary.Level)
	return e, nil
}

func (s *Service) enroll(ctx context.Context, actor session.Actor, tournamentID int64) (*Enrollment, error) {
	if !actor.Authenticated() {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	player, err := s.store.GetUser(ctx, actor.PlayerID)
	if err != nil {
		return nil, passThrough("get user", err)
	}
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, passThrough("get tournament", err)
	}
	if tournament.CreatorID == player.ID {
		return nil, fmt.Errorf("%w: the creator of tournament %d cannot enroll in it", ErrConflict, tournamentID)
	}
	enrolled, err := s.store.IsEnrolled(ctx, player.ID, tournamentID)
	if err != nil {
		return nil, passThrough("check enrollment", err)
	}
	if enrolled {
		return nil, fmt.Errorf("%w: %s is already enrolled in tournament %d", ErrConflict, player.BattlenetID, tournamentID)
	}

	doc, err := s.fetchStats(ctx, player.BattlenetID)
	if err != nil {
		return nil, err
	}

	e := &Enrollment{
		UserID:       player.ID,
		TournamentID: tournamentID,
		Summary:      Summarize(doc),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.InsertEnrollment(ctx, e); err != nil {
		return nil, passThrough("insert enrollment", err)
	}

	s.publish(ctx, pubsub.EventEnrollmentCreated, pubsub.EnrollmentCreated{
		EventID:      uuid.NewString(),
		TournamentID: tournamentID,
		UserID:       player.ID,
		BattlenetID:  player.BattlenetID,
		Enrolled:     e.Enrolled,
		OccurredAt:   e.CreatedAt.Unix(),
	})
	return e, nil
}

func (s *Service) fetchStats(ctx context.Context, battlenetID string) (overwatch.StatsDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.StatsTimeout)
	defer cancel()

	start := s.now()
	doc, err := s.stats.FetchStats(ctx, s.opts.Platform, s.opts.Region, battlenetID)
	s.metrics.ObserveStatsFetchDuration(time.Since(start).Seconds())
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, overwatch.ErrPlayerNotFound):
		return doc, fmt.Errorf("%w: no stats for %s: %w", ErrNotFound, battlenetID, err)
	default:
		return doc, fmt.Errorf("%w: fetch stats for %s: %w", ErrUpstream, battlenetID, err)
	}
}

// SwapTeams exchanges the teams of two enrolled players. Only the tournament creator may do this.
func (s *Service) SwapTeams(ctx context.Context, actor session.Actor, tournamentID int64, battlenetID1, battlenetID2 string) error {
	if !actor.Authenticated() {
		return fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return passThrough("get tournament", err)
	}
	if tournament.CreatorID != actor.PlayerID {
		return fmt.Errorf("%w: player %d did not create tournament %d", ErrUnauthorized, actor.PlayerID, tournamentID)
	}
	battlenetID1 = strings.TrimSpace(battlenetID1)
	battlenetID2 = strings.TrimSpace(battlenetID2)
	if battlenetID1 == "" || battlenetID2 == "" {
		return fmt.Errorf("%w: two players are required", ErrInvalidRequest)
	}
	if battlenetID1 == battlenetID2 {
		return fmt.Errorf("%w: cannot swap %s with itself", ErrInvalidRequest, battlenetID1)
	}
	if err := s.store.SwapTeams(ctx, tournamentID, battlenetID1, battlenetID2); err != nil {
		return passThrough("swap teams", err)
	}

	s.metrics.IncTeamSwaps()
	log.Info("Swapped teams", "tournamentID", tournamentID, "player1", battlenetID1, "player2", battlenetID2)
	s.publish(ctx, pubsub.EventTeamsSwapped, pubsub.TeamsSwapped{
		EventID:      uuid.NewString(),
		TournamentID: tournamentID,
		ActorID:      actor.PlayerID,
		BattlenetID1: battlenetID1,
		BattlenetID2: battlenetID2,
		OccurredAt:   s.now().UTC().Unix(),
	})
	return nil
}

// EnrollmentInfo returns one enrolled player's record.
func (s *Service) EnrollmentInfo(ctx context.Context, tournamentID int64, battlenetID string) (*EnrolledPlayer, error) {
	battlenetID = strings.TrimSpace(battlenetID)
	if battlenetID == "" {
		return nil, fmt.Errorf("%w: bnetID is required", ErrInvalidRequest)
	}
	info, err := s.store.GetEnrollmentInfo(ctx, tournamentID, battlenetID)
	if err != nil {
		return nil, passThrough("get enrollment info", err)
	}
	return info, nil
}

// TeamNames lists the distinct teams players are enrolled in.
func (s *Service) TeamNames(ctx context.Context, tournamentID int64) ([]TeamName, error) {
	names, err := s.store.ListTeamNames(ctx, tournamentID)
	if err != nil {
		return nil, passThrough("list team names", err)
	}
	if names == nil {
		names = []TeamName{}
	}
	return names, nil
}

// Roster groups every enrolled player by team name.
func (s *Service) Roster(ctx context.Context, tournamentID int64) (map[string][]EnrolledPlayer, error) {
	players, err := s.store.ListEnrolled(ctx, tournamentID)
	if err != nil {
		return nil, passThrough("list enrolled", err)
	}
	roster := make(map[string][]EnrolledPlayer)
	for _, p := range players {
		team := p.TeamName
		if p.TeamID == nil || team == "" {
			team = UnassignedTeam
		}
		roster[team] = append(roster[team], p)
	}
	return roster, nil
}

// EnrollPage assembles the enrollment screen for the session player.
func (s *Service) EnrollPage(ctx context.Context, actor session.Actor, tournamentID int64) (*EnrollPage, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, passThrough("get tournament", err)
	}
	if !actor.Authenticated() {
		return nil, fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	player, err := s.store.GetUser(ctx, actor.PlayerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown session player %d", ErrUnauthorized, actor.PlayerID)
		}
		return nil, passThrough("get user", err)
	}
	if tournament.CreatorID == player.ID {
		return nil, fmt.Errorf("%w: the creator of tournament %d cannot enroll in it", ErrConflict, tournamentID)
	}
	enrolled, err := s.store.IsEnrolled(ctx, player.ID, tournamentID)
	if err != nil {
		return nil, passThrough("check enrollment", err)
	}
	if enrolled {
		return nil, fmt.Errorf("%w: %s is already enrolled in tournament %d", ErrConflict, player.BattlenetID, tournamentID)
	}
	players, err := s.store.ListEnrolled(ctx, tournamentID)
	if err != nil {
		return nil, passThrough("list enrolled", err)
	}
	return &EnrollPage{
		Actor:      actor,
		Player:     player,
		Tournament: tournament,
		Enrolled:   players,
		IsReady:    IsReady(len(players), tournament.TeamCount),
	}, nil
}

// publish sends an event after a committed write. Failures are logged, not returned:
// the write already happened.
func (s *Service) publish(ctx context.Context, event pubsub.EventType, data any) {
	if err := s.publisher.Publish(ctx, event, data); err != nil {
		log.Error("Failed to publish event", "event", event, "error", err)
		return
	}
	s.metrics.IncEventsPublished(string(event))
}

// passThrough keeps store errors that already carry a kind and marks the rest as
// persistence failures.
func passThrough(op string, err error) error {
	for _, known := range []error{ErrNotFound, ErrConflict, ErrUnauthorized, ErrInvalidRequest} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
