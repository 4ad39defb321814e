package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/metrics"
	"github.com/mauv0809/squadup/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendPlayerEnrolled(tournament *enrollment.Tournament, battlenetID string, enrolled int, dryRun bool) error {
	_, _, err := s.sendMessage(formatPlayerEnrolled(tournament, battlenetID, enrolled), dryRun)
	return err
}

func (s *Notifier) SendTournamentReady(tournament *enrollment.Tournament, enrolled int, dryRun bool) error {
	_, _, err := s.sendMessage(formatTournamentReady(tournament, enrolled), dryRun)
	return err
}

func (s *Notifier) SendTeamsSwapped(tournament *enrollment.Tournament, battlenetID1, battlenetID2 string, dryRun bool) error {
	_, _, err := s.sendMessage(formatTeamsSwapped(tournament, battlenetID1, battlenetID2), dryRun)
	return err
}

func capacity(tournament *enrollment.Tournament) int {
	return tournament.TeamCount * enrollment.SquadSize
}

func formatPlayerEnrolled(tournament *enrollment.Tournament, battlenetID string, enrolled int) slack.Message {
	text := fmt.Sprintf("*%s* enrolled in *%s*", battlenetID, tournament.Name)
	progress := fmt.Sprintf("%d/%d players", enrolled, capacity(tournament))
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", progress, false, false)),
	)
}

func formatTournamentReady(tournament *enrollment.Tournament, enrolled int) slack.Message {
	header := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s is ready!", tournament.Name), true, false)
	details := fmt.Sprintf("%d players enrolled across %d teams of %d.", enrolled, tournament.TeamCount, enrollment.SquadSize)
	blocks := []slack.Block{
		slack.NewHeaderBlock(header),
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, false, false), nil, nil),
	}
	if tournament.CreatorBattlenetID != "" {
		owner := fmt.Sprintf("%s can start the tournament.", tournament.CreatorBattlenetID)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", owner, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatTeamsSwapped(tournament *enrollment.Tournament, battlenetID1, battlenetID2 string) slack.Message {
	text := fmt.Sprintf("*%s* and *%s* swapped teams in *%s*", battlenetID1, battlenetID2, tournament.Name)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
