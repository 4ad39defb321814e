package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventEnrollmentCreated EventType = "enrollment-created"
	EventTeamsSwapped      EventType = "teams-swapped"
)

// EventAttribute is the message attribute carrying the EventType.
const EventAttribute = "event"

// EnrollmentCreated is published after an enrollment row is committed.
// Enrolled is the tournament's count at that commit.
type EnrollmentCreated struct {
	EventID      string `msgpack:"event_id"`
	TournamentID int64  `msgpack:"tournament_id"`
	UserID       int64  `msgpack:"user_id"`
	BattlenetID  string `msgpack:"battlenet_id"`
	Enrolled     int    `msgpack:"enrolled"`
	OccurredAt   int64  `msgpack:"occurred_at"`
}

// TeamsSwapped is published after two players exchanged teams.
type TeamsSwapped struct {
	EventID      string `msgpack:"event_id"`
	TournamentID int64  `msgpack:"tournament_id"`
	ActorID      int64  `msgpack:"actor_id"`
	BattlenetID1 string `msgpack:"battlenet_id_1"`
	BattlenetID2 string `msgpack:"battlenet_id_2"`
	OccurredAt   int64  `msgpack:"occurred_at"`
}
