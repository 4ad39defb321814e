package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/pubsub"
)

// EventHandler is satisfied by *processor.Processor.
type EventHandler interface {
	HandleEvent(ctx context.Context, event pubsub.EventType, data []byte, dryRun bool) error
}

// pushMessage is the envelope Pub/Sub push subscriptions POST to us.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}

// EventPushHandler receives Pub/Sub push deliveries and hands them to the processor.
// A non-2xx reply makes Pub/Sub redeliver the message.
func EventPushHandler(processor EventHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		event := pubsub.EventType(msg.Message.Attributes[pubsub.EventAttribute])
		if err := processor.HandleEvent(r.Context(), event, rawData, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle event", "error", err, "event", event, "messageID", msg.Message.MessageID)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
