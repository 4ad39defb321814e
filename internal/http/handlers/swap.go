package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/session"
)

type swapRequest struct {
	BnetID1 string `json:"bnetID1"`
	BnetID2 string `json:"bnetID2"`
}

// parseSwapRequest accepts either a JSON body or form values.
func parseSwapRequest(w http.ResponseWriter, r *http.Request) (swapRequest, error) {
	var req swapRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: malformed JSON body: %w", enrollment.ErrInvalidRequest, err)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: malformed form body: %w", enrollment.ErrInvalidRequest, err)
	}
	req.BnetID1 = r.PostForm.Get("bnetID1")
	req.BnetID2 = r.PostForm.Get("bnetID2")
	return req, nil
}

// SwapTeamsHandler lets the tournament creator exchange the teams of two players.
func SwapTeamsHandler(service *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		actor := session.FromContext(r.Context())
		if !actor.Authenticated() {
			writeError(w, r, fmt.Errorf("%w: sign in to swap players", enrollment.ErrUnauthorized))
			return
		}
		req, err := parseSwapRequest(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := service.SwapTeams(r.Context(), actor, id, req.BnetID1, req.BnetID2); err != nil {
			writeError(w, r, err)
			return
		}
		log.Debug("Swap request handled", "requestID", RequestIDFromContext(r), "tournamentID", id)
		writeJSON(w, http.StatusOK, map[string]string{"status": "swapped"})
	}
}
