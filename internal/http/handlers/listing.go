package handlers

import (
	"net/http"

	"github.com/mauv0809/squadup/internal/enrollment"
)

// EnrollmentInfoHandler returns one player's enrollment record, selected by ?bnetID=.
func EnrollmentInfoHandler(service *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		info, err := service.EnrollmentInfo(r.Context(), id, r.URL.Query().Get("bnetID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func TeamNamesHandler(service *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		names, err := service.TeamNames(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, names)
	}
}

// RosterHandler returns every enrolled player grouped by team, selected by ?tournamentID=.
func RosterHandler(service *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.URL.Query().Get("tournamentID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		roster, err := service.Roster(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, roster)
	}
}
