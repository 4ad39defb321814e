package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/enrollment"
	"github.com/mauv0809/squadup/internal/session"
)

// SignUpPath is where anonymous visitors are sent to create an account.
const SignUpPath = "/users/new"

type errorPage struct {
	Title   string
	Message string
}

func render(w http.ResponseWriter, tmpl *template.Template, name string, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// EnrollPageHandler renders the enrollment screen of a tournament.
func EnrollPageHandler(service *enrollment.Service, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			render(w, tmpl, "error.html", http.StatusNotFound, errorPage{"Not found", "This tournament does not exist."})
			return
		}

		page, err := service.EnrollPage(r.Context(), session.FromContext(r.Context()), id)
		switch {
		case err == nil:
			render(w, tmpl, "enroll.html", http.StatusOK, page)
		case errors.Is(err, enrollment.ErrUnauthorized):
			http.Redirect(w, r, SignUpPath, http.StatusFound)
		case errors.Is(err, enrollment.ErrNotFound):
			render(w, tmpl, "error.html", http.StatusNotFound, errorPage{"Not found", "This tournament does not exist."})
		case errors.Is(err, enrollment.ErrConflict):
			log.Info("Enroll page refused", "tournamentID", id, "error", err)
			render(w, tmpl, "error.html", http.StatusBadRequest, errorPage{"Cannot enroll", "You are already enrolled in this tournament or you organise it."})
		default:
			log.Error("Failed to build enroll page", "tournamentID", id, "error", err)
			render(w, tmpl, "error.html", http.StatusInternalServerError, errorPage{"Something went wrong", "Please try again later."})
		}
	}
}

// EnrollHandler enrolls the session player and redirects to the tournament page.
func EnrollHandler(service *enrollment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		actor := session.FromContext(r.Context())
		if !actor.Authenticated() {
			http.Redirect(w, r, SignUpPath, http.StatusSeeOther)
			return
		}

		if _, err := service.Enroll(r.Context(), actor, id); err != nil {
			writeError(w, r, err)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/tournaments/%d", id), http.StatusSeeOther)
	}
}
