package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/api/validators"
	"github.com/apexitsupply/apex-backend/internal/newsletter"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

type subscribePayload struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeNewsletter is the public signup form.
func SubscribeNewsletter(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload subscribePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.Subscribe(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, message)
	}
}

// AdminListSubscribers serves the back-office subscriber table.
func AdminListSubscribers(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListSubscribers(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}

// AdminExportSubscribers streams the subscriber list as a CSV download.
func AdminExportSubscribers(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := fmt.Sprintf("subscribers-%s.csv", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := svc.ExportCSV(r.Context(), w); err != nil {
			// headers are already out; log instead of rewriting the response
			if logg != nil {
				logg.Error(r.Context(), "newsletter.export.failed", err)
			}
		}
	}
}
