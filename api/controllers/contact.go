package controllers

import (
	"net/http"

	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/api/validators"
	"github.com/apexitsupply/apex-backend/internal/contact"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

type contactPayload struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Message string  `json:"message" validate:"required"`
}

// SubmitContactMessage is the public contact form.
func SubmitContactMessage(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.SubmitMessage(r.Context(), contact.MessageInput{
			Name:    validators.SanitizeString(payload.Name, 200),
			Email:   payload.Email,
			Phone:   payload.Phone,
			Company: payload.Company,
			Message: validators.SanitizeString(payload.Message, 5000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, message)
	}
}

type callbackPayload struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	PreferredTime *string `json:"preferred_time,omitempty"`
	Topic         string  `json:"topic,omitempty"`
}

// SubmitCallbackRequest is the public "call me back" form.
func SubmitCallbackRequest(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload callbackPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.SubmitCallback(r.Context(), contact.CallbackInput{
			Name:          payload.Name,
			Phone:         payload.Phone,
			PreferredTime: payload.PreferredTime,
			Topic:         payload.Topic,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, message)
	}
}

// AdminListContactMessages serves the back-office inbox.
func AdminListContactMessages(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMessages(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}
