package controllers

import (
	"net/http"

	"github.com/apexitsupply/apex-backend/api/middleware"
	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/api/validators"
	admin "github.com/apexitsupply/apex-backend/internal/admins"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin exchanges credentials for an access token.
func AdminLogin(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), admin.LoginInput{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, result)
	}
}

// AdminProfile returns the account behind the bearer token.
func AdminProfile(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID := middleware.AdminIDFromContext(r.Context())
		if adminID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated"))
			return
		}

		dto, err := svc.Profile(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, dto)
	}
}
