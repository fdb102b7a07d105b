package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/apexitsupply/apex-backend/api/responses"
	"github.com/apexitsupply/apex-backend/pkg/config"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Apex-Env", cfg.App.Env)
		responses.WriteData(w, map[string]string{"status": "live"})
	}
}

// HealthReady aggregates dependency pings. Any failing dependency makes the
// whole check fail with every failure reported.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Apex-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		statuses := make(map[string]string, len(deps))
		var combined error
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "not configured"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				statuses[name] = err.Error()
				combined = multierr.Append(combined, err)
				continue
			}
			statuses[name] = "ok"
		}

		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed").
				WithDetails(statuses)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteData(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
