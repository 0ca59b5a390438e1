package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	pinger      Pinger
	startupTime time.Time
}

func newHealthHandler(pinger Pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		pinger:      pinger,
		startupTime: startupTime,
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Started  string `json:"started"`
}

// health reports 503 when the database cannot be reached
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "up",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
			Started:  h.startupTime.UTC().Format(time.RFC3339),
		}

		if h.pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := h.pinger.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("database ping failed")
				response.Status = "degraded"
				response.Database = "down"
				h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, response)
				return
			}
		}

		h.responder.WriteJSON(w, response)
	}
}
