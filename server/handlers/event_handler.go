package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"event-finder/models"
	"event-finder/server/middleware"
	services "event-finder/service"
)

const CITY_QUERY_ARG = "city"

// EventSearcher is the service behind the events endpoints.
type EventSearcher interface {
	SearchEvents(ctx context.Context, city string) (*models.EventsResponse, error)
}

type EventHandler struct {
	eventService EventSearcher
}

func NewEventHandler(eventService EventSearcher) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Health answers GET /api/health.
func (h *EventHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// GetEvents answers GET /api/events?city={city}.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get(CITY_QUERY_ARG)

	response, err := h.eventService.SearchEvents(r.Context(), city)
	if err != nil {
		status, body := ErrorResponseFor(err)
		logger := middleware.LoggerFromContext(r.Context())
		logger.Warn().Err(err).Int("status", status).Str("code", body.Code).Msg("events request failed")
		writeJSON(w, r, status, body)
		return
	}
	writeJSON(w, r, http.StatusOK, response)
}

// ErrorResponseFor maps a service error to its HTTP status and JSON body.
func ErrorResponseFor(err error) (int, models.ErrorResponse) {
	var upstreamErr *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: models.ErrorCodeValidation}
	case errors.Is(err, services.ErrConfig):
		return http.StatusInternalServerError, models.ErrorResponse{Error: services.ErrConfig.Error(), Code: models.ErrorCodeConfig}
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, models.ErrorResponse{
			Error:   upstreamErr.Error(),
			Details: upstreamErr.Message,
			Code:    upstreamErr.Code(),
		}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"}
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := middleware.LoggerFromContext(r.Context())
		logger.Error().Err(err).Msg("error encoding response")
	}
}
