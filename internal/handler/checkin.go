package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
}

func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

type checkinResponse struct {
	ID        string          `json:"id"`
	GoalID    string          `json:"goalId"`
	DateKey   string          `json:"dateKey"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	Summary   json.RawMessage `json:"summary,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func checkinToResponse(checkin *model.Checkin) checkinResponse {
	resp := checkinResponse{
		ID:        checkin.ID,
		GoalID:    checkin.GoalID,
		DateKey:   checkin.DateKey,
		Status:    checkin.Status,
		Notes:     checkin.Notes,
		CreatedAt: checkin.CreatedAt,
	}
	if checkin.Summary != "" {
		resp.Summary = json.RawMessage(checkin.Summary)
	}
	return resp
}

type todayResponse struct {
	DateKey  string            `json:"dateKey"`
	Checkins []checkinResponse `json:"checkins"`
}

// Today lists the signed-in user's check-in records for the current UTC
// date, pending and generated alike.
func (h *CheckinHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dateKey, checkins, err := h.checkinService.Today(user.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to load checkins")
		return
	}

	out := todayResponse{DateKey: dateKey, Checkins: make([]checkinResponse, 0, len(checkins))}
	for _, checkin := range checkins {
		out.Checkins = append(out.Checkins, checkinToResponse(checkin))
	}

	respondJSON(w, http.StatusOK, out)
}

type submitCheckinRequest struct {
	Notes string `json:"notes"`
}

type submitCheckinResponse struct {
	Summary  *service.CoachSummary `json:"summary"`
	Checkins []checkinResponse     `json:"checkins"`
}

// Submit runs the interactive check-in: notes in, coach summary out.
func (h *CheckinHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req submitCheckinRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	summary, checkins, err := h.checkinService.Submit(r.Context(), user, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveGoals):
			respondError(w, r, http.StatusBadRequest, "no active goals to check in on")
		case errors.Is(err, service.ErrCoachNotConfigured):
			respondError(w, r, http.StatusInternalServerError, "coach not configured")
		default:
			respondError(w, r, http.StatusBadGateway, err.Error())
		}
		return
	}

	out := submitCheckinResponse{Summary: summary, Checkins: make([]checkinResponse, 0, len(checkins))}
	for _, checkin := range checkins {
		out.Checkins = append(out.Checkins, checkinToResponse(checkin))
	}

	respondJSON(w, http.StatusOK, out)
}
