package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Why       string    `json:"why,omitempty"`
	Frequency string    `json:"frequency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func goalToResponse(goal *model.Goal) goalResponse {
	return goalResponse{
		ID:        goal.ID,
		Title:     goal.Title,
		Why:       goal.Why,
		Frequency: goal.Frequency,
		Active:    goal.Active,
		CreatedAt: goal.CreatedAt,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(user.ID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to load goals")
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, goalToResponse(goal))
	}

	respondJSON(w, http.StatusOK, out)
}

type createGoalRequest struct {
	Title     string `json:"title"`
	Why       string `json:"why"`
	Frequency string `json:"frequency"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Why, req.Frequency)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired), errors.Is(err, model.ErrInvalidFrequency):
			respondError(w, r, http.StatusBadRequest, err.Error())
		default:
			respondError(w, r, http.StatusInternalServerError, "failed to create goal")
		}
		return
	}

	respondJSON(w, http.StatusCreated, goalToResponse(goal))
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *GoalHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req setActiveRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err = h.goalService.SetActive(user.ID, goalID, req.Active)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			respondError(w, r, http.StatusNotFound, "goal not found")
			return
		}
		respondError(w, r, http.StatusInternalServerError, "failed to update goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
