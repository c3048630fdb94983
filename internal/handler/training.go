package handler

import (
	"net/http"

	"github.com/stridehq/stride/internal/service"
)

type TrainingHandler struct {
	trainingService *service.TrainingService
}

func NewTrainingHandler(trainingService *service.TrainingService) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
	}
}

func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.trainingService.Videos()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to load training catalog")
		return
	}

	respondJSON(w, http.StatusOK, videos)
}
