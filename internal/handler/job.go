package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/stridehq/stride/internal/service"
)

// JobHandler exposes the daily reconciliation to an external scheduler
// (cron hitting the endpoint with a bearer token). The schedule contract
// is once per day at 06:00 UTC; the endpoint itself is idempotent, so
// duplicate or retried triggers are safe.
type JobHandler struct {
	reconcileService *service.ReconcileService
	authToken        string
}

func NewJobHandler(reconcileService *service.ReconcileService, authToken string) *JobHandler {
	return &JobHandler{
		reconcileService: reconcileService,
		authToken:        authToken,
	}
}

func (h *JobHandler) DailyCheckins(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		respondError(w, r, http.StatusUnauthorized, "invalid job token")
		return
	}

	result, err := h.reconcileService.Run(r.Context())
	if err != nil {
		// Enumeration failure: the whole run failed, the scheduler's retry
		// policy takes it from here.
		respondError(w, r, http.StatusInternalServerError, "reconcile run failed")
		return
	}

	status := http.StatusOK
	if result.Failed > 0 {
		// Partial failure: report it so the scheduler can retry; the retry
		// only touches the goals that failed.
		status = http.StatusInternalServerError
	}

	respondJSON(w, status, result)
}

func (h *JobHandler) authorized(r *http.Request) bool {
	if h.authToken == "" {
		return false
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(h.authToken)) == 1
}
