package handlers

import (
	"net/http"

	"github.com/wonny/brier-terminal/backend/internal/scheduler"
)

// JobStatsProvider reports scheduled job statistics
type JobStatsProvider interface {
	GetJobStats() []scheduler.JobStats
}

// SchedulerHandler exposes scheduler status
type SchedulerHandler struct {
	scheduler JobStatsProvider
}

// NewSchedulerHandler creates a new scheduler handler. A nil provider means
// the scheduler runs in another process.
func NewSchedulerHandler(s JobStatsProvider) *SchedulerHandler {
	return &SchedulerHandler{scheduler: s}
}

// GetJobs returns statistics of every registered job
// GET /api/scheduler/jobs
func (h *SchedulerHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"embedded": false,
			"jobs":     []scheduler.JobStats{},
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"embedded": true,
		"jobs":     h.scheduler.GetJobStats(),
	})
}
