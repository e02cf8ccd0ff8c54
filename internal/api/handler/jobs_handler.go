package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"compliance-intel-backend/internal/scheduler"
	"compliance-intel-backend/internal/utils"
)

// JobsHandler serves the /jobs/* surface: status, start/stop, and
// on-demand trigger of the scheduler's registered jobs.
type JobsHandler struct {
	scheduler *scheduler.Scheduler
}

func NewJobsHandler(s *scheduler.Scheduler) *JobsHandler {
	return &JobsHandler{scheduler: s}
}

type jobStatus struct {
	Name    string `json:"name"`
	Running bool   `json:"running"`
}

// List handles GET /jobs.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	names := h.scheduler.Names()
	statuses := make([]jobStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, jobStatus{Name: name, Running: h.scheduler.IsRunning(name)})
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, map[string]interface{}{"jobs": statuses}, start)
}

// Trigger handles POST /jobs/:name/trigger, running the named job
// immediately and returning its completed history.
func (h *JobsHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := mux.Vars(r)["name"]

	history, ok := h.scheduler.Trigger(r.Context(), name)
	if !ok {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no such job: "+name, start)
		return
	}
	utils.WriteEnvelopeSuccess(w, http.StatusOK, history, start)
}

// Start handles POST /jobs/:name/start, enabling the job's cron
// loop. Idempotent: starting an already-running job is a no-op 200.
func (h *JobsHandler) Start(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := mux.Vars(r)["name"]

	if !h.jobExists(name) {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no such job: "+name, start)
		return
	}
	h.scheduler.Start(name)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, jobStatus{Name: name, Running: true}, start)
}

// Stop handles POST /jobs/:name/stop, disabling the job's cron
// loop without affecting any in-flight run. Idempotent: stopping an
// already-stopped job is a no-op 200.
func (h *JobsHandler) Stop(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := mux.Vars(r)["name"]

	if !h.jobExists(name) {
		utils.WriteEnvelopeError(w, http.StatusNotFound, "no such job: "+name, start)
		return
	}
	h.scheduler.Stop(name)
	utils.WriteEnvelopeSuccess(w, http.StatusOK, jobStatus{Name: name, Running: false}, start)
}

func (h *JobsHandler) jobExists(name string) bool {
	for _, n := range h.scheduler.Names() {
		if n == name {
			return true
		}
	}
	return false
}
