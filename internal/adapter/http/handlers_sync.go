package http

import (
	"net/http"

	"github.com/dealerdesk/dealerdesk/internal/middleware"
)

type syncRequest struct {
	Message string `json:"message"`
}

type syncResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// EnqueueSync handles POST /sync. The export runs asynchronously; the
// response only acknowledges the queued job.
func (h *Handlers) EnqueueSync(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[syncRequest](w, r)
	if !ok {
		return
	}

	tenant := middleware.TenantIDFromContext(r.Context())
	jobID, err := h.exports.Enqueue(r.Context(), tenant, req.Message)
	if err != nil {
		writeDomainError(w, err, "sync job not queued")
		return
	}
	writeJSON(w, http.StatusAccepted, syncResponse{JobID: jobID, Status: "queued"})
}
