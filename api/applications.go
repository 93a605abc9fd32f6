package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/gorilla/mux"
)

type statusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type applyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	AIScore int    `json:"ai_score"`
}

// Apply reads the form fields user_email and job_id.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	email := r.FormValue("user_email")
	jobID, err := strconv.ParseInt(r.FormValue("job_id"), 10, 64)
	if email == "" || err != nil {
		writeFailure(w, "Missing fields")
		return
	}

	res, err := h.svc.SubmitApplication(r.Context(), email, jobID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, applyResponse{Status: statusSuccess, Message: jobboard.MsgApplicationSent, AIScore: res.Score}, http.StatusOK)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	if err := h.svc.UpdateApplicationStatus(r.Context(), req.ID, models.ApplicationStatus(req.Status)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "")
}

func (h *Handler) ListUserApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListUserApplications(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, apps)
}
