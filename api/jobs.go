package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/gorilla/mux"
)

type jobRequest struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Salary         string `json:"salary"`
	Description    string `json:"description"`
	Experience     string `json:"experience"`
	Skills         string `json:"skills"`
	ReferralBonus  int    `json:"referral_bonus"`
	RecruiterEmail string `json:"recruiter_email"`
}

func (j jobRequest) job() models.Job {
	return models.Job{
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Salary:         j.Salary,
		Description:    j.Description,
		Experience:     j.Experience,
		Skills:         j.Skills,
		ReferralBonus:  j.ReferralBonus,
		RecruiterEmail: j.RecruiterEmail,
	}
}

type jobResponse struct {
	Status string      `json:"status"`
	Job    *models.Job `json:"job"`
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	j, err := h.svc.CreateJob(r.Context(), req.job())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, jobResponse{Status: statusSuccess, Job: j}, http.StatusOK)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, "Invalid job id")
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	if err := h.svc.UpdateJob(r.Context(), id, req.job()); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "")
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeFailure(w, "Invalid job id")
		return
	}

	if err := h.svc.DeleteJob(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "")
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, jobs)
}

func (h *Handler) ListRecruiterJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListRecruiterJobs(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, jobs)
}

func (h *Handler) ListRecruiterCandidates(w http.ResponseWriter, r *http.Request) {
	cands, err := h.svc.ListRecruiterCandidates(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeList(w, cands)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ExportRecruiterCandidates(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.ExportRecruiterCandidates(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		logger.Warn("write export", "err", err)
	}
}
