package api

import (
	"encoding/json"
	"net/http"
)

type interviewRequest struct {
	Email string `json:"email"`
}

type interviewSubmitRequest struct {
	Email     string `json:"email"`
	IsCorrect bool   `json:"is_correct"`
}

// GenerateInterview returns the bare question object. Generation failures
// are served the fallback question, never an error.
func (h *Handler) GenerateInterview(w http.ResponseWriter, r *http.Request) {
	var req interviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	writeJSON(w, h.svc.GenerateInterviewQuestion(r.Context(), req.Email), http.StatusOK)
}

func (h *Handler) SubmitInterview(w http.ResponseWriter, r *http.Request) {
	var req interviewSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	msg, err := h.svc.SubmitInterviewAnswer(r.Context(), req.Email, req.IsCorrect)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, msg)
}
