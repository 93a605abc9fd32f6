package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/gorilla/mux"
)

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Designation string `json:"designation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Status string       `json:"status"`
	User   *models.User `json:"user"`
	Token  string       `json:"token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFailure(w, "Missing fields")
		return
	}

	sess, err := h.svc.Signup(r.Context(), jobboard.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.Role(req.Role),
		Name:        req.Name,
		Company:     req.Company,
		Designation: req.Designation,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, sessionResponse{Status: statusSuccess, User: sess.User, Token: sess.Token}, http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFailure(w, "Missing fields")
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, sessionResponse{Status: statusSuccess, User: sess.User, Token: sess.Token}, http.StatusOK)
}

// GetUser returns the bare user object.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, u, http.StatusOK)
}

// Me returns the user named by the bearer token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	u, err := h.svc.GetUser(r.Context(), email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, u, http.StatusOK)
}
