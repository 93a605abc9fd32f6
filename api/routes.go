package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/config"
	"github.com/garnizeh/jobboard/internal/jobboard"
	"github.com/gorilla/mux"
)

// SetupRoutes registers every endpoint. Routes answer HTTP 200 with a
// {status, message} envelope whether the request succeeded or was rejected;
// only /api/me (401 without a valid token) and recovered panics (500) use
// other status codes.
func SetupRoutes(cfg *config.Config, version, buildTime string, svc *jobboard.Service, tokens *auth.TokenIssuer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	h := NewHandler(svc, cfg.MaxUploadBytes)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	apiR := r.PathPrefix("/api").Subrouter()

	// Accounts
	apiR.HandleFunc("/signup", h.Signup).Methods("POST")
	apiR.HandleFunc("/login", h.Login).Methods("POST")
	apiR.HandleFunc("/user/{email}", h.GetUser).Methods("GET")
	apiR.HandleFunc("/user/applications/{email}", h.ListUserApplications).Methods("GET")
	apiR.HandleFunc("/upload-resume", h.UploadResume).Methods("POST")

	// Jobs
	apiR.HandleFunc("/jobs", h.CreateJob).Methods("POST")
	apiR.HandleFunc("/jobs", h.ListJobs).Methods("GET")
	apiR.HandleFunc("/jobs/{id:[0-9]+}", h.UpdateJob).Methods("PUT")
	apiR.HandleFunc("/jobs/{id:[0-9]+}", h.DeleteJob).Methods("DELETE")
	apiR.HandleFunc("/recruiter/jobs/{email}", h.ListRecruiterJobs).Methods("GET")
	apiR.HandleFunc("/recruiter/candidates/{email}", h.ListRecruiterCandidates).Methods("GET")
	apiR.HandleFunc("/recruiter/candidates/{email}/export", h.ExportRecruiterCandidates).Methods("GET")

	// Applications
	apiR.HandleFunc("/apply", h.Apply).Methods("POST")
	apiR.HandleFunc("/applications/status", h.UpdateApplicationStatus).Methods("PUT")

	// Mock interview
	apiR.HandleFunc("/interview/generate", h.GenerateInterview).Methods("POST")
	apiR.HandleFunc("/interview/submit", h.SubmitInterview).Methods("POST")

	if cfg.Features.News {
		apiR.HandleFunc("/news", h.ListNews).Methods("GET")
	}

	// Token-protected routes
	requireToken := JWTAuthMiddleware(tokens)
	apiR.Handle("/me", requireToken(http.HandlerFunc(h.Me))).Methods("GET")

	// Preflight requests match this route so the CORS middleware answers them.
	r.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
