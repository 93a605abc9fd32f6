package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/jobboard/internal/jobboard"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// envelope is the {status, message} object every non-list response carries.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, envelope{Status: statusSuccess, Message: message}, http.StatusOK)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, envelope{Status: statusError, Message: message}, code)
}

// writeFailure rejects a request inside the API contract: clients read the
// outcome from the status field, so the HTTP code stays 200.
func writeFailure(w http.ResponseWriter, message string) {
	writeError(w, http.StatusOK, message)
}

// writeList encodes items as a bare JSON array, never null.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, items, http.StatusOK)
}

// errorMessages are the client-facing texts of the domain errors. Domain
// errors are reported with HTTP 200 and an error envelope.
var errorMessages = []struct {
	err error
	msg string
}{
	{jobboard.ErrDuplicateEmail, "Email exists"},
	{jobboard.ErrInvalidCredentials, "Invalid Credentials"},
	{jobboard.ErrJobNotFound, "Job not found"},
	{jobboard.ErrUserNotFound, "User not found"},
	{jobboard.ErrInsufficientFunds, "Insufficient Credits"},
	{jobboard.ErrProcessingFailed, "Failed"},
}

// writeServiceError converts err into the error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			writeFailure(w, m.msg)
			return
		}
	}

	if errors.Is(err, jobboard.ErrInvalidInput) {
		writeFailure(w, err.Error())
		return
	}

	logger.Error("request failed",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Any("err", err),
	)
	writeFailure(w, "Internal error")
}
