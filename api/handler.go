package api

import (
	"github.com/garnizeh/jobboard/internal/jobboard"
)

// Handler serves the job board endpoints under /api.
type Handler struct {
	svc            *jobboard.Service
	maxUploadBytes int64
}

func NewHandler(svc *jobboard.Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}
