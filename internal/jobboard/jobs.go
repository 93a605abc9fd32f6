package jobboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/jobboard/internal/export"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// CreateJob stores a new posting; the posted date is always set here.
func (s *Service) CreateJob(ctx context.Context, j models.Job) (*models.Job, error) {
	if strings.TrimSpace(j.Title) == "" {
		return nil, invalid("title is required")
	}
	if j.ReferralBonus < 0 {
		return nil, invalid("referral_bonus must not be negative")
	}

	j.ID = 0
	j.PostedDate = ""
	j.RecruiterEmail = normalizeEmail(j.RecruiterEmail)
	if _, err := s.jobs.CreateJob(ctx, &j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created", slog.Int64("id", j.ID), slog.String("recruiter", j.RecruiterEmail))
	return &j, nil
}

// UpdateJob replaces the editable fields of job id. Company, owner and posted
// date are kept.
func (s *Service) UpdateJob(ctx context.Context, id int64, j models.Job) error {
	if j.ReferralBonus < 0 {
		return invalid("referral_bonus must not be negative")
	}

	j.ID = id
	if err := s.jobs.UpdateJob(ctx, &j); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// DeleteJob removes a posting. Its applications are kept and deleting a
// missing job is not an error.
func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	if err := s.jobs.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *Service) ListJobs(ctx context.Context, search string) ([]models.Job, error) {
	return s.jobs.ListJobs(ctx, strings.TrimSpace(search))
}

func (s *Service) ListRecruiterJobs(ctx context.Context, email string) ([]models.Job, error) {
	return s.jobs.ListJobsByRecruiter(ctx, normalizeEmail(email))
}

func (s *Service) ListRecruiterCandidates(ctx context.Context, email string) ([]models.Candidate, error) {
	return s.applications.ListCandidatesByRecruiter(ctx, normalizeEmail(email))
}

// ExportRecruiterCandidates renders ListRecruiterCandidates as an xlsx file.
func (s *Service) ExportRecruiterCandidates(ctx context.Context, email string) ([]byte, error) {
	cands, err := s.applications.ListCandidatesByRecruiter(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return export.CandidatesWorkbook(cands)
}
