package jobboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const MsgApplicationSent = "Application Sent!"

type ApplyResult struct {
	ApplicationID int64
	Score         int
	Cost          int
}

// ApplicationCost is PremiumApplyCost for jobs with a referral bonus and free
// otherwise.
func ApplicationCost(j *models.Job) int {
	if j.ReferralBonus > 0 {
		return PremiumApplyCost
	}
	return 0
}

// SubmitApplication charges the applicant and records the application. When
// the balance does not cover the cost nothing is written.
func (s *Service) SubmitApplication(ctx context.Context, email string, jobID int64) (*ApplyResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, invalid("user_email is required")
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	cost := ApplicationCost(job)
	a := &models.Application{
		JobID:     job.ID,
		UserEmail: email,
		JobTitle:  job.Title,
		Company:   job.Company,
		Status:    models.StatusReceived,
		AIScore:   s.scorer.Score(email, job.ID),
	}

	id, err := s.applications.SubmitApplication(ctx, a, cost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("submit application: %w", err)
	}

	s.logger.Info("application submitted", slog.Int64("id", id), slog.Int64("job_id", job.ID), slog.Int("cost", cost))
	return &ApplyResult{ApplicationID: id, Score: a.AIScore, Cost: cost}, nil
}

// UpdateApplicationStatus overwrites the status with any value; there is no
// workflow between statuses.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	if err := s.applications.UpdateApplicationStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (s *Service) ListUserApplications(ctx context.Context, email string) ([]models.Application, error) {
	email = normalizeEmail(email)
	return s.applications.ListApplicationsByUser(ctx, email)
}
