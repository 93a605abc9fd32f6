package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/jobboard/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Getters return (nil, nil) when the row does not exist.

var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrInsufficientFunds = errors.New("insufficient tokens")
)

type UserRepo interface {
	// CreateUser returns ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SetResume stores the resume text and credits tokens in one statement.
	SetResume(ctx context.Context, email, text string, credit int) error
	CreditTokens(ctx context.Context, email string, amount int) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	// UpdateJob returns ErrJobNotFound when no job has j.ID.
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	ListJobs(ctx context.Context, search string) ([]models.Job, error)
	ListJobsByRecruiter(ctx context.Context, email string) ([]models.Job, error)
}

type ApplicationRepo interface {
	// SubmitApplication debits cost from the applicant and inserts a in one
	// transaction. It returns ErrInsufficientFunds or ErrUserNotFound without
	// writing anything when the debit cannot happen.
	SubmitApplication(ctx context.Context, a *models.Application, cost int) (int64, error)
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	ListApplicationsByUser(ctx context.Context, email string) ([]models.Application, error)
	ListCandidatesByRecruiter(ctx context.Context, email string) ([]models.Candidate, error)
}

type NewsRepo interface {
	ListNews(ctx context.Context) ([]models.NewsItem, error)
}
