// Package jobboard holds the business rules of the job board: accounts, job
// postings, paid applications, resumes and mock interviews.
package jobboard

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/ingestion"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Token economy.
const (
	SignupTokens     = 50
	ResumeCredit     = 20
	InterviewCredit  = 5
	PremiumApplyCost = 6
)

// QuestionSource produces an interview question for a resume. It always
// returns a usable question.
type QuestionSource interface {
	Question(ctx context.Context, resumeText string) models.InterviewQuestion
}

type Deps struct {
	Users        repository.UserRepo
	Jobs         repository.JobRepo
	Applications repository.ApplicationRepo
	News         repository.NewsRepo

	Tokens      *auth.TokenIssuer
	Extractor   ingestion.Extractor
	Interviewer QuestionSource
	// Scorer defaults to HashScorer.
	Scorer Scorer
	Logger *slog.Logger

	// WalletEnabled exposes users' wallet_balance.
	WalletEnabled bool
}

type Service struct {
	users        repository.UserRepo
	jobs         repository.JobRepo
	applications repository.ApplicationRepo
	news         repository.NewsRepo

	tokens      *auth.TokenIssuer
	extractor   ingestion.Extractor
	interviewer QuestionSource
	scorer      Scorer
	logger      *slog.Logger

	walletEnabled bool
}

func NewService(d Deps) (*Service, error) {
	if d.Users == nil || d.Jobs == nil || d.Applications == nil {
		return nil, errors.New("users, jobs and applications repositories are required")
	}
	if d.Tokens == nil {
		return nil, errors.New("token issuer is required")
	}
	if d.Interviewer == nil {
		return nil, errors.New("interviewer is required")
	}
	if d.Extractor == nil {
		d.Extractor = ingestion.DocumentExtractor{}
	}
	if d.Scorer == nil {
		d.Scorer = HashScorer{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return &Service{
		users:         d.Users,
		jobs:          d.Jobs,
		applications:  d.Applications,
		news:          d.News,
		tokens:        d.Tokens,
		extractor:     d.Extractor,
		interviewer:   d.Interviewer,
		scorer:        d.Scorer,
		logger:        d.Logger,
		walletEnabled: d.WalletEnabled,
	}, nil
}

// present prepares a stored user for a response.
func (s *Service) present(u *models.User) *models.User {
	out := *u
	out.PasswordHash = ""
	if !s.walletEnabled {
		out.WalletBalance = nil
	}
	return &out
}

// ListNews returns the news feed.
func (s *Service) ListNews(ctx context.Context) ([]models.NewsItem, error) {
	if s.news == nil {
		return []models.NewsItem{}, nil
	}
	return s.news.ListNews(ctx)
}
