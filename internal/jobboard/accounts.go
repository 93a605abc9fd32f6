package jobboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/jobboard/internal/auth"
	"github.com/garnizeh/jobboard/internal/ingestion"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

type SignupInput struct {
	Email       string
	Password    string
	Role        models.Role
	Name        string
	Company     string
	Designation string
}

// Session is a user snapshot together with a signed token.
type Session struct {
	User  *models.User
	Token string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, invalid("email and password are required")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, invalid("password must be at most 72 bytes")
		}
		return nil, err
	}

	u := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Name:         in.Name,
		Tokens:       SignupTokens,
		Company:      in.Company,
		Designation:  in.Designation,
	}
	id, err := s.users.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.ID = id
	var zero float64
	u.WalletBalance = &zero

	s.logger.Info("user signed up", slog.Int64("id", id), slog.String("role", string(in.Role)))
	return s.session(u)
}

// Login checks the password against the stored digest. Unknown emails and
// wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil || !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.session(u)
}

func (s *Service) session(u *models.User) (*Session, error) {
	tok, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: s.present(u), Token: tok}, nil
}

func (s *Service) GetUser(ctx context.Context, email string) (*models.User, error) {
	email = normalizeEmail(email)
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.present(u), nil
}

// UploadResume extracts text from the document, stores the first
// ingestion.MaxResumeChars characters and credits ResumeCredit tokens. The
// credit is paid even when the extracted text is empty.
func (s *Service) UploadResume(ctx context.Context, email, filename string, data []byte) error {
	email = normalizeEmail(email)
	text, err := s.extractor.Extract(filename, data)
	if err != nil {
		s.logger.Warn("resume extraction failed", slog.String("filename", filename), slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	text = ingestion.Truncate(text, ingestion.MaxResumeChars)

	if err := s.users.SetResume(ctx, email, text, ResumeCredit); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("store resume: %w", err)
	}

	s.logger.Info("resume stored", slog.Int("chars", len([]rune(text))))
	return nil
}

// normalizeEmail is applied to every email a caller hands in, so lookups
// match what Signup stored.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
