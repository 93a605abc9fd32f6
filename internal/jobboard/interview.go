package jobboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const (
	MsgCorrectAnswer   = "Correct! +5 Credits"
	MsgIncorrectAnswer = "Incorrect."
)

// GenerateInterviewQuestion builds a question from the user's stored resume.
// Users without a resume, including unknown emails, get a question on the
// default topic.
func (s *Service) GenerateInterviewQuestion(ctx context.Context, email string) models.InterviewQuestion {
	email = normalizeEmail(email)
	var resume string
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("load resume for interview", slog.Any("err", err))
	}
	if u != nil && u.ResumeText != nil {
		resume = *u.ResumeText
	}

	return s.interviewer.Question(ctx, resume)
}

// SubmitInterviewAnswer credits InterviewCredit tokens for a correct answer
// and returns the message shown to the user.
func (s *Service) SubmitInterviewAnswer(ctx context.Context, email string, correct bool) (string, error) {
	email = normalizeEmail(email)
	if !correct {
		return MsgIncorrectAnswer, nil
	}

	if err := s.users.CreditTokens(ctx, email, InterviewCredit); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("credit tokens: %w", err)
	}
	return MsgCorrectAnswer, nil
}
