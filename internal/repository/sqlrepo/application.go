package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/internal/db"
	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const applicationColumns = `id, job_id, user_email, referrer_email, job_title, company, status, date, ai_score`

func scanApplication(s scanner, extra ...any) (models.Application, error) {
	var (
		a        models.Application
		referrer sql.NullString
		status   string
	)
	dest := append([]any{&a.ID, &a.JobID, &a.UserEmail, &referrer, &a.JobTitle, &a.Company, &status, &a.Date, &a.AIScore}, extra...)
	if err := s.Scan(dest...); err != nil {
		return a, err
	}

	if referrer.Valid {
		a.ReferrerEmail = &referrer.String
	}
	a.Status = models.ApplicationStatus(status)
	return a, nil
}

// SubmitApplication debits cost and records a inside one transaction. The
// debit is a conditional UPDATE, so the row lock it takes makes concurrent
// submissions from the same user see each other's debit.
func (r *SQLRepo) SubmitApplication(ctx context.Context, a *models.Application, cost int) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if cost < 0 {
		return 0, fmt.Errorf("negative application cost %d", cost)
	}
	if a.Date == "" {
		a.Date = today()
	}
	if a.Status == "" {
		a.Status = models.StatusReceived
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *db.Tx) error {
		res, err := tx.Exec(ctx, `UPDATE users SET tokens = tokens - ? WHERE email = ? AND tokens >= ?`, cost, a.UserEmail, cost)
		if err != nil {
			return fmt.Errorf("debit tokens: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var exists int
			if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, a.UserEmail).Scan(&exists); err != nil {
				return err
			}
			if exists == 0 {
				return repository.ErrUserNotFound
			}
			return repository.ErrInsufficientFunds
		}

		return tx.QueryRow(ctx, `INSERT INTO applications (job_id, user_email, referrer_email, job_title, company, status, date, ai_score) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			a.JobID, a.UserEmail, a.ReferrerEmail, a.JobTitle, a.Company, string(a.Status), a.Date, a.AIScore).Scan(&id)
	})
	if err != nil {
		return 0, err
	}

	a.ID = id
	r.logger.Debug("application stored", "id", id, "job_id", a.JobID, "cost", cost)
	return id, nil
}

func (r *SQLRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	a, err := scanApplication(r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

// UpdateApplicationStatus overwrites the status with any value.
func (r *SQLRepo) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	_, err := r.conn.Exec(ctx, `UPDATE applications SET status = ? WHERE id = ?`, string(status), id)
	return err
}

func (r *SQLRepo) ListApplicationsByUser(ctx context.Context, email string) ([]models.Application, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_email = ? ORDER BY id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLRepo) ListCandidatesByRecruiter(ctx context.Context, email string) ([]models.Candidate, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.job_id, a.user_email, a.referrer_email, a.job_title, a.company, a.status, a.date, a.ai_score, j.referral_bonus
		FROM applications a JOIN jobs j ON a.job_id = j.id
		WHERE j.recruiter_email = ? ORDER BY a.id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Candidate{}
	for rows.Next() {
		var bonus int
		a, err := scanApplication(rows, &bonus)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Candidate{Application: a, ReferralBonus: bonus})
	}

	return out, rows.Err()
}
