package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const jobColumns = `id, title, company, location, salary, description, experience, skills, referral_bonus, recruiter_email, posted_date`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (models.Job, error) {
	var j models.Job
	err := s.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.Description, &j.Experience, &j.Skills, &j.ReferralBonus, &j.RecruiterEmail, &j.PostedDate)
	return j, err
}

// CreateJob stores j and stamps its posted date when empty.
func (r *SQLRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}
	if j.PostedDate == "" {
		j.PostedDate = today()
	}

	var id int64
	err := r.conn.QueryRow(ctx, `INSERT INTO jobs (title, company, location, salary, description, experience, skills, referral_bonus, recruiter_email, posted_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		j.Title, j.Company, j.Location, j.Salary, j.Description, j.Experience, j.Skills, j.ReferralBonus, j.RecruiterEmail, j.PostedDate).Scan(&id)
	if err != nil {
		return 0, err
	}

	j.ID = id
	return id, nil
}

func (r *SQLRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	j, err := scanJob(r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &j, nil
}

// UpdateJob rewrites the editable fields. Company, owner and posted date stay
// as they were created.
func (r *SQLRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	res, err := r.conn.Exec(ctx, `UPDATE jobs SET title = ?, location = ?, salary = ?, description = ?, experience = ?, skills = ?, referral_bonus = ? WHERE id = ?`,
		j.Title, j.Location, j.Salary, j.Description, j.Experience, j.Skills, j.ReferralBonus, j.ID)
	if err != nil {
		return err
	}

	return requireRow(res, repository.ErrJobNotFound)
}

// DeleteJob removes the job only; its applications are left in place.
func (r *SQLRepo) DeleteJob(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	return err
}

func (r *SQLRepo) ListJobs(ctx context.Context, search string) ([]models.Job, error) {
	if search == "" {
		return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY id DESC`)
	}

	lower := r.conn.Lower()
	pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s(title) LIKE ? ESCAPE '\' OR %s(company) LIKE ? ESCAPE '\' ORDER BY id DESC`, jobColumns, lower, lower)
	return r.listJobs(ctx, query, pattern, pattern)
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *SQLRepo) ListJobsByRecruiter(ctx context.Context, email string) ([]models.Job, error) {
	return r.listJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE recruiter_email = ? ORDER BY id DESC`, email)
}

func (r *SQLRepo) listJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}

	return out, rows.Err()
}
