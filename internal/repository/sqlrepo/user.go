package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

const userColumns = `id, email, password, role, name, tokens, wallet_balance, company, designation, resume_text, is_phone_verified, is_email_verified`

func (r *SQLRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	var id int64
	err := r.conn.QueryRow(ctx, `INSERT INTO users (email, password, role, name, tokens, company, designation) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		u.Email, u.PasswordHash, string(u.Role), u.Name, u.Tokens, u.Company, u.Designation).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, err
	}

	return id, nil
}

func (r *SQLRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	var (
		u        models.User
		role     string
		wallet   float64
		resume   sql.NullString
		phone    int64
		emailVer int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.Name, &u.Tokens, &wallet, &u.Company, &u.Designation, &resume, &phone, &emailVer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	u.Role = models.Role(role)
	u.WalletBalance = &wallet
	if resume.Valid {
		u.ResumeText = &resume.String
	}
	u.IsPhoneVerified = phone != 0
	u.IsEmailVerified = emailVer != 0

	return &u, nil
}

func (r *SQLRepo) SetResume(ctx context.Context, email, text string, credit int) error {
	res, err := r.conn.Exec(ctx, `UPDATE users SET resume_text = ?, tokens = tokens + ? WHERE email = ?`, text, credit, email)
	if err != nil {
		return err
	}

	return requireRow(res, repository.ErrUserNotFound)
}

func (r *SQLRepo) CreditTokens(ctx context.Context, email string, amount int) error {
	res, err := r.conn.Exec(ctx, `UPDATE users SET tokens = tokens + ? WHERE email = ?`, amount, email)
	if err != nil {
		return err
	}

	return requireRow(res, repository.ErrUserNotFound)
}

// requireRow returns notFound when the statement touched no rows.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
