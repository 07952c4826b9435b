package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const RoleAdmin = "admin"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) CreateUser(ctx context.Context, u User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, nullable(u.FirstName), nullable(u.LastName), nullable(u.Phone), u.Role)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, role, is_active, created_at
		FROM users
		WHERE LOWER(email) = ?
	`, email)
	return scanUser(row)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, role, is_active, created_at
		FROM users
		WHERE id = ?
	`, id)
	return scanUser(row)
}

func (r *Repo) UpdateProfile(ctx context.Context, id, firstName, lastName, phone string) (*User, error) {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET first_name = ?, last_name = ?, phone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, nullable(firstName), nullable(lastName), nullable(phone), id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update password: user not found")
	}
	return nil
}

func (r *Repo) PromoteToAdmin(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET role = 'admin', updated_at = CURRENT_TIMESTAMP WHERE LOWER(email) = LOWER(?)
	`, email)
	if err != nil {
		return fmt.Errorf("promote to admin: %w", err)
	}
	return nil
}

// CountOrders backs the total_orders field on the profile response.
func (r *Repo) CountOrders(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u         User
		firstName sql.NullString
		lastName  sql.NullString
		phone     sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &firstName, &lastName, &phone, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.Phone = phone.String
	return &u, nil
}

func nullable(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
