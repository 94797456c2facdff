package postgres

import (
	"context"
	"database/sql"

	"docflow/internal/model"
	"docflow/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, email, password, company_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CompanyID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row and returns the stored record.
func (r *UserPostgres) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, email, password, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.CompanyID,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return scanUser(row)
}

// CreateProfile inserts the profile row associated with a user.
func (r *UserPostgres) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO user_profiles (id, user_id, role, membership_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, role, membership_status, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.UserID,
		p.Role,
		p.MembershipStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)
	var out model.Profile
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.Role,
		&out.MembershipStatus,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user row by ID.
func (r *UserPostgres) DeleteUser(ctx context.Context, id string) error {
	const q = `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// FindByEmail fetches a user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindProfileByUserID fetches the profile belonging to a user.
func (r *UserPostgres) FindProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	const q = `
		SELECT id, user_id, role, membership_status, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, userID)
	var p model.Profile
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Role,
		&p.MembershipStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
