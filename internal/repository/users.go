package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/sqlerr"
)

const userColumns = `id, login, email, password_hash, first_name, last_name, role, status, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collectOne(rows pgx.Rows, err error) (*model.User, error) {
	if err != nil {
		return nil, err
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.WithTable("users", err)
	}
	return &user, nil
}

// Create inserts a pending user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (login, email, password_hash, first_name, last_name, role, status)
		VALUES (@login, @email, @password_hash, @first_name, @last_name, @role, @status)
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"login":         u.Login,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"role":          u.Role,
			"status":        u.Status,
		},
	)
	return r.collectOne(rows, err)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.collectOne(rows, err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return r.collectOne(rows, err)
}

// GetByLoginOrEmail resolves a sign-in identifier.
func (r *UserRepository) GetByLoginOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(login) = lower($1) OR lower(email) = lower($1)
		LIMIT 1`, identifier)
	return r.collectOne(rows, err)
}

func (r *UserRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(login) = lower($1))`, login).Scan(&exists)
	return exists, err
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	return exists, err
}

// SetStatus changes the account status of a user.
func (r *UserRepository) SetStatus(ctx context.Context, id int64, status model.UserStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WithTable("users", pgx.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WithTable("users", pgx.ErrNoRows)
	}
	return nil
}
