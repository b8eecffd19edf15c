package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/pjunjae/safetycam/internal/models"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row. A duplicate username reports
// ErrConflict.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	var err error
	if r.db.dbType == "postgres" {
		err = r.db.conn.QueryRowContext(ctx, `
			INSERT INTO users (username, password_hash, email, full_name, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			user.Username, user.PasswordHash, user.Email, user.FullName, user.Role,
		).Scan(&user.ID)
	} else {
		var result sql.Result
		result, err = r.db.conn.ExecContext(ctx, `
			INSERT INTO users (username, password_hash, email, full_name, role)
			VALUES ($1, $2, $3, $4, $5)`,
			user.Username, user.PasswordHash, user.Email, user.FullName, user.Role,
		)
		if err == nil {
			user.ID, err = result.LastInsertId()
		}
	}
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByUsername fetches a user by exact username. Returns ErrNotFound
// when no row matches.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.conn.QueryRowContext(ctx, `
		SELECT id, username, password_hash, email, full_name, role
		FROM users
		WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
