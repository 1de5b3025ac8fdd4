package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roshnikutty/neighborfoods-api/internal/model"
	"github.com/roshnikutty/neighborfoods-api/internal/utils"
)

// UserRepo encapsulates account persistence for the authentication gate.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the account, returning its ID.
// A duplicate username maps to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, password, firstName, lastName string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, first_name, last_name) VALUES (?,?,?,?)",
		username, hash, firstName, lastName)
	if err != nil {
		// 1062 = MySQL duplicate key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, first_name, last_name, created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, first_name, last_name, created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt)
	return u, err
}
