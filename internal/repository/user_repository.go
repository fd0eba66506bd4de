package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irondb/gateway/internal/model"
	"github.com/irondb/gateway/internal/utils"
)

type UserRepo struct{ DB *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, COALESCE(encrypted_password, ''), provider, role, created_at, last_sign_in"

// Create inserts a password-based user and returns the stored row.  The
// plaintext password is hashed here and never travels further down.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	err = r.DB.QueryRow(ctx,
		`INSERT INTO auth.users (email, encrypted_password, provider)
		 VALUES ($1, $2, 'email')
		 RETURNING `+userColumns,
		email, hash).
		Scan(&u.ID, &u.Email, &u.EncryptedPassword, &u.Provider, &u.Role, &u.CreatedAt, &u.LastSignIn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// CreateFederated inserts a user on first federated login.  Such users carry
// no password hash; last_sign_in is set immediately because the insert is
// itself a successful login.
func (r *UserRepo) CreateFederated(ctx context.Context, email, provider string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRow(ctx,
		`INSERT INTO auth.users (email, provider, role, last_sign_in)
		 VALUES ($1, $2, 'authenticated', NOW())
		 RETURNING `+userColumns,
		email, provider).
		Scan(&u.ID, &u.Email, &u.EncryptedPassword, &u.Provider, &u.Role, &u.CreatedAt, &u.LastSignIn)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRow(ctx,
		"SELECT "+userColumns+" FROM auth.users WHERE email = $1", email).
		Scan(&u.ID, &u.Email, &u.EncryptedPassword, &u.Provider, &u.Role, &u.CreatedAt, &u.LastSignIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRow(ctx,
		"SELECT "+userColumns+" FROM auth.users WHERE id = $1", id).
		Scan(&u.ID, &u.Email, &u.EncryptedPassword, &u.Provider, &u.Role, &u.CreatedAt, &u.LastSignIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// TouchLastSignIn refreshes last_sign_in after a successful login.
func (r *UserRepo) TouchLastSignIn(ctx context.Context, id uint64) error {
	_, err := r.DB.Exec(ctx, "UPDATE auth.users SET last_sign_in = NOW() WHERE id = $1", id)
	return err
}

// List returns all users, newest first, without password hashes.
func (r *UserRepo) List(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, email, provider, role, created_at, last_sign_in
		 FROM auth.users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.PublicUser{}
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Provider, &u.Role, &u.CreatedAt, &u.LastSignIn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
