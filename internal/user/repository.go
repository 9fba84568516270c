package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/accountkit/internal/platform/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("user repository: user not found")
	ErrQueryFailed         = errors.New("user repository: query failed")
	ErrDuplicateEmail      = errors.New("user repository: email already taken")
	ErrConstraintViolation = errors.New("user repository: constraint violation")
)

const (
	codeUniqueViolation = "23505"
	constraintEmailKey  = "users_email_key"
)

type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Token        *string
}

// Repository persists users in Postgres. Every method runs inside the
// transaction carried by ctx when there is one.
type Repository struct {
	db db.Executor
}

func NewRepository(exec db.Executor) *Repository {
	return &Repository{db: exec}
}

func (r *Repository) exec(ctx context.Context) db.Executor {
	return db.ExecutorFromContext(ctx, r.db)
}

const QueryUserCreate = `
INSERT INTO users (id, name, email, password_hash, confirmed, token)
VALUES ($1, $2, $3, $4, FALSE, $5)
RETURNING created_at, updated_at`

// Create assigns the user a new id. An email that is already taken yields ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, params NewUser) (User, error) {
	u := User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Token:        params.Token,
	}
	u.ID = uuid.NewString()

	row := r.exec(ctx).QueryRowContext(ctx, QueryUserCreate, u.ID, u.Name, u.Email, u.PasswordHash, u.Token)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, mapWriteError(fmt.Sprintf("create user with email %s", u.Email), err)
	}

	return u, nil
}

const QueryUserFindByEmail = `
SELECT id, name, email, password_hash, confirmed, token, created_at, updated_at
FROM users
WHERE email = $1`

func (r *Repository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.exec(ctx).QueryRowContext(ctx, QueryUserFindByEmail, email)
	return scanUser(row, "find user with email "+email)
}

const QueryUserFindByToken = `
SELECT id, name, email, password_hash, confirmed, token, created_at, updated_at
FROM users
WHERE token = $1`

const lockForUpdate = "\nFOR UPDATE"

// FindByToken locks the matched row when called inside a transaction so that
// concurrent consumers of the same token serialize.
func (r *Repository) FindByToken(ctx context.Context, token string) (User, error) {
	query := QueryUserFindByToken
	if db.TxFromContext(ctx) != nil {
		query += lockForUpdate
	}

	row := r.exec(ctx).QueryRowContext(ctx, query, token)
	return scanUser(row, "find user by token")
}

const QueryUserFind = `
SELECT id, name, email, password_hash, confirmed, token, created_at, updated_at
FROM users
WHERE id = $1`

func (r *Repository) Find(ctx context.Context, userID string) (User, error) {
	row := r.exec(ctx).QueryRowContext(ctx, QueryUserFind, userID)
	return scanUser(row, "find user with id "+userID)
}

const QueryUserSave = `
UPDATE users
SET name = $2, email = $3, password_hash = $4, confirmed = $5, token = $6, updated_at = NOW()
WHERE id = $1`

// Save writes every mutable column of u.
func (r *Repository) Save(ctx context.Context, u User) error {
	res, err := r.exec(ctx).ExecContext(ctx, QueryUserSave, u.ID, u.Name, u.Email, u.PasswordHash, u.Confirmed, u.Token)
	if err != nil {
		return mapWriteError("save user with id "+u.ID, err)
	}

	return requireRow(res)
}

const QueryUserSetToken = `
UPDATE users
SET token = $2, updated_at = NOW()
WHERE id = $1`

// SetToken replaces the pending token of the user and leaves every other column alone.
func (r *Repository) SetToken(ctx context.Context, userID, token string) error {
	res, err := r.exec(ctx).ExecContext(ctx, QueryUserSetToken, userID, token)
	if err != nil {
		return mapWriteError("set token of user with id "+userID, err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrQueryFailed, err)
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(row *sql.Row, op string) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Confirmed, &u.Token, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("%w: %s: %w", ErrQueryFailed, op, err)
	}
	return u, nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		if pgErr.ConstraintName == constraintEmailKey {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %s: %s", ErrConstraintViolation, op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %s: %w", ErrQueryFailed, op, err)
}
