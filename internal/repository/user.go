package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/weatherlog/weatherlog-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, token, created_at, updated_at`

// Create inserts a new user. The caller assigns user.ID.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// SetToken overwrites the user's current session token. A nil token logs the user out.
// The single-row UPDATE makes concurrent logins resolve as last write wins.
func (r *UserRepository) SetToken(ctx context.Context, id string, token *string) error {
	query := `UPDATE users SET token = ? WHERE id = ?`

	var value sql.NullString
	if token != nil {
		value = sql.NullString{String: *token, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}

	// MySQL reports 0 affected rows when the value is unchanged, so only a missing
	// row is an error here.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var token sql.NullString

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &token, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if token.Valid {
		user.CurrentToken = &token.String
	}

	return user, nil
}

func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
