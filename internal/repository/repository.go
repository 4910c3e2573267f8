package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/entity"
)

// mysqlDuplicateEntry is the server error number for a unique-key violation.
const mysqlDuplicateEntry = 1062

// UserRepository is the storage boundary for user records. Email uniqueness
// is enforced by the database's unique key, not by a check-then-insert, so
// concurrent creates for the same email cannot both succeed.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateUsername(ctx context.Context, id int, username string) error
	DeleteUser(ctx context.Context, id int) error
}

// MySQLUserRepository implements UserRepository against a MySQL users table.
type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// CreateUser inserts the user and assigns its id. A duplicate email surfaces
// as a field-level validation error.
func (r *MySQLUserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, email, password_hash, image_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.ImageURL)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, apperr.Validation("email", "Email must be unique")
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted id: %w", err)
	}

	user.ID = int(id)
	return user, nil
}

func (r *MySQLUserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT id, username, email, password_hash, image_url FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *MySQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, username, email, password_hash, image_url FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// UpdateUsername persists a new username for the user, reporting not-found
// when the id no longer resolves.
func (r *MySQLUserRepository) UpdateUsername(ctx context.Context, id int, username string) error {
	query := `UPDATE users SET username = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, username, id)
	if err != nil {
		return fmt.Errorf("updating username: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteUser removes the record permanently. There is no soft delete.
func (r *MySQLUserRepository) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return requireRowAffected(res)
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	var imageURL sql.NullString
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	if imageURL.Valid {
		user.ImageURL = &imageURL.String
	}
	return user, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
