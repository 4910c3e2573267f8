package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/yafiirfan/backend.movie/internal/apperr"
	"github.com/yafiirfan/backend.movie/internal/entity"
)

func newRepoWithMock(t *testing.T) (*MySQLUserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewMySQLUserRepository(db), mock, db
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("alice", "a@x.com", "$2a$10$digest", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.CreateUser(context.Background(), &entity.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$digest",
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("id = %d, want 1", got.ID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'email_uniq'"})

	_, err := repo.CreateUser(context.Background(), &entity.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$digest",
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected a classified error, got %v", err)
	}
	if appErr.Kind != apperr.KindValidation || appErr.Field != "email" {
		t.Fatalf("expected an email validation error, got %+v", appErr)
	}
	if appErr.Message != "Email must be unique" {
		t.Fatalf("message = %q", appErr.Message)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, image_url FROM users WHERE email`).
		WithArgs("missing@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "missing@x.com")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetUserByID_NullImageURL(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "image_url"}).
		AddRow(3, "alice", "a@x.com", "$2a$10$digest", nil)
	mock.ExpectQuery(`SELECT id, username, email, password_hash, image_url FROM users WHERE id`).
		WithArgs(3).
		WillReturnRows(rows)

	user, err := repo.GetUserByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if user.ImageURL != nil {
		t.Fatalf("expected nil ImageURL, got %v", *user.ImageURL)
	}
}

func TestUpdateUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET username`).
		WithArgs("alice2", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateUsername(context.Background(), 99, "alice2")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(context.Background(), 3); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteUser(context.Background(), 3); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}
