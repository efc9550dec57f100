package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newUserMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("mock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	repo, mock := newUserMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("operator", "hash").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), "operator", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 42 {
		t.Fatalf("id: want 42, got %d", id)
	}
}

func TestUserRepository_CreateFailures(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		expect  func(sqlmock.Sqlmock)
		wantErr string
	}{
		"duplicate username": {
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("operator", "hash").
					WillReturnError(errors.New("UNIQUE constraint failed: users.username"))
			},
			wantErr: `insert user "operator"`,
		},
		"no last insert id": {
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("operator", "hash").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))
			},
			wantErr: "get last insert id",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			repo, mock := newUserMock(t)
			tc.expect(mock)

			id, err := repo.Create(context.Background(), "operator", "hash")
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
			if id != 0 {
				t.Fatalf("id on error: want 0, got %d", id)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	t.Parallel()
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("operator").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(7, "operator", "hash"))

	u, err := repo.GetByUsername(context.Background(), "operator")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u == nil || u.ID != 7 || u.Username != "operator" || u.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepository_GetByUsername_Missing(t *testing.T) {
	t.Parallel()
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByUsername(context.Background(), "ghost")
	if err != nil || u != nil {
		t.Fatalf("want (nil, nil), got (%+v, %v)", u, err)
	}
}

func TestUserRepository_GetByUsername_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
		WithArgs("operator").
		WillReturnError(sql.ErrConnDone)

	u, err := repo.GetByUsername(context.Background(), "operator")
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("want ErrConnDone, got %v", err)
	}
	if u != nil {
		t.Fatalf("want nil user, got %+v", u)
	}
}
