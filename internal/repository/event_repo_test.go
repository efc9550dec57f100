package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"plant_monitor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newEventMock(t *testing.T) (*EventSQLite, sqlmock.Sqlmock) {
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
	return NewEventSQLite(db), mock
}

func TestAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "ACKNOWLEDGE", "alarm acknowledged", `{"alarm_id":"ALM-001"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.ActivityEvent{
		Type:        "  acknowledge ",
		Description: "alarm acknowledged",
		Metadata:    map[string]any{"alarm_id": "ALM-001"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_KeepsGivenIDAndTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.FixedZone("CET", 3600))
	mock.ExpectExec(regexp.QuoteMeta(insertEventSQL)).
		WithArgs("ev-1", "2024-01-15 13:30:00", "EXPORT", "csv export", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.ActivityEvent{
		EventID:     "ev-1",
		OccurredAt:  at,
		Type:        models.EventExport,
		Description: "csv export",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	mock.ExpectExec("INSERT INTO activity_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(context.Background(), models.ActivityEvent{
		Type:        "export",
		Description: "x",
		Metadata:    map[string]string{"k": "v"},
	})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	js, _ := json.Marshal(map[string]any{"a": "b"})
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "description", "metadata"}).
		AddRow("1", "2025-01-01 10:00:00", "ACKNOWLEDGE", "m1", string(js)).
		AddRow("2", "2025-01-01 11:00:00", "EXPORT", "m2", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventSQL + " ORDER BY occurred_at ASC")).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2, got %d", len(got))
	}
	if got[0].EventID != "1" || got[1].EventID != "2" {
		t.Fatalf("unexpected ids: %v, %v", got[0].EventID, got[1].EventID)
	}
	want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if !got[0].OccurredAt.Equal(want) {
		t.Fatalf("occurred_at: want %v, got %v", want, got[0].OccurredAt)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
}

func TestList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectEventSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "description", "metadata"}).
		AddRow("2", "2025-01-01 11:00:00", "EXPORT", "b", nil).
		AddRow("3", "2025-01-01 12:00:00", "EXPORT", "c", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-01-01 11:00:00", "2025-01-01 12:00:00", "EXPORT").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), from, to, " export ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestList_BadTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "description", "metadata"}).
		AddRow("x", "yesterday", "EXPORT", "msg", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectEventSQL + " ORDER BY occurred_at ASC")).
		WillReturnRows(rows)

	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestList_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newEventMock(t)

	mock.ExpectQuery("SELECT id").WillReturnError(sql.ErrConnDone)

	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, ""); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("want ErrConnDone, got %v", err)
	}
}
