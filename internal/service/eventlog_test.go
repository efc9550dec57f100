package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"plant_monitor/internal/models"
)

// fakeEventRepo satisfies repository.EventRepo and records appends.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.ActivityEvent
	appendErr error

	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events []models.ActivityEvent
	err    error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	f.calls++
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.ActivityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) appendedTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

func TestLogFilter_Normalize(t *testing.T) {
	t.Parallel()

	plus2 := time.FixedZone("UTC+2", 2*3600)
	cases := map[string]struct {
		in      LogFilter
		want    LogFilter
		wantErr error
	}{
		"empty filter is open": {
			in:   LogFilter{},
			want: LogFilter{},
		},
		"bounds moved to UTC and type upper-cased": {
			in: LogFilter{
				From: time.Date(2024, 1, 15, 10, 0, 0, 0, plus2),
				To:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
				Type: " range_change ",
			},
			want: LogFilter{
				From: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
				Type: models.EventRangeChange,
			},
		},
		"from after to": {
			in: LogFilter{
				From: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			wantErr: ErrInvalidLogWindow,
		},
		"unknown type": {
			in:      LogFilter{Type: "start"},
			wantErr: ErrUnknownEventType,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.in.normalize()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err: want %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if !got.From.Equal(tc.want.From) || !got.To.Equal(tc.want.To) || got.Type != tc.want.Type {
				t.Fatalf("normalize: want %+v, got %+v", tc.want, got)
			}
			if !got.From.IsZero() && got.From.Location() != time.UTC {
				t.Fatalf("from not in UTC: %v", got.From.Location())
			}
		})
	}
}

func TestEventLogService_List_PassesNormalizedFilter(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{events: []models.ActivityEvent{{EventID: "ev-1", Type: models.EventBulkAcknowledge}}}
	svc := NewEventLogService(repo)

	out, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
		To:   time.Date(2024, 1, 15, 12, 30, 0, 0, time.FixedZone("UTC-2", -2*3600)),
		Type: "bulk_acknowledge",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "ev-1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if repo.calls != 1 {
		t.Fatalf("repo calls: want 1, got %d", repo.calls)
	}
	if want := time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC); !repo.gotFrom.Equal(want) {
		t.Fatalf("from: want %v, got %v", want, repo.gotFrom)
	}
	if want := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC); !repo.gotTo.Equal(want) {
		t.Fatalf("to: want %v, got %v", want, repo.gotTo)
	}
	if repo.gotType != models.EventBulkAcknowledge {
		t.Fatalf("type: want %q, got %q", models.EventBulkAcknowledge, repo.gotType)
	}
}

func TestEventLogService_List_InvalidFilterSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &fakeEventRepo{}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{Type: "furnace"}); !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("want ErrUnknownEventType, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo called %d times", repo.calls)
	}
}

func TestEventLogService_List_RepoError(t *testing.T) {
	t.Parallel()

	down := errors.New("db down")
	svc := NewEventLogService(&fakeEventRepo{err: down})

	if _, err := svc.List(context.Background(), LogFilter{}); !errors.Is(err, down) {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
}
