package request

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
)

func TestParseLogFilters_Defaults(t *testing.T) {
	filters, err := ParseLogFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.SortDir != "desc" || filters.PerPage != 50 {
		t.Errorf("defaults = %q/%d, want desc/50", filters.SortDir, filters.PerPage)
	}
	if filters.Levels != nil || filters.Categories != nil || filters.StartDate != nil || filters.EndDate != nil {
		t.Errorf("expected empty filters, got %+v", filters)
	}
}

func TestParseLogFilters_Values(t *testing.T) {
	q := url.Values{
		"level":     {" ERROR ,warning"},
		"category":  {"Policy,wallet"},
		"startDate": {"2026-01-01"},
		"endDate":   {"2026-01-31T23:59:59.000Z"},
		"source":    {"scheduler"},
		"message":   {"drift"},
		"sortDir":   {"ASC"},
		"cursor":    {"abc"},
		"perPage":   {"100"},
	}

	filters, err := ParseLogFilters(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(filters.Levels, []string{"error", "warning"}) {
		t.Errorf("Levels = %v", filters.Levels)
	}
	if !slices.Equal(filters.Categories, []string{"policy", "wallet"}) {
		t.Errorf("Categories = %v", filters.Categories)
	}
	if !filters.StartDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", filters.StartDate)
	}
	if filters.EndDate.Day() != 31 || filters.EndDate.Hour() != 23 {
		t.Errorf("EndDate = %v", filters.EndDate)
	}
	if filters.Source != "scheduler" || filters.Message != "drift" || filters.Cursor != "abc" {
		t.Errorf("pass-through fields = %q/%q/%q", filters.Source, filters.Message, filters.Cursor)
	}
	if filters.SortDir != "asc" || filters.PerPage != 100 {
		t.Errorf("paging = %q/%d", filters.SortDir, filters.PerPage)
	}
}

func TestParseLogFilters_RFC3339Offset(t *testing.T) {
	filters, err := ParseLogFilters(url.Values{"startDate": {"2026-03-10T12:00:00+02:00"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := filters.StartDate.UTC().Hour(); got != 10 {
		t.Errorf("UTC hour = %d, want 10", got)
	}
}

func TestParseLogFilters_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown level", "level", "info,verbose", `invalid level "verbose"`},
		{"empty level item", "level", "info,", `invalid level ""`},
		{"unknown category", "category", "fund", `invalid category "fund"`},
		{"bad start date", "startDate", "01/02/2026", "invalid startDate"},
		{"bad end date", "endDate", "yesterday", "invalid endDate"},
		{"bad sort direction", "sortDir", "up", "invalid sortDir"},
		{"non-numeric page size", "perPage", "ten", "invalid perPage"},
		{"page size too small", "perPage", "0", "invalid perPage"},
		{"page size too large", "perPage", "101", "invalid perPage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLogFilters(url.Values{tt.key: {tt.value}})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogFilters_DateRange(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		_, err := ParseLogFilters(url.Values{"startDate": {"2026-02-01"}, "endDate": {"2026-01-01"}})
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("same day", func(t *testing.T) {
		if _, err := ParseLogFilters(url.Values{"startDate": {"2026-02-01"}, "endDate": {"2026-02-01"}}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
