package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

const (
	defaultLogPageSize = 50
	maxLogPageSize     = 100
)

var filterTimeLayouts = []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05.000Z07:00"}

// ParseLogFilters builds activity log filters from the query of
// GET /api/developer/logs. Every key is optional:
//
//	level, category   comma-separated, case-insensitive
//	startDate, endDate YYYY-MM-DD or RFC3339
//	sortDir           asc or desc (default desc)
//	perPage           1 to 100 (default 50)
//	source, message, cursor are passed through.
func ParseLogFilters(q url.Values) (*model.LogFilters, error) {
	filters := &model.LogFilters{
		Source:  q.Get("source"),
		Message: q.Get("message"),
		Cursor:  q.Get("cursor"),
		SortDir: "desc",
		PerPage: defaultLogPageSize,
	}

	var err error
	if filters.Levels, err = parseList(q.Get("level"), "level", func(s string) bool {
		return model.ValidLogLevels[model.LogLevel(s)]
	}); err != nil {
		return nil, err
	}
	if filters.Categories, err = parseList(q.Get("category"), "category", func(s string) bool {
		return model.ValidLogCategories[model.LogCategory(s)]
	}); err != nil {
		return nil, err
	}

	if filters.StartDate, err = parseFilterTime(q.Get("startDate"), "startDate"); err != nil {
		return nil, err
	}
	if filters.EndDate, err = parseFilterTime(q.Get("endDate"), "endDate"); err != nil {
		return nil, err
	}
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrInvalidDateRange)
	}

	if dir := strings.ToLower(q.Get("sortDir")); dir != "" {
		if dir != "asc" && dir != "desc" {
			return nil, fmt.Errorf("invalid sortDir %q: must be asc or desc", dir)
		}
		filters.SortDir = dir
	}

	if raw := q.Get("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLogPageSize {
			return nil, fmt.Errorf("invalid perPage %q: must be a number between 1 and %d", raw, maxLogPageSize)
		}
		filters.PerPage = n
	}

	return filters, nil
}

// parseList splits a comma-separated parameter and checks each lowercased item.
func parseList(raw, name string, valid func(string) bool) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if !valid(p) {
			return nil, fmt.Errorf("invalid %s %q", name, p)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseFilterTime(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range filterTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD or RFC3339", name, raw)
}
