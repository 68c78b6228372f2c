package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// logTimeLayout is fixed-width so stored timestamps sort lexically.
const logTimeLayout = "2006-01-02T15:04:05.000000000Z"

// LogRepository provides data access methods for the log table.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new LogRepository with the provided database connection.
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// InsertLog writes one activity log entry.
func (r *LogRepository) InsertLog(ctx context.Context, l model.Log) error {
	query := `
		INSERT INTO log (id, timestamp, level, category, message, details, source, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.Timestamp.UTC().Format(logTimeLayout),
		l.Level,
		l.Category,
		l.Message,
		nullString(l.Details),
		l.Source,
		nullString(l.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// GetLogs returns one page of log entries matching filters, ordered by timestamp and ID in
// filters.SortDir. NextCursor is set when more entries follow.
//
//nolint:gocyclo // Query building is a flat list of optional filters
func (r *LogRepository) GetLogs(ctx context.Context, filters *model.LogFilters) (*model.LogResponse, error) {
	var where []string
	var args []any

	if len(filters.Levels) > 0 {
		where = append(where, "level IN ("+placeholders(len(filters.Levels))+")")
		for _, l := range filters.Levels {
			args = append(args, l)
		}
	}
	if len(filters.Categories) > 0 {
		where = append(where, "category IN ("+placeholders(len(filters.Categories))+")")
		for _, c := range filters.Categories {
			args = append(args, c)
		}
	}
	if filters.StartDate != nil {
		where = append(where, "timestamp >= ?")
		args = append(args, filters.StartDate.UTC().Format(logTimeLayout))
	}
	if filters.EndDate != nil {
		where = append(where, "timestamp <= ?")
		args = append(args, filters.EndDate.UTC().Format(logTimeLayout))
	}
	if filters.Source != "" {
		where = append(where, "source = ?")
		args = append(args, filters.Source)
	}
	if filters.Message != "" {
		where = append(where, "message LIKE ?")
		args = append(args, "%"+filters.Message+"%")
	}

	order, cmp := "DESC", "<"
	if filters.SortDir == "asc" {
		order, cmp = "ASC", ">"
	}

	if filters.Cursor != "" {
		ts, id, err := decodeCursor(filters.Cursor)
		if err != nil {
			return nil, err
		}
		where = append(where, fmt.Sprintf("(timestamp %s ? OR (timestamp = ? AND id %s ?))", cmp, cmp))
		args = append(args, ts, ts, id)
	}

	perPage := filters.PerPage
	if perPage <= 0 {
		perPage = 50
	}

	query := `SELECT id, timestamp, level, category, message, details, source, request_id FROM log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY timestamp %s, id %s LIMIT ?", order, order)
	args = append(args, perPage+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query log table: %w", err)
	}
	defer rows.Close()

	logs := []model.Log{}
	for rows.Next() {
		var l model.Log
		var ts string
		var details, requestID sql.NullString
		if err := rows.Scan(&l.ID, &ts, &l.Level, &l.Category, &l.Message, &details, &l.Source, &requestID); err != nil {
			return nil, fmt.Errorf("failed to scan log table results: %w", err)
		}
		l.Timestamp, err = time.Parse(logTimeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log timestamp: %w", err)
		}
		l.Details = details.String
		l.RequestID = requestID.String
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log table: %w", err)
	}

	resp := &model.LogResponse{Logs: logs}
	if len(logs) > perPage {
		resp.Logs = logs[:perPage]
		resp.HasMore = true
		last := resp.Logs[perPage-1]
		resp.NextCursor = encodeCursor(last.Timestamp.UTC().Format(logTimeLayout), last.ID)
	}
	resp.Count = len(resp.Logs)
	return resp, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeCursor(ts, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(ts + "|" + id))
}

func decodeCursor(cursor string) (ts, id string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrInvalidCursor, err)
	}
	ts, id, ok := strings.Cut(string(raw), "|")
	if !ok || ts == "" || id == "" {
		return "", "", apperrors.ErrInvalidCursor
	}
	return ts, id, nil
}
