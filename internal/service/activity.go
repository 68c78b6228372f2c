package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// LogWriter stores activity log entries.
type LogWriter interface {
	InsertLog(ctx context.Context, l model.Log) error
}

type sourceKey struct{}

// WithSource tags ctx with the component issuing commands, e.g. "scheduler" or "cli".
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// ActivityLog writes the audit trail of state commands. A nil *ActivityLog discards entries.
type ActivityLog struct {
	repo          LogWriter
	defaultSource string
	now           func() time.Time
}

// NewActivityLog creates an ActivityLog. Entries without a source on their context are
// attributed to defaultSource.
func NewActivityLog(repo LogWriter, defaultSource string) *ActivityLog {
	return &ActivityLog{repo: repo, defaultSource: defaultSource, now: time.Now}
}

// Record stores one entry. Failures are logged and otherwise ignored.
func (a *ActivityLog) Record(ctx context.Context, level model.LogLevel, category model.LogCategory, message, details string) {
	if a == nil || a.repo == nil {
		return
	}
	source, _ := ctx.Value(sourceKey{}).(string)
	if source == "" {
		source = a.defaultSource
	}

	entry := model.Log{
		ID:        uuid.NewString(),
		Timestamp: a.now().UTC(),
		Level:     string(level),
		Category:  string(category),
		Message:   message,
		Details:   details,
		Source:    source,
		RequestID: middleware.GetReqID(ctx),
	}
	// The entry must survive a cancelled request.
	if err := a.repo.InsertLog(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("failed to write activity log", "category", category, "message", strings.TrimSpace(message), "error", err)
	}
}
