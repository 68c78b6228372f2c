package model

import "time"

// LogResponse is a page of activity log entries.
type LogResponse struct {
	Logs       []Log  `json:"logs"`
	NextCursor string `json:"nextCursor"`
	HasMore    bool   `json:"hasMore"`
	Count      int    `json:"count"`
}

// Log is one activity log entry written by a state command.
type Log struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Source    string    `json:"source"`
	RequestID string    `json:"requestId,omitempty"`
}

// LogLevel is the severity of an activity log entry.
type LogLevel string

const (
	LogLevelDebug    LogLevel = "debug"
	LogLevelInfo     LogLevel = "info"
	LogLevelWarning  LogLevel = "warning"
	LogLevelError    LogLevel = "error"
	LogLevelCritical LogLevel = "critical"
)

// ValidLogLevels lists the accepted levels for filtering.
var ValidLogLevels = map[LogLevel]bool{
	LogLevelDebug: true, LogLevelInfo: true, LogLevelWarning: true, LogLevelError: true, LogLevelCritical: true,
}

// LogCategory groups activity log entries by the command family that wrote them.
type LogCategory string

const (
	LogCategoryConfig       LogCategory = "config"
	LogCategoryPortfolio    LogCategory = "portfolio"
	LogCategoryPolicy       LogCategory = "policy"
	LogCategoryAnalytics    LogCategory = "analytics"
	LogCategoryScenario     LogCategory = "scenario"
	LogCategoryIntelligence LogCategory = "intelligence"
	LogCategoryGovernance   LogCategory = "governance"
	LogCategoryWallet       LogCategory = "wallet"
	LogCategorySession      LogCategory = "session"
	LogCategorySystem       LogCategory = "system"
)

// ValidLogCategories lists the accepted categories for filtering.
var ValidLogCategories = map[LogCategory]bool{
	LogCategoryConfig: true, LogCategoryPortfolio: true, LogCategoryPolicy: true,
	LogCategoryAnalytics: true, LogCategoryScenario: true, LogCategoryIntelligence: true,
	LogCategoryGovernance: true, LogCategoryWallet: true, LogCategorySession: true,
	LogCategorySystem: true,
}

// LogFilters narrows an activity log query.
type LogFilters struct {
	Levels     []string
	Categories []string
	StartDate  *time.Time
	EndDate    *time.Time
	Source     string
	Message    string
	SortDir    string
	Cursor     string
	PerPage    int
}
