package models

import (
	"strconv"
	"strings"
	"time"
)

// LogAction enumerates the user-facing actions recorded in the audit log
type LogAction int

const (
	ActionCreated LogAction = 1
	ActionUpdated LogAction = 2
	ActionDeleted LogAction = 3
	ActionViewed  LogAction = 4
)

// Actions lists all known log actions in declaration order
var Actions = []LogAction{ActionCreated, ActionUpdated, ActionDeleted, ActionViewed}

// String returns the display name of the action
func (a LogAction) String() string {
	switch a {
	case ActionCreated:
		return "Created"
	case ActionUpdated:
		return "Updated"
	case ActionDeleted:
		return "Deleted"
	case ActionViewed:
		return "Viewed"
	default:
		return "Unknown"
	}
}

// ParseLogAction parses an action from a query/form value. It accepts the
// action name (case-insensitive) or its numeric value. ok is false for
// anything unrecognized, including the empty string.
func ParseLogAction(s string) (LogAction, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	for _, a := range Actions {
		if strings.EqualFold(s, a.String()) {
			return a, true
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		a := LogAction(n)
		for _, known := range Actions {
			if a == known {
				return a, true
			}
		}
	}

	return 0, false
}

// LogEntry represents a single audit log record. Entries are immutable once
// written; there are no update or delete operations for them.
type LogEntry struct {
	ID      int64     `json:"id" db:"id"`
	UserID  int64     `json:"user_id" db:"user_id"`
	Action  LogAction `json:"action" db:"action"`
	Details string    `json:"details" db:"details"`
	Created time.Time `json:"created" db:"created"`
}

// NewLogEntry constructs an entry stamped with the current UTC time
func NewLogEntry(userID int64, action LogAction, details string) *LogEntry {
	return &LogEntry{
		UserID:  userID,
		Action:  action,
		Details: details,
		Created: time.Now().UTC(),
	}
}
