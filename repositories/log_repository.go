package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/JayL96/user-management/models"
)

// LogFilter narrows audit log listings. A nil Action means any action; a
// blank Search means no text filter. Search matches case-insensitively
// against the entry details or the action's display name.
type LogFilter struct {
	Action *models.LogAction
	Search string
}

// Matches reports whether an entry satisfies the filter. This is the single
// definition of the filter predicate; SQL-backed listings translate it via
// whereClause and must stay consistent with it.
func (f LogFilter) Matches(entry models.LogEntry) bool {
	if f.Action != nil && entry.Action != *f.Action {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(entry.Details), search) ||
		strings.Contains(strings.ToLower(entry.Action.String()), search)
}

// LogRepository handles audit log persistence. Entries are append-only:
// there is no update or delete.
type LogRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) error
	GetByID(ctx context.Context, id int64) (*models.LogEntry, error)
	List(ctx context.Context, filter LogFilter, limit, offset int) ([]models.LogEntry, error)
	Count(ctx context.Context, filter LogFilter) (int, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.LogEntry, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
}

// logRepository implements LogRepository over SQLite
type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new audit log repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

// Create inserts a new audit log entry and assigns its ID
func (r *logRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	query := `
		INSERT INTO audit_log (user_id, action, details, created)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		int(entry.Action),
		entry.Details,
		entry.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// GetByID retrieves an audit log entry by ID. Returns models.ErrNotFound when absent.
func (r *logRepository) GetByID(ctx context.Context, id int64) (*models.LogEntry, error) {
	query := `
		SELECT id, user_id, action, details, created
		FROM audit_log
		WHERE id = ?
	`

	var entry models.LogEntry
	var action int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.UserID,
		&action,
		&entry.Details,
		&entry.Created,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log entry: %w", err)
	}

	entry.Action = models.LogAction(action)
	return &entry, nil
}

// List retrieves filtered entries ordered by created timestamp descending,
// id descending as the tie-break, with the given window applied.
func (r *logRepository) List(ctx context.Context, filter LogFilter, limit, offset int) ([]models.LogEntry, error) {
	where, args := whereClause(filter)
	query := `
		SELECT id, user_id, action, details, created
		FROM audit_log
	` + where + `
		ORDER BY created DESC, id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	return scanLogEntries(rows)
}

// Count returns the cardinality of entries matching the filter. It shares
// whereClause with List so counting and listing cannot drift apart.
func (r *logRepository) Count(ctx context.Context, filter LogFilter) (int, error) {
	where, args := whereClause(filter)
	query := `SELECT COUNT(*) FROM audit_log` + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit log entries: %w", err)
	}

	return count, nil
}

// ListForUser retrieves a user's entries, newest first
func (r *logRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.LogEntry, error) {
	query := `
		SELECT id, user_id, action, details, created
		FROM audit_log
		WHERE user_id = ?
		ORDER BY created DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log for user: %w", err)
	}
	defer rows.Close()

	return scanLogEntries(rows)
}

// CountForUser returns the number of entries referencing a user
func (r *logRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit log entries for user: %w", err)
	}

	return count, nil
}

// whereClause translates a LogFilter into SQL. The text filter matches the
// details column (SQLite LIKE is case-insensitive for ASCII) or any action
// whose display name contains the search term.
func whereClause(filter LogFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.Action != nil {
		conds = append(conds, "action = ?")
		args = append(args, int(*filter.Action))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		matching := actionsMatching(search)

		cond := `details LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(search)+"%")

		if len(matching) > 0 {
			placeholders := make([]string, len(matching))
			for i, a := range matching {
				placeholders[i] = "?"
				args = append(args, int(a))
			}
			cond = "(" + cond + " OR action IN (" + strings.Join(placeholders, ", ") + "))"
		}

		conds = append(conds, cond)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// actionsMatching returns the actions whose display name contains the search
// term, case-insensitively
func actionsMatching(search string) []models.LogAction {
	search = strings.ToLower(search)

	var matching []models.LogAction
	for _, a := range models.Actions {
		if strings.Contains(strings.ToLower(a.String()), search) {
			matching = append(matching, a)
		}
	}
	return matching
}

// escapeLike escapes LIKE wildcards in a user-supplied search term
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// scanLogEntries scans all rows into a log entry slice
func scanLogEntries(rows *sql.Rows) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		var action int
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&action,
			&entry.Details,
			&entry.Created,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entry.Action = models.LogAction(action)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log entries: %w", err)
	}

	return entries, nil
}
