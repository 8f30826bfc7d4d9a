// Package workflows owns the coordination between user mutations and the
// audit log. Each user-facing action is a named use case that performs the
// mutation and then appends exactly one audit entry, so the
// mutate-then-log contract lives in one place instead of being repeated by
// every handler.
package workflows

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/JayL96/user-management/metrics"
	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/services"
)

// RecentLogPageSize bounds the log listing shown on the user detail page
const RecentLogPageSize = 10

// UserWorkflows coordinates the user service and the audit log service
type UserWorkflows struct {
	users services.UserService
	logs  services.LogService
	log   zerolog.Logger
}

// NewUserWorkflows creates the user/log coordination workflows
func NewUserWorkflows(users services.UserService, logs services.LogService, logger zerolog.Logger) *UserWorkflows {
	return &UserWorkflows{
		users: users,
		logs:  logs,
		log:   logger,
	}
}

// CreateUserAndLog validates the form and, when valid, creates the user and
// appends a Created audit entry. Validation failures return field messages
// and leave both the user store and the log untouched.
func (w *UserWorkflows) CreateUserAndLog(ctx context.Context, form *models.UserForm) (*models.User, []string, error) {
	if msgs := form.Validate(); len(msgs) > 0 {
		return nil, msgs, nil
	}

	user := form.ToUser()
	if err := w.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	w.appendLog(ctx, user.ID, models.ActionCreated, fmt.Sprintf("Created user %s", user.FullName()))
	return user, nil, nil
}

// UpdateUserAndLog validates the form and, when valid, updates the user and
// appends an Updated audit entry. The update is a silent no-op when the ID
// matches no record; the entry is appended either way, matching the
// exactly-once logging of the other mutations.
func (w *UserWorkflows) UpdateUserAndLog(ctx context.Context, id int64, form *models.UserForm) ([]string, error) {
	if msgs := form.Validate(); len(msgs) > 0 {
		return msgs, nil
	}

	user := form.ToUser()
	user.ID = id
	if err := w.users.Update(ctx, user); err != nil {
		return nil, err
	}

	w.appendLog(ctx, id, models.ActionUpdated, fmt.Sprintf("Updated user %d", id))
	return nil, nil
}

// DeleteUserAndLog deletes the user and appends a Deleted audit entry. The
// delete no-ops silently when the user is already gone; the entry is still
// appended exactly once.
func (w *UserWorkflows) DeleteUserAndLog(ctx context.Context, id int64) error {
	if err := w.users.Delete(ctx, id); err != nil {
		return err
	}

	w.appendLog(ctx, id, models.ActionDeleted, fmt.Sprintf("Deleted user %d", id))
	return nil
}

// ViewUserAndLog fetches the user, records a Viewed audit entry, and returns
// the user together with their most recent audit entries. An absent user
// returns models.ErrNotFound and writes nothing.
func (w *UserWorkflows) ViewUserAndLog(ctx context.Context, id int64) (*models.User, []models.LogEntry, error) {
	user, err := w.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	w.appendLog(ctx, id, models.ActionViewed, "Viewed user details")

	entries, err := w.logs.ListForUser(ctx, id, 1, RecentLogPageSize)
	if err != nil {
		return nil, nil, err
	}

	return user, entries, nil
}

// appendLog writes the audit entry for a completed mutation. There is no
// transaction spanning the mutation and the log write, so a failed append
// cannot roll the mutation back; it is logged and counted, and the request
// carries on.
func (w *UserWorkflows) appendLog(ctx context.Context, userID int64, action models.LogAction, details string) {
	if _, err := w.logs.Append(ctx, userID, action, details); err != nil {
		metrics.AuditAppendErrorsTotal.Inc()
		w.log.Error().
			Err(err).
			Int64("user_id", userID).
			Stringer("action", action).
			Msg("failed to append audit log entry")
		return
	}
	metrics.AuditEntriesTotal.WithLabelValues(action.String()).Inc()
}
