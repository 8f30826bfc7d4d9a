package services

import (
	"context"
	"fmt"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/repositories"
)

// LogService answers filtered, paginated, and counted views over the audit
// log. Listings are always ordered by created timestamp descending (ID
// descending on ties) and paged with 1-based offset windows. Pagination runs
// over a full scan of the collection, which is fine at the sizes an admin
// app sees; a bigger deployment would want keyset pagination behind the same
// interface.
type LogService interface {
	Append(ctx context.Context, userID int64, action models.LogAction, details string) (*models.LogEntry, error)
	ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]models.LogEntry, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
	ListPaged(ctx context.Context, page, pageSize int, action *models.LogAction, search string) ([]models.LogEntry, error)
	Count(ctx context.Context, action *models.LogAction, search string) (int, error)
	GetByID(ctx context.Context, id int64) (*models.LogEntry, error)
}

// logService implements LogService
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new audit log service
func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// Append records an audit entry stamped with the current UTC time. It
// performs no validation; it only fails if the store rejects the write.
func (s *logService) Append(ctx context.Context, userID int64, action models.LogAction, details string) (*models.LogEntry, error) {
	entry := models.NewLogEntry(userID, action, details)
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit log entry: %w", err)
	}
	return entry, nil
}

// ListForUser returns one page of a user's entries, newest first. Pages are
// 1-based; a page past the available entries is empty.
func (s *logService) ListForUser(ctx context.Context, userID int64, page, pageSize int) ([]models.LogEntry, error) {
	return s.logRepo.ListForUser(ctx, userID, pageSize, pageOffset(page, pageSize))
}

// CountForUser returns the number of entries referencing a user
func (s *logService) CountForUser(ctx context.Context, userID int64) (int, error) {
	return s.logRepo.CountForUser(ctx, userID)
}

// ListPaged returns one page of the full log, optionally narrowed by an
// exact action match and a case-insensitive search over details or action
// name.
func (s *logService) ListPaged(ctx context.Context, page, pageSize int, action *models.LogAction, search string) ([]models.LogEntry, error) {
	filter := repositories.LogFilter{Action: action, Search: search}
	return s.logRepo.List(ctx, filter, pageSize, pageOffset(page, pageSize))
}

// Count returns the cardinality under the same filter ListPaged applies
func (s *logService) Count(ctx context.Context, action *models.LogAction, search string) (int, error) {
	filter := repositories.LogFilter{Action: action, Search: search}
	return s.logRepo.Count(ctx, filter)
}

// GetByID retrieves a single entry. Returns models.ErrNotFound when absent.
func (s *logService) GetByID(ctx context.Context, id int64) (*models.LogEntry, error) {
	return s.logRepo.GetByID(ctx, id)
}

// pageOffset converts a 1-based page to a skip count, clamping page values
// below 1 to the first page
func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
