package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/JayL96/user-management/models"
)

// MemoryUserRepository is an in-memory UserRepository keyed by ID. It backs
// tests and keeps the same assignment-on-create semantics as the SQLite
// implementation.
type MemoryUserRepository struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]models.User
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]models.User)}
}

func (r *MemoryUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByActive(ctx context.Context, isActive bool) ([]models.User, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	for _, u := range all {
		if u.IsActive == isActive {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	user.ID = r.seq
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return models.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// MemoryLogRepository is an in-memory LogRepository. Filtering goes through
// LogFilter.Matches, the same predicate the SQLite implementation mirrors in
// SQL, and ordering is created descending with ID descending as tie-break.
type MemoryLogRepository struct {
	mu      sync.Mutex
	seq     int64
	entries []models.LogEntry
}

// NewMemoryLogRepository creates an empty in-memory log repository
func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{}
}

func (r *MemoryLogRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	entry.ID = r.seq
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryLogRepository) GetByID(ctx context.Context, id int64) (*models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *MemoryLogRepository) List(ctx context.Context, filter LogFilter, limit, offset int) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.LogEntry
	for _, e := range r.entries {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}
	return window(sortDescending(matched), limit, offset), nil
}

func (r *MemoryLogRepository) Count(ctx context.Context, filter LogFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries {
		if filter.Matches(e) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryLogRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]models.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.LogEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			matched = append(matched, e)
		}
	}
	return window(sortDescending(matched), limit, offset), nil
}

func (r *MemoryLogRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

// sortDescending orders entries by created timestamp descending, ID
// descending on equal timestamps
func sortDescending(entries []models.LogEntry) []models.LogEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Created.Equal(entries[j].Created) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Created.After(entries[j].Created)
	})
	return entries
}

// window applies an offset/limit slice to already-sorted entries
func window(entries []models.LogEntry, limit, offset int) []models.LogEntry {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return nil
	}
	entries = entries[offset:]
	if limit >= 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}
