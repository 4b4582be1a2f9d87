package repo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrDuplicateLogin = errors.New("login already exists")

// MemoryRepository keeps users and runs in process memory. It backs the CLI
// and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[string]memUser
	runs   map[uuid.UUID]Run
}

type memUser struct {
	id    int
	email string
	hash  string
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]memUser),
		runs:  make(map[uuid.UUID]Run),
	}
}

func (m *MemoryRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrDuplicateLogin
	}
	m.nextID++
	m.users[login] = memUser{id: m.nextID, email: email, hash: password}
	return m.nextID, nil
}

func (m *MemoryRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func (m *MemoryRepository) SaveRun(ctx context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *MemoryRepository) ListRuns(ctx context.Context, userID int, kind string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Run
	for _, r := range m.runs {
		if r.UserID != userID || (kind != "" && r.Kind != kind) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) GetRun(ctx context.Context, userID int, id uuid.UUID) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok || r.UserID != userID {
		return Run{}, ErrNotFound
	}
	return r, nil
}
