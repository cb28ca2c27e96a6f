package storage

import (
	"context"
	"sync"
	"time"

	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

// MemoryStorage is a process-local UserStore. Data is lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*usermodel.User
	byEmail map[string]int64
	now     func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		nextID:  1,
		byID:    make(map[int64]*usermodel.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (s *MemoryStorage) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	user := &usermodel.User{
		ID:           s.nextID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.nextID++

	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID

	cp := *user
	return &cp, nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, nil
	}

	cp := *s.byID[id]
	return &cp, nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id int64) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byID[id]
	if !exists {
		return nil, nil
	}

	cp := *user
	return &cp, nil
}

func (s *MemoryStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

var _ UserStore = (*MemoryStorage)(nil)
