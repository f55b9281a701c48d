package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user directory for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Same guarantee the Postgres unique indexes give: uniqueness is scoped
	// to role plus either contact field.
	for _, existing := range r.users {
		if existing.Role != user.Role {
			continue
		}
		if contactMatches(existing, user.Email) || contactMatches(existing, user.Phone) {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByRoleAndContact(_ context.Context, role, email, phone string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Role != role {
			continue
		}
		if contactMatches(user, email) || contactMatches(user, phone) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindByContact(_ context.Context, phonemail string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if contactMatches(user, phonemail) {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindByClaims(_ context.Context, email, phone, role string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email && user.Phone == phone && user.Role == role {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Status = status
	r.users[id] = user
	return nil
}

func contactMatches(u User, value string) bool {
	if value == "" {
		return false
	}
	return u.Email == value || u.Phone == value
}
