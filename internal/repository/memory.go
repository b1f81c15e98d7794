package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

var (
	_ UserRepository   = (*MemoryUserRepository)(nil)
	_ TicketRepository = (*MemoryTicketRepository)(nil)
)

// MemoryUserRepository keeps users in process memory. It backs development
// runs without POSTGRES_DSN and the handler tests.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]domain.User
}

// NewMemoryUserRepository returns an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]domain.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicate
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.users[user.Username]
	if !exists {
		return ErrNotFound
	}
	current.PasswordHash = user.PasswordHash
	current.AuthLevel = user.AuthLevel
	r.users[user.Username] = current
	return nil
}

func (r *MemoryUserRepository) DeleteByUsername(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[username]; !exists {
		return ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[username]
	if !exists {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// MemoryTicketRepository keeps tickets in process memory.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	nextID  int64
	tickets map[int64]domain.Ticket
}

// NewMemoryTicketRepository returns an empty repository.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: map[int64]domain.Ticket{}}
}

func (r *MemoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ticket.ID = r.nextID
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, exists := r.tickets[id]
	if !exists {
		return nil, ErrNotFound
	}
	clone := cloneTicket(ticket)
	return &clone, nil
}

func (r *MemoryTicketRepository) List(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if filter.OwnerID != nil && ticket.Owner.ID != *filter.OwnerID {
			continue
		}
		result = append(result, cloneTicket(ticket))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryTicketRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[id]; !exists {
		return ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *MemoryTicketRepository) AppendMessage(_ context.Context, id int64, msg domain.Message) error {
	return r.mutate(id, func(t *domain.Ticket) {
		t.Messages = append(t.Messages, msg)
		stamp := msg.Timestamp
		t.UpdatedTimestamp = &stamp
	})
}

func (r *MemoryTicketRepository) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus, updatedAt time.Time) error {
	return r.mutate(id, func(t *domain.Ticket) {
		t.Status = status
		t.UpdatedTimestamp = &updatedAt
	})
}

func (r *MemoryTicketRepository) UpdatePriority(_ context.Context, id int64, priority int, updatedAt time.Time) error {
	return r.mutate(id, func(t *domain.Ticket) {
		t.Priority = priority
		t.UpdatedTimestamp = &updatedAt
	})
}

func (r *MemoryTicketRepository) mutate(id int64, fn func(*domain.Ticket)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, exists := r.tickets[id]
	if !exists {
		return ErrNotFound
	}
	ticket = cloneTicket(ticket)
	fn(&ticket)
	r.tickets[id] = ticket
	return nil
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	t.Messages = append([]domain.Message(nil), t.Messages...)
	if t.UpdatedTimestamp != nil {
		stamp := *t.UpdatedTimestamp
		t.UpdatedTimestamp = &stamp
	}
	return t
}
