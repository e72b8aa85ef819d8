package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"careconnect/internal/common"
	"careconnect/internal/domain/model"
)

// In-memory repositories back STORE_DRIVER=memory and tests. Each method
// holds the lock for its whole body, which gives the same per-record
// atomicity the database provides.

type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{byEmail: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("user with email %q: %w", user.Email, common.ErrUserExists)
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

// Len reports the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

type MemoryPatientRepository struct {
	mu      sync.RWMutex
	records []model.PatientRequest
}

func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{}
}

func (r *MemoryPatientRepository) Create(_ context.Context, p *model.PatientRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	if p.Summary != nil {
		s := strings.Clone(*p.Summary)
		stored.Summary = &s
	}
	r.records = append(r.records, stored)
	return nil
}

func (r *MemoryPatientRepository) List(_ context.Context) ([]model.PatientRequest, error) {
	r.mu.RLock()
	out := newestFirst(r.records)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryPatientRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type MemoryVolunteerRepository struct {
	mu      sync.RWMutex
	records []model.VolunteerRegistration
}

func NewMemoryVolunteerRepository() *MemoryVolunteerRepository {
	return &MemoryVolunteerRepository{}
}

func (r *MemoryVolunteerRepository) Create(_ context.Context, v *model.VolunteerRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *v)
	return nil
}

func (r *MemoryVolunteerRepository) List(_ context.Context) ([]model.VolunteerRegistration, error) {
	r.mu.RLock()
	out := newestFirst(r.records)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryVolunteerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// newestFirst copies records in reverse insertion order so equal
// timestamps still list the latest insert first after a stable sort.
func newestFirst[T any](records []T) []T {
	out := make([]T, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}
