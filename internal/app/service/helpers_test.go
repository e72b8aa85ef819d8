package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"careconnect/internal/common"
	"careconnect/internal/common/security"
	"careconnect/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *security.TokenManager {
	return security.NewTokenManager([]byte("test-secret"), time.Hour)
}

// steppingClock returns times one second apart, starting at base.
func steppingClock(base time.Time) func() time.Time {
	var mu sync.Mutex
	next := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

// countingUserRepo records every call and stores nothing.
type countingUserRepo struct {
	calls int
}

func (r *countingUserRepo) Create(context.Context, *model.User) error {
	r.calls++
	return errors.New("unexpected Create")
}

func (r *countingUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	r.calls++
	return nil, common.ErrNotFound
}

type failingPatientRepo struct{}

func (failingPatientRepo) Create(context.Context, *model.PatientRequest) error {
	return fmt.Errorf("insert: connection reset: %w", common.ErrStorage)
}

func (failingPatientRepo) List(context.Context) ([]model.PatientRequest, error) {
	return nil, fmt.Errorf("select: %w", common.ErrStorage)
}

func (failingPatientRepo) Delete(context.Context, string) error {
	return fmt.Errorf("delete: %w", common.ErrStorage)
}

type recordingPublisher struct {
	mu     sync.Mutex
	alerts []model.PriorityAlert
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, alert model.PriorityAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return p.err
}
