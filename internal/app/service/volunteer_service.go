package service

import (
	"context"
	"fmt"
	"time"

	"careconnect/internal/domain/model"
	"careconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type VolunteerService struct {
	repo repository.VolunteerRepository
	now  func() time.Time
}

func NewVolunteerService(repo repository.VolunteerRepository) *VolunteerService {
	return &VolunteerService{repo: repo, now: time.Now}
}

type CreateVolunteerRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Skills       string `json:"skills" validate:"required"`
	Availability string `json:"availability" validate:"required"`
	Location     string `json:"location" validate:"required"`
}

func (s *VolunteerService) Create(ctx context.Context, req CreateVolunteerRequest) (*model.VolunteerRegistration, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	v := &model.VolunteerRegistration{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Skills:       req.Skills,
		Availability: req.Availability,
		Location:     req.Location,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to store volunteer registration: %w", err)
	}
	return v, nil
}

func (s *VolunteerService) List(ctx context.Context) ([]model.VolunteerRegistration, error) {
	volunteers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return volunteers, nil
}

// Delete removes a registration. Unknown ids succeed.
func (s *VolunteerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete volunteer %s: %w", id, err)
	}
	return nil
}
