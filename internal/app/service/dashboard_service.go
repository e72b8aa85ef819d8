package service

import (
	"context"
	"fmt"

	"careconnect/internal/domain/model"
	"careconnect/internal/domain/repository"

	"github.com/gosimple/slug"
)

const otherProblemType = "other"

type DashboardService struct {
	patients   repository.PatientRepository
	volunteers repository.VolunteerRepository
}

func NewDashboardService(patients repository.PatientRepository, volunteers repository.VolunteerRepository) *DashboardService {
	return &DashboardService{patients: patients, volunteers: volunteers}
}

// Stats returns the admin dashboard counters. Problem types are grouped by
// slug so free-form spellings of the same category share a bucket.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient requests: %w", err)
	}
	volunteers, err := s.volunteers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load volunteers: %w", err)
	}

	stats := &model.DashboardStats{
		TotalRequests: len(patients),
		Volunteers:    len(volunteers),
		ByProblemType: make(map[string]int),
	}
	for _, p := range patients {
		switch p.Priority {
		case model.PriorityHigh:
			stats.HighPriority++
		case model.PriorityNormal:
			stats.NormalPriority++
		}
		key := slug.Make(p.ProblemType)
		if key == "" {
			key = otherProblemType
		}
		stats.ByProblemType[key]++
	}
	return stats, nil
}
