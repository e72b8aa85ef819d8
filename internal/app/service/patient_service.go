package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"careconnect/internal/app/triage"
	"careconnect/internal/domain/model"
	"careconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type PatientService struct {
	repo   repository.PatientRepository
	alerts AlertPublisher
	log    *slog.Logger
	now    func() time.Time
}

func NewPatientService(repo repository.PatientRepository, alerts AlertPublisher, log *slog.Logger) *PatientService {
	return &PatientService{repo: repo, alerts: alerts, log: log, now: time.Now}
}

type CreatePatientRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Location    string `json:"location" validate:"required"`
	ProblemType string `json:"problem_type" validate:"required"`
	Description string `json:"description" validate:"required"`

	// Accepted because the web client sends its own guess; never stored.
	Priority *string `json:"priority,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

// Create runs the intake pipeline: classify, summarise, persist. Priority
// and summary are always computed here, whatever the caller sent.
func (s *PatientService) Create(ctx context.Context, req CreatePatientRequest) (*model.PatientRequest, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	priority := triage.Classify(req.Description)
	summary := triage.Summarize(req.FullName, req.Location, req.ProblemType, priority)

	patient := &model.PatientRequest{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Phone:       req.Phone,
		Location:    req.Location,
		ProblemType: req.ProblemType,
		Description: req.Description,
		Priority:    priority,
		Summary:     &summary,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to store patient request: %w", err)
	}

	if req.Priority != nil && *req.Priority != string(priority) {
		s.log.InfoContext(ctx, "client priority overridden", "patient_id", patient.ID, "client", *req.Priority, "computed", priority)
	}

	if priority == model.PriorityHigh {
		s.publishAlert(ctx, patient)
	}
	return patient, nil
}

// publishAlert is best effort; the request is already stored.
func (s *PatientService) publishAlert(ctx context.Context, p *model.PatientRequest) {
	alert := model.PriorityAlert{
		PatientID:   p.ID,
		FullName:    p.FullName,
		Phone:       p.Phone,
		Location:    p.Location,
		ProblemType: p.ProblemType,
		Summary:     *p.Summary,
		CreatedAt:   p.CreatedAt,
	}
	if err := s.alerts.Publish(ctx, alert); err != nil {
		s.log.ErrorContext(ctx, "failed to publish priority alert", "patient_id", p.ID, "error", err)
	}
}

func (s *PatientService) List(ctx context.Context) ([]model.PatientRequest, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient requests: %w", err)
	}
	return patients, nil
}

// Delete removes a request. Unknown ids succeed.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient request %s: %w", id, err)
	}
	return nil
}
