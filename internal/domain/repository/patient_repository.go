package repository

import (
	"context"
	"database/sql"
	"fmt"

	"careconnect/internal/common"
	"careconnect/internal/domain/model"
)

type PatientRepository interface {
	Create(ctx context.Context, p *model.PatientRequest) error
	// List returns every request, newest first.
	List(ctx context.Context) ([]model.PatientRequest, error)
	// Delete removes the request; a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

type pgPatientRepository struct {
	db *sql.DB
}

func NewPgPatientRepository(db *sql.DB) PatientRepository {
	return &pgPatientRepository{db: db}
}

func (r *pgPatientRepository) Create(ctx context.Context, p *model.PatientRequest) error {
	query := `INSERT INTO patients (id, full_name, phone, location, problem_type, description, priority, summary, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.FullName, p.Phone, p.Location, p.ProblemType, p.Description, string(p.Priority), nullString(p.Summary), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgPatientRepository.Create: %v: %w", err, common.ErrStorage)
	}
	return nil
}

func (r *pgPatientRepository) List(ctx context.Context) ([]model.PatientRequest, error) {
	query := `SELECT id, full_name, phone, location, problem_type, description, priority, summary, created_at
	          FROM patients ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgPatientRepository.List: %v: %w", err, common.ErrStorage)
	}
	defer rows.Close()

	patients := []model.PatientRequest{}
	for rows.Next() {
		var (
			p        model.PatientRequest
			priority string
			summary  sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.FullName, &p.Phone, &p.Location, &p.ProblemType, &p.Description, &priority, &summary, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgPatientRepository.List scan: %v: %w", err, common.ErrStorage)
		}
		p.Priority = model.Priority(priority)
		if summary.Valid {
			s := summary.String
			p.Summary = &s
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPatientRepository.List rows: %v: %w", err, common.ErrStorage)
	}
	return patients, nil
}

func (r *pgPatientRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pgPatientRepository.Delete: %v: %w", err, common.ErrStorage)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
