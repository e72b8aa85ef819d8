package repository

import (
	"context"
	"database/sql"
	"fmt"

	"careconnect/internal/common"
	"careconnect/internal/domain/model"
)

type VolunteerRepository interface {
	Create(ctx context.Context, v *model.VolunteerRegistration) error
	// List returns every registration, newest first.
	List(ctx context.Context) ([]model.VolunteerRegistration, error)
	// Delete removes the registration; a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

type pgVolunteerRepository struct {
	db *sql.DB
}

func NewPgVolunteerRepository(db *sql.DB) VolunteerRepository {
	return &pgVolunteerRepository{db: db}
}

func (r *pgVolunteerRepository) Create(ctx context.Context, v *model.VolunteerRegistration) error {
	query := `INSERT INTO volunteers (id, full_name, phone, email, skills, availability, location, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.FullName, v.Phone, v.Email, v.Skills, v.Availability, v.Location, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgVolunteerRepository.Create: %v: %w", err, common.ErrStorage)
	}
	return nil
}

func (r *pgVolunteerRepository) List(ctx context.Context) ([]model.VolunteerRegistration, error) {
	query := `SELECT id, full_name, phone, email, skills, availability, location, created_at
	          FROM volunteers ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgVolunteerRepository.List: %v: %w", err, common.ErrStorage)
	}
	defer rows.Close()

	volunteers := []model.VolunteerRegistration{}
	for rows.Next() {
		var v model.VolunteerRegistration
		if err := rows.Scan(&v.ID, &v.FullName, &v.Phone, &v.Email, &v.Skills, &v.Availability, &v.Location, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgVolunteerRepository.List scan: %v: %w", err, common.ErrStorage)
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgVolunteerRepository.List rows: %v: %w", err, common.ErrStorage)
	}
	return volunteers, nil
}

func (r *pgVolunteerRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM volunteers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("pgVolunteerRepository.Delete: %v: %w", err, common.ErrStorage)
	}
	return nil
}
