package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

type PatientRequest struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	ProblemType string    `json:"problem_type"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Summary     *string   `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// PriorityAlert is queued for coordinators when a HIGH priority request lands.
type PriorityAlert struct {
	PatientID   string    `json:"patient_id"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	ProblemType string    `json:"problem_type"`
	Summary     string    `json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
	Attempts    int       `json:"attempts"`
}
