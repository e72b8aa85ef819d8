package model

import "time"

type VolunteerRegistration struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Skills       string    `json:"skills"` // comma-delimited
	Availability string    `json:"availability"`
	Location     string    `json:"location"`
	CreatedAt    time.Time `json:"created_at"`
}
