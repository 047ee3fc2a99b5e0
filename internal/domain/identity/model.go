package identity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile and PatientProfile carry the application data for a user.
// UserID is the subject of the auth token; profiles are provisioned
// explicitly by an administrator when the role is assigned, never created
// lazily on first request.

type DoctorProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization"`
	Department     string    `json:"department"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PatientProfile struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	InsuranceInfo string    `json:"insurance_info,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
