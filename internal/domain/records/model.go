package records

import (
	"time"

	"github.com/google/uuid"
)

// MedicalHistory is a patient-maintained record entry. Patients own their
// entries fully; doctors have read access for treatment context.
type MedicalHistory struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Diagnosis   string    `json:"diagnosis"`
	Medications string    `json:"medications,omitempty"`
	Allergies   string    `json:"allergies,omitempty"`
	Treatment   string    `json:"treatment,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
