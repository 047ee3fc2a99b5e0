package prescription

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Notes     string    `json:"notes,omitempty"`
	Items     []*Item   `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a single drug line on a prescription, kept in the order the
// doctor wrote them.
type Item struct {
	ID             uuid.UUID `json:"id"`
	PrescriptionID uuid.UUID `json:"prescription_id"`
	Position       int       `json:"position"`
	DrugName       string    `json:"drug_name"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration"`
}
