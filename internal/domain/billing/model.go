package billing

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)

// ConsultationFee is charged for every prescription issued.
const ConsultationFee = "500.00"

type Bill struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PrescriptionID *uuid.UUID `json:"prescription_id,omitempty"`
	Amount         string     `json:"amount"`
	Status         string     `json:"status"`
	Description    string     `json:"description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
