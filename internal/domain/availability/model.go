package availability

import (
	"time"

	"github.com/google/uuid"
)

// Day-of-week values run 0=Monday through 6=Sunday.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Availability is a weekly recurring working window for a doctor.
// Times are zero-padded "HH:MM" strings; the window covers [StartTime, EndTime).
// Windows are immutable: there is no update path, replacing one means
// deleting it and creating a new one.
type Availability struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Availability) DayName() string {
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		return ""
	}
	return DayNames[a.DayOfWeek]
}

// Overlaps reports whether two half-open windows on the same weekday
// intersect. Back-to-back windows (one ends exactly when the other starts)
// do not overlap.
func (a *Availability) Overlaps(other *Availability) bool {
	if a.DayOfWeek != other.DayOfWeek {
		return false
	}
	return a.StartTime < other.EndTime && a.EndTime > other.StartTime
}

// Covers reports whether t ("HH:MM") falls inside the window [start, end).
func (a *Availability) Covers(t string) bool {
	return a.StartTime <= t && t < a.EndTime
}
