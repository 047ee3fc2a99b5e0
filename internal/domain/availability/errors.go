package availability

import "errors"

var (
	// ErrInvalidInterval is returned when start_time is not strictly before end_time.
	ErrInvalidInterval = errors.New("start_time must be before end_time")
	// ErrInvalidDay is returned for a day_of_week outside 0 (Monday) .. 6 (Sunday).
	ErrInvalidDay = errors.New("day_of_week must be between 0 and 6")
	// ErrInvalidTime is returned when a time value is not a valid zero-padded HH:MM.
	ErrInvalidTime = errors.New("time must be in HH:MM format")
	// ErrOverlap is returned when a new window intersects an existing one for
	// the same doctor and weekday.
	ErrOverlap = errors.New("window overlaps an existing availability")
	// ErrNotFound is returned when no matching window exists for the doctor.
	ErrNotFound = errors.New("availability not found")
)
