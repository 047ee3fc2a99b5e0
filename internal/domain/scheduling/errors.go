package scheduling

import "errors"

var (
	// ErrPastDate is returned when a booking targets a calendar day before today.
	ErrPastDate = errors.New("cannot book an appointment in the past")
	// ErrSlotUnavailable is returned when the requested time is not among the
	// doctor's currently open slots for that date.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrSlotTaken is returned when the insert loses a race: another booking
	// claimed the same (doctor, date, time) between the availability check and
	// the write.
	ErrSlotTaken = errors.New("slot was just booked by someone else")
	// ErrInvalidTransition is returned when a lifecycle change starts from a
	// terminal state.
	ErrInvalidTransition = errors.New("appointment is in a terminal state")
	// ErrNotOwner is returned when a doctor tries to manage an appointment
	// assigned to a different doctor.
	ErrNotOwner = errors.New("appointment belongs to another doctor")
	// ErrNotFound is returned when no appointment matches.
	ErrNotFound = errors.New("appointment not found")
)
