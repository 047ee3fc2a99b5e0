package scheduling

import "fmt"

const (
	// Clinic-wide consultation day. Every doctor shares the same slot
	// template; declared availability windows are advisory and do not
	// narrow the template.
	DefaultOpen     = "09:00"
	DefaultClose    = "17:00"
	DefaultInterval = 30
)

// GenerateSlots returns the "HH:MM" times from open (inclusive) stepping
// interval minutes, stopping strictly before close. The close time itself is
// never a slot. With the defaults this yields 16 slots, 09:00 through 16:30.
// The function is pure: the same inputs always give the same template, with
// no dependence on date or doctor.
func GenerateSlots(open, close string, interval int) []string {
	start := toMinutes(open)
	end := toMinutes(close)
	if interval <= 0 || start < 0 || end < 0 {
		return nil
	}
	var slots []string
	for t := start; t < end; t += interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots
}

// DefaultSlots returns the standard clinic template.
func DefaultSlots() []string {
	return GenerateSlots(DefaultOpen, DefaultClose, DefaultInterval)
}

// toMinutes parses a zero-padded "HH:MM" value into minutes since midnight,
// returning -1 for malformed input.
func toMinutes(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%02d:%02d", &h, &m); err != nil {
		return -1
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return -1
	}
	return h*60 + m
}
