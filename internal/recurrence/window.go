package recurrence

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

// FieldSchedule keys every schedule validation message.
const FieldSchedule = "schedule"

// ParseClock converts a zero padded 24h HH:MM string into minutes since midnight.
func ParseClock(raw string) (int, error) {
	if len(raw) != 5 || raw[2] != ':' {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	h, err := strconv.Atoi(raw[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(raw[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return h*60 + m, nil
}

// ValidateWindow checks a weekly slot: a valid day plus an HH:MM window whose
// end is strictly after its start. The first failing rule is reported.
func ValidateWindow(day, start, end string) appErrors.FieldErrors {
	fields := appErrors.FieldErrors{}
	if _, err := ParseWeekday(day); err != nil {
		fields.Add(FieldSchedule, "Please select a day of the week")
		return fields
	}
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" {
		fields.Add(FieldSchedule, "Start time is required")
		return fields
	}
	if end == "" {
		fields.Add(FieldSchedule, "End time is required")
		return fields
	}
	startMin, err := ParseClock(start)
	if err != nil {
		fields.Add(FieldSchedule, "Start time must be in HH:MM format")
		return fields
	}
	endMin, err := ParseClock(end)
	if err != nil {
		fields.Add(FieldSchedule, "End time must be in HH:MM format")
		return fields
	}
	if endMin <= startMin {
		fields.Add(FieldSchedule, "End time must be after start time")
	}
	return fields
}
