// Package recurrence resolves weekly recurring exercise slots into concrete
// calendar weeks and applies per-date exclusions.
package recurrence

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the upper-case English day name used on the wire.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Week lists the days in Monday-anchored order.
var Week = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven day names.
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Index is the position of d in a Monday-anchored week, or -1.
func (d Weekday) Index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

// ParseWeekday normalises raw into a Weekday.
func ParseWeekday(raw string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(raw)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid day of week %q", raw)
	}
	return d, nil
}

// WeekdayOf returns the day name of t in its own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToUpper(t.Weekday().String()))
}
