package recurrence

import (
	"sort"
	"time"

	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// FieldExcludedDate keys exclusion validation messages.
const FieldExcludedDate = "excluded_date"

// Recurring is anything scheduled on one weekday at a fixed start time.
type Recurring interface {
	OccurrenceID() int64
	Weekday() Weekday
	StartHour() string
}

// DateSet holds calendar dates in DateLayout form.
type DateSet map[string]struct{}

// Exclusions maps a recurring slot id to its excluded dates.
type Exclusions map[int64]DateSet

// Add records date as excluded for id.
func (e Exclusions) Add(id int64, date time.Time) {
	set, ok := e[id]
	if !ok {
		set = DateSet{}
		e[id] = set
	}
	set[date.Format(DateLayout)] = struct{}{}
}

// IsExcluded reports whether date's calendar day is in set.
func IsExcluded(set DateSet, date time.Time) bool {
	_, ok := set[date.Format(DateLayout)]
	return ok
}

// Occurrence is a recurring item placed on a concrete date.
type Occurrence[T Recurring] struct {
	Item     T    `json:"item"`
	Excluded bool `json:"excluded"`
}

// Day is one bucket of a resolved week.
type Day[T Recurring] struct {
	Weekday     Weekday         `json:"day"`
	Date        string          `json:"date"`
	Occurrences []Occurrence[T] `json:"occurrences"`
}

// Midnight truncates t to the start of its calendar day in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday of today's week shifted by offset weeks.
func WeekStart(today time.Time, offset int) time.Time {
	day := Midnight(today)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -sinceMonday+7*offset)
}

// ResolveWeek buckets items into the seven days starting at weekStart. Within a
// day items are ordered by start hour; HH:MM strings sort correctly as text.
func ResolveWeek[T Recurring](items []T, weekStart time.Time, exclusions Exclusions) [7]Day[T] {
	weekStart = Midnight(weekStart)
	var week [7]Day[T]
	for i, wd := range Week {
		week[i] = Day[T]{
			Weekday:     wd,
			Date:        weekStart.AddDate(0, 0, i).Format(DateLayout),
			Occurrences: []Occurrence[T]{},
		}
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartHour() < sorted[j].StartHour() })

	for _, item := range sorted {
		idx := item.Weekday().Index()
		if idx < 0 {
			continue
		}
		date := weekStart.AddDate(0, 0, idx)
		week[idx].Occurrences = append(week[idx].Occurrences, Occurrence[T]{
			Item:     item,
			Excluded: IsExcluded(exclusions[item.OccurrenceID()], date),
		})
	}
	return week
}

// OccursOn filters items scheduled on date's weekday that are not excluded on
// date, ordered by start hour.
func OccursOn[T Recurring](items []T, date time.Time, exclusions Exclusions) []T {
	wd := WeekdayOf(date)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Weekday() != wd || IsExcluded(exclusions[item.OccurrenceID()], date) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartHour() < out[j].StartHour() })
	return out
}

// ParseDate reads a DateLayout string as midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, raw, loc)
}

// ValidateExclusion rejects dates before today's calendar day.
func ValidateExclusion(date, today time.Time) appErrors.FieldErrors {
	fields := appErrors.FieldErrors{}
	if Midnight(date).Before(Midnight(today.In(date.Location()))) {
		fields.Add(FieldExcludedDate, "Excluded date cannot be in the past")
	}
	return fields
}
