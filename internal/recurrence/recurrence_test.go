package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	id    int64
	day   Weekday
	start string
}

func (s slot) OccurrenceID() int64 { return s.id }
func (s slot) Weekday() Weekday    { return s.day }
func (s slot) StartHour() string   { return s.start }

func date(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw, time.UTC)
	require.NoError(t, err)
	return d
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name            string
		day, start, end string
		want            string
	}{
		{"valid", "MONDAY", "09:00", "10:30", ""},
		{"lower case day", "friday", "06:00", "06:01", ""},
		{"missing day", "", "09:00", "10:00", "Please select a day of the week"},
		{"unknown day", "FUNDAY", "09:00", "10:00", "Please select a day of the week"},
		{"missing start", "MONDAY", "", "10:00", "Start time is required"},
		{"missing end", "MONDAY", "09:00", " ", "End time is required"},
		{"bad start format", "MONDAY", "9:00", "10:00", "Start time must be in HH:MM format"},
		{"bad end format", "MONDAY", "09:00", "24:00", "End time must be in HH:MM format"},
		{"end before start", "MONDAY", "09:00", "08:00", "End time must be after start time"},
		{"end equal start", "MONDAY", "09:00", "09:00", "End time must be after start time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ValidateWindow(tt.day, tt.start, tt.end)
			if tt.want == "" {
				assert.True(t, fields.Empty(), fields.Error())
				return
			}
			assert.Equal(t, tt.want, fields[FieldSchedule])
		})
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, m)

	for _, bad := range []string{"", "7:00", "07:60", "ab:cd", "07-00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestWeekStart(t *testing.T) {
	wednesday := time.Date(2024, 5, 8, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, date(t, "2024-05-06"), WeekStart(wednesday, 0))
	assert.Equal(t, date(t, "2024-04-29"), WeekStart(wednesday, -1))
	assert.Equal(t, date(t, "2024-05-13"), WeekStart(wednesday, 1))

	sunday := time.Date(2024, 5, 12, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, date(t, "2024-05-06"), WeekStart(sunday, 0))

	monday := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday, 0))
}

func TestResolveWeek(t *testing.T) {
	items := []slot{
		{id: 1, day: Monday, start: "18:00"},
		{id: 2, day: Monday, start: "07:30"},
		{id: 3, day: Sunday, start: "10:00"},
		{id: 4, day: "NOPE", start: "10:00"},
	}
	exclusions := Exclusions{}
	exclusions.Add(1, date(t, "2024-05-06"))
	exclusions.Add(3, date(t, "2024-05-19"))

	week := ResolveWeek(items, date(t, "2024-05-06"), exclusions)

	assert.Equal(t, Monday, week[0].Weekday)
	assert.Equal(t, "2024-05-06", week[0].Date)
	assert.Equal(t, "2024-05-12", week[6].Date)
	require.Len(t, week[0].Occurrences, 2)
	assert.Equal(t, int64(2), week[0].Occurrences[0].Item.id)
	assert.False(t, week[0].Occurrences[0].Excluded)
	assert.Equal(t, int64(1), week[0].Occurrences[1].Item.id)
	assert.True(t, week[0].Occurrences[1].Excluded)

	require.Len(t, week[6].Occurrences, 1)
	assert.False(t, week[6].Occurrences[0].Excluded, "exclusion belongs to the following week")
	assert.Empty(t, week[2].Occurrences)
}

func TestOccursOn(t *testing.T) {
	items := []slot{
		{id: 1, day: Wednesday, start: "18:00"},
		{id: 2, day: Wednesday, start: "06:00"},
		{id: 3, day: Thursday, start: "06:00"},
	}
	exclusions := Exclusions{}
	exclusions.Add(1, date(t, "2024-05-08"))

	got := OccursOn(items, date(t, "2024-05-08"), exclusions)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].id)

	got = OccursOn(items, date(t, "2024-05-15"), exclusions)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].id)
}

func TestValidateExclusion(t *testing.T) {
	today := time.Date(2024, 5, 8, 22, 0, 0, 0, time.UTC)
	assert.True(t, ValidateExclusion(date(t, "2024-05-08"), today).Empty())
	assert.True(t, ValidateExclusion(date(t, "2024-06-01"), today).Empty())
	assert.Equal(t, "Excluded date cannot be in the past", ValidateExclusion(date(t, "2024-05-07"), today)[FieldExcludedDate])
}

func TestWeekday(t *testing.T) {
	d, err := ParseWeekday(" sunday ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, d)
	assert.Equal(t, 6, d.Index())
	assert.Equal(t, Wednesday, WeekdayOf(date(t, "2024-05-08")))

	_, err = ParseWeekday("")
	assert.Error(t, err)
}
