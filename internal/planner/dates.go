// Package planner holds the derived-view computations: date urgency,
// notification aggregation, cross-entity lookups and reminder text.
// Everything here is a pure function over a snapshot of the collections.
package planner

import (
	"strings"
	"time"
)

type Urgency string

const (
	UrgencyOverdue Urgency = "OVERDUE"
	UrgencyUrgent  Urgency = "URGENT"
	UrgencySoon    Urgency = "SOON"
	UrgencyNormal  Urgency = "NORMAL"
)

const (
	layoutDMY = "02-01-2006"
	layoutISO = "2006-01-02"
)

// ParseDate accepts the two layouts that reach the store from the outside:
// DD-MM-YYYY (procurement plan, spreadsheet cells) and ISO YYYY-MM-DD
// (date inputs, persisted JSON).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{layoutDMY, layoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func FormatDMY(t time.Time) string { return t.Format(layoutDMY) }
func FormatISO(t time.Time) string { return t.Format(layoutISO) }

// Midnight truncates t to the start of its calendar day, in UTC, so that
// parsed dates and wall-clock "today" values subtract to whole days.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the calendar-day distance from today to the date in s,
// negative when s is in the past. Same day counts as zero. The second
// return is false when s is empty or unparseable.
func DaysUntil(s string, today time.Time) (int, bool) {
	target, ok := ParseDate(s)
	if !ok {
		return 0, false
	}
	return int(Midnight(target).Sub(Midnight(today)).Hours() / 24), true
}

// ClassifyDate maps a date string to an urgency tier together with the day
// count (absolute for overdue dates). Exactly 7 days out is URGENT, not
// SOON. Absent or malformed dates classify as NORMAL with zero days.
func ClassifyDate(s string, today time.Time) (Urgency, int) {
	days, ok := DaysUntil(s, today)
	if !ok {
		return UrgencyNormal, 0
	}
	switch {
	case days < 0:
		return UrgencyOverdue, -days
	case days <= 7:
		return UrgencyUrgent, days
	case days <= 14:
		return UrgencySoon, days
	default:
		return UrgencyNormal, days
	}
}

// NextMonth returns the month following the one containing t, with its year.
func NextMonth(t time.Time) (time.Month, int) {
	if t.Month() == time.December {
		return time.January, t.Year() + 1
	}
	return t.Month() + 1, t.Year()
}
