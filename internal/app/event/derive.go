package event

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order when reading a server timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a server timestamp. ok is false when no known layout matches.
func ParseDate(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartsAt returns the parsed event date.
func (e Event) StartsAt() (time.Time, bool) {
	return ParseDate(e.Date)
}

// FormatDate renders a server timestamp as dd-MM-yyyy, or returns it unchanged if it cannot be parsed.
func FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format("02-01-2006")
}

// FormatTime renders a server timestamp as hh:mm AM/PM, or returns it unchanged if it cannot be parsed.
func FormatTime(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return t.Format("03:04 PM")
}

// AverageRating is the arithmetic mean of the ratings' star values, 0 for an empty set.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

// FormatAverage renders an average rating with one decimal place.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// CanConfirmAttendance reports whether the confirm-attendance action is offered:
// seats remain, the viewer is not attending yet and the event is still ahead.
// An unparseable date never offers the action.
func CanConfirmAttendance(stock int, isAttendee bool, date string, now time.Time) bool {
	if stock <= 0 || isAttendee {
		return false
	}
	startsAt, ok := ParseDate(date)
	if !ok {
		return false
	}
	return startsAt.After(now)
}

// CanEdit reports whether the edit action is offered to the viewer.
func CanEdit(viewerID, organizerID, stock int) bool {
	return viewerID != 0 && viewerID == organizerID && stock > 0
}

// AttendanceLabel is "Attending" for a future event and "Attended" for a past one.
// It is empty when the viewer does not attend or the date is unknown.
func AttendanceLabel(isAttendee bool, date string, now time.Time) string {
	if !isAttendee {
		return ""
	}
	startsAt, ok := ParseDate(date)
	if !ok {
		return ""
	}
	if startsAt.After(now) {
		return "Attending"
	}
	return "Attended"
}

// StockLabel renders the seat count, or "Sold Out" when none remain.
func StockLabel(stock int) string {
	if stock <= 0 {
		return "Sold Out"
	}
	return fmt.Sprintf("Seats available: %d", stock)
}

// FilterByTitle keeps the events whose title contains query, ignoring case.
// An empty query keeps every event. The server order is preserved.
func FilterByTitle(events []Event, query string) []Event {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if query == "" || strings.Contains(strings.ToLower(e.Title), query) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
