package event

import (
	"testing"
	"time"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func ratings(stars ...int) []Rating {
	out := make([]Rating, 0, len(stars))
	for i, s := range stars {
		out = append(out, Rating{ID: i + 1, Rating: s})
	}
	return out
}

// Requirement: the average rating is the arithmetic mean, 0 for no ratings, shown with one decimal.
func TestAverageRating(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []Rating
		want      float64
		wantLabel string
	}{
		{name: "empty set", ratings: nil, want: 0, wantLabel: "0.0"},
		{name: "5 4 3", ratings: ratings(5, 4, 3), want: 4.0, wantLabel: "4.0"},
		{name: "single", ratings: ratings(2), want: 2, wantLabel: "2.0"},
		{name: "non integer mean", ratings: ratings(5, 4), want: 4.5, wantLabel: "4.5"},
		{name: "rounded for display", ratings: ratings(5, 5, 4), want: 14.0 / 3.0, wantLabel: "4.7"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := AverageRating(test.ratings)
			if got != test.want {
				t.Errorf("AverageRating() = %v, want %v", got, test.want)
			}
			if label := FormatAverage(got); label != test.wantLabel {
				t.Errorf("FormatAverage() = %q, want %q", label, test.wantLabel)
			}
		})
	}
}

// Requirement: adding a 5-star rating never lowers the average.
func TestAverageRating_AddingFiveNeverDecreases(t *testing.T) {
	sets := [][]int{{5, 4, 3}, {1}, {5, 5}, {2, 3, 1, 4}}
	for _, set := range sets {
		before := AverageRating(ratings(set...))
		after := AverageRating(ratings(append(append([]int{}, set...), 5)...))
		if after < before {
			t.Errorf("average of %v dropped from %v to %v after adding 5", set, before, after)
		}
	}
}

// Requirement: confirm is offered only when stock > 0, the viewer does not attend and the event is ahead.
func TestCanConfirmAttendance(t *testing.T) {
	future := now.Add(48 * time.Hour).Format(time.RFC3339)
	past := now.Add(-48 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name       string
		stock      int
		isAttendee bool
		date       string
		want       bool
	}{
		{name: "future with seats", stock: 3, date: future, want: true},
		{name: "sold out", stock: 0, date: future, want: false},
		{name: "sold out attendee", stock: 0, isAttendee: true, date: future, want: false},
		{name: "sold out past", stock: 0, date: past, want: false},
		{name: "already attending", stock: 3, isAttendee: true, date: future, want: false},
		{name: "past event", stock: 3, date: past, want: false},
		{name: "unparseable date", stock: 3, date: "soon", want: false},
		{name: "negative stock", stock: -1, date: future, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanConfirmAttendance(test.stock, test.isAttendee, test.date, now); got != test.want {
				t.Errorf("CanConfirmAttendance() = %v, want %v", got, test.want)
			}
		})
	}
}

// Requirement: edit is offered only to the organizer while seats remain.
func TestCanEdit(t *testing.T) {
	tests := []struct {
		name              string
		viewer, organizer int
		stock             int
		want              bool
	}{
		{name: "organizer with seats", viewer: 7, organizer: 7, stock: 1, want: true},
		{name: "organizer sold out", viewer: 7, organizer: 7, stock: 0, want: false},
		{name: "other viewer", viewer: 8, organizer: 7, stock: 5, want: false},
		{name: "unknown viewer", viewer: 0, organizer: 0, stock: 5, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanEdit(test.viewer, test.organizer, test.stock); got != test.want {
				t.Errorf("CanEdit() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	future := now.Add(time.Hour).Format(time.RFC3339)
	past := now.Add(-time.Hour).Format(time.RFC3339)

	if got := AttendanceLabel(true, future, now); got != "Attending" {
		t.Errorf("future attendee label = %q", got)
	}
	if got := AttendanceLabel(true, past, now); got != "Attended" {
		t.Errorf("past attendee label = %q", got)
	}
	if got := AttendanceLabel(false, future, now); got != "" {
		t.Errorf("non attendee label = %q", got)
	}
	if got := StockLabel(0); got != "Sold Out" {
		t.Errorf("StockLabel(0) = %q", got)
	}
	if got := StockLabel(12); got != "Seats available: 12" {
		t.Errorf("StockLabel(12) = %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	raw := "2026-12-24T18:30:00.000Z"
	if got := FormatDate(raw); got != "24-12-2026" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatTime(raw); got != "06:30 PM" {
		t.Errorf("FormatTime() = %q", got)
	}
	if got := FormatDate("not a date"); got != "not a date" {
		t.Errorf("FormatDate() should fall back to the raw value, got %q", got)
	}
}

func TestFilterByTitle(t *testing.T) {
	events := []Event{{ID: 1, Title: "Go Meetup"}, {ID: 2, Title: "Jazz Night"}, {ID: 3, Title: "GopherCon"}}

	got := FilterByTitle(events, "  go ")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterByTitle(go) = %+v", got)
	}
	if got := FilterByTitle(events, ""); len(got) != 3 {
		t.Errorf("empty query kept %d events, want 3", len(got))
	}
	if got := FilterByTitle(events, "opera"); len(got) != 0 {
		t.Errorf("unmatched query kept %d events", len(got))
	}
}
