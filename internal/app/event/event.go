/*
Package event contains the event, rating, comment and attendance snapshots returned by
the events API, together with the values derived from them on the client: average
rating, display formatting and action eligibility.
*/
package event

import "eventify/internal/app/user"

// Event is one event as returned by the list and detail endpoints.
type Event struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	// Stock is the number of seats still available. It is never negative on the client.
	Stock       int           `json:"stock"`
	OrganizerID int           `json:"organizerId"`
	Organizer   *user.Profile `json:"organizer,omitempty"`
	// IsAttendee is computed by the server for the requesting user.
	IsAttendee bool      `json:"isAttendee"`
	Comments   []Comment `json:"comments,omitempty"`
	Ratings    []Rating  `json:"ratings,omitempty"`
}

// Rating is one star rating left on an event.
type Rating struct {
	ID      int     `json:"id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
	Date    string  `json:"date"`
	UserID  int     `json:"userId"`
	EventID int     `json:"eventId"`
}

// Comment is one comment left on an event, with its author embedded.
type Comment struct {
	ID      int          `json:"id"`
	Content string       `json:"content"`
	Date    string       `json:"date"`
	UserID  int          `json:"userId"`
	EventID int          `json:"eventId"`
	User    user.Profile `json:"user"`
}

// AttendanceRecord is the server's acknowledgement of an attendance confirmation.
type AttendanceRecord struct {
	ID            int  `json:"id"`
	UserID        int  `json:"userId"`
	EventID       int  `json:"eventId"`
	Attendance    bool `json:"attendance"`
	Notifications bool `json:"notifications"`
}

// MinRating and MaxRating bound a star rating.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether stars is within MinRating..MaxRating.
func ValidRating(stars int) bool {
	return stars >= MinRating && stars <= MaxRating
}
