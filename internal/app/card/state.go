/*
Package card implements the interaction controller of one event card.

A Controller holds the local view of one event and reconciles it with the server:
local state changes only after the server acknowledges an action. Attendance and
rating are two independent tracks of the same State type, and comments have their
own in-flight flag. Controllers share no mutable state with each other.
*/
package card

// State is the position of one track (attendance or rating) of a card.
type State int

const (
	// Idle means no modal is open and no request is in flight.
	Idle State = iota

	// AwaitingConfirmation means the confirmation modal is open; no request was sent yet.
	AwaitingConfirmation

	// ConfirmingAttendance means the attendance request is in flight.
	ConfirmingAttendance

	// Attending is the terminal success state of the attendance track.
	Attending

	// AwaitingRating means the rating modal is open and stars may be selected.
	AwaitingRating

	// SubmittingRating means the rating request is in flight.
	SubmittingRating

	// RatingSubmitted is the terminal success state of the rating track.
	RatingSubmitted
)

var stateNames = map[State]string{
	Idle:                 "idle",
	AwaitingConfirmation: "awaiting_confirmation",
	ConfirmingAttendance: "confirming_attendance",
	Attending:            "attending",
	AwaitingRating:       "awaiting_rating",
	SubmittingRating:     "submitting_rating",
	RatingSubmitted:      "rating_submitted",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// InFlight reports whether a request is pending in this state.
func (s State) InFlight() bool {
	return s == ConfirmingAttendance || s == SubmittingRating
}
