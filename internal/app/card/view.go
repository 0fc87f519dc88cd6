package card

import "eventify/internal/app/event"

// View is a consistent snapshot of a card, including the values derived from it.
type View struct {
	Event event.Event

	Attendance      State
	Rating          State
	SelectedRating  int
	CommentInput    string
	CommentInFlight bool

	// AverageRating is the mean of the local ratings, 0 when there are none.
	AverageRating float64
	AverageLabel  string

	// CanConfirm and CanEdit drive the visibility of the card actions.
	CanConfirm bool
	CanEdit    bool
	// Editable reports whether the viewer organizes the event.
	Editable bool

	AttendanceLabel string
	StockLabel      string
	DisplayDate     string
	DisplayTime     string

	// Err is the failure of the most recent action, if it failed.
	Err error
}

// Snapshot returns the current View of the card.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	avg := event.AverageRating(c.ev.Ratings)

	return View{
		Event:           cloneEvent(c.ev),
		Attendance:      c.attendance,
		Rating:          c.rating,
		SelectedRating:  c.selectedRating,
		CommentInput:    c.commentInput,
		CommentInFlight: c.commentInFlight,
		AverageRating:   avg,
		AverageLabel:    event.FormatAverage(avg),
		CanConfirm:      c.attendance == Idle && c.canConfirmLocked(),
		CanEdit:         event.CanEdit(c.viewerID, c.ev.OrganizerID, c.ev.Stock),
		Editable:        c.viewerID != 0 && c.viewerID == c.ev.OrganizerID,
		AttendanceLabel: event.AttendanceLabel(c.ev.IsAttendee, c.ev.Date, now),
		StockLabel:      event.StockLabel(c.ev.Stock),
		DisplayDate:     event.FormatDate(c.ev.Date),
		DisplayTime:     event.FormatTime(c.ev.Time),
		Err:             c.lastErr,
	}
}
