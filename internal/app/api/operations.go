package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"eventify/internal/app/event"
	"eventify/internal/app/session"
)

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*session.Session, error) {
	var s session.Session
	if err := c.do(ctx, http.MethodPost, "user/login", nil, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignUp registers an account and returns its first session.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*session.Session, error) {
	var s session.Session
	if err := c.do(ctx, http.MethodPost, "user/register", nil, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListUpcomingEvents returns the events that have not started yet, in server order.
func (c *Client) ListUpcomingEvents(ctx context.Context) ([]event.Event, error) {
	return c.listEvents(ctx, "future")
}

// ListPastEvents returns the events that already took place, in server order.
func (c *Client) ListPastEvents(ctx context.Context) ([]event.Event, error) {
	return c.listEvents(ctx, "past")
}

func (c *Client) listEvents(ctx context.Context, when string) ([]event.Event, error) {
	var events []event.Event
	if err := c.do(ctx, http.MethodGet, "event/all", url.Values{"time": {when}}, nil, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []event.Event{}
	}
	return events, nil
}

// GetEvent returns one event with its comments and ratings.
// A 404 surfaces as errs.ErrNotFound.
func (c *Client) GetEvent(ctx context.Context, id int) (*event.Event, error) {
	var e event.Event
	if err := c.do(ctx, http.MethodGet, "event/"+strconv.Itoa(id), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ConfirmAttendance registers the signed-in user for eventID.
func (c *Client) ConfirmAttendance(ctx context.Context, eventID int) (*event.AttendanceRecord, error) {
	var rec event.AttendanceRecord
	body := ConfirmAttendanceRequest{EventID: eventID}
	if err := c.do(ctx, http.MethodPost, "attendance/create", nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AddComment posts a comment on eventID and returns the stored comment.
func (c *Client) AddComment(ctx context.Context, eventID int, content string) (*event.Comment, error) {
	var comment event.Comment
	body := AddCommentRequest{Content: content, EventID: eventID}
	if err := c.do(ctx, http.MethodPost, "comments/create", nil, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// SubmitRating rates eventID with stars and returns the stored rating.
func (c *Client) SubmitRating(ctx context.Context, eventID, stars int) (*event.Rating, error) {
	var rating event.Rating
	body := RatingRequest{EventID: eventID, Rating: stars}
	if err := c.do(ctx, http.MethodPost, "ratings/create", nil, body, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// CreateEvent creates an event. The response body is ignored.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) error {
	return c.do(ctx, http.MethodPost, "event/create", nil, req, nil)
}

// UpdateEvent updates the event identified by req.ID. The response body is ignored.
func (c *Client) UpdateEvent(ctx context.Context, req EventRequest) error {
	return c.do(ctx, http.MethodPost, "event/update", nil, req, nil)
}
