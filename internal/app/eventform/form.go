/*
Package eventform validates the create/edit event form and submits it.
*/
package eventform

import (
	"context"
	"strconv"
	"strings"
	"time"

	"eventify/internal/app/api"
	"eventify/internal/app/event"
	"eventify/internal/pkg/errs"
)

// Layouts of the date and time fields as sent to the server.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Form holds the raw text of every form field.
type Form struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Price       string
	Stock       string
}

// Backend is the subset of the API client the form needs.
type Backend interface {
	CreateEvent(ctx context.Context, req api.EventRequest) error
	UpdateEvent(ctx context.Context, req api.EventRequest) error
}

// FromEvent pre-fills a form for editing e.
func FromEvent(e event.Event) Form {
	f := Form{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		Price:       strconv.FormatFloat(e.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(e.Stock),
	}
	if t, ok := event.ParseDate(e.Date); ok {
		f.Date = t.Format(DateLayout)
	}
	if t, ok := event.ParseDate(e.Time); ok {
		f.Time = t.Format(TimeLayout)
	}
	return f
}

// Request validates the form and builds the request body for event id (0 for a new event).
// Title, description, date, time and location are required. A price or stock that
// does not parse as a number is sent as 0; a negative one is rejected.
func (f Form) Request(id int) (api.EventRequest, error) {
	title := strings.TrimSpace(f.Title)
	description := strings.TrimSpace(f.Description)
	date := strings.TrimSpace(f.Date)
	clock := strings.TrimSpace(f.Time)
	location := strings.TrimSpace(f.Location)

	if title == "" || description == "" || date == "" || clock == "" || location == "" {
		return api.EventRequest{}, errs.NewError(errs.ErrFieldsRequired)
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return api.EventRequest{}, errs.Wrap(errs.ErrInvalidEventField, err, "date")
	}
	clock, err := normalizeTime(clock)
	if err != nil {
		return api.EventRequest{}, errs.Wrap(errs.ErrInvalidEventField, err, "time")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		price = 0
	}
	if price < 0 {
		return api.EventRequest{}, errs.NewError(errs.ErrInvalidEventField, "price")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil {
		stock = 0
	}
	if stock < 0 {
		return api.EventRequest{}, errs.NewError(errs.ErrInvalidEventField, "stock")
	}

	return api.EventRequest{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		Time:        clock,
		Price:       price,
		Stock:       stock,
	}, nil
}

// Create validates f and creates a new event.
func Create(ctx context.Context, b Backend, f Form) error {
	req, err := f.Request(0)
	if err != nil {
		return err
	}
	return b.CreateEvent(ctx, req)
}

// Update validates f and updates event id.
func Update(ctx context.Context, b Backend, id int, f Form) error {
	req, err := f.Request(id)
	if err != nil {
		return err
	}
	return b.UpdateEvent(ctx, req)
}

// normalizeTime accepts HH:mm or HH:mm:ss and returns HH:mm:ss.
func normalizeTime(raw string) (string, error) {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		var shortErr error
		if t, shortErr = time.Parse("15:04", raw); shortErr != nil {
			return "", err
		}
	}
	return t.Format(TimeLayout), nil
}
