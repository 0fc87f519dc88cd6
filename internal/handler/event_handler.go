package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eventify/internal/app/api"
	"eventify/internal/app/event"
	"eventify/internal/pkg/auth/jwt"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/req"
	"eventify/internal/pkg/resp"
)

// HandleListEvents lists future or past events, selected by the time query parameter.
func HandleListEvents(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		var future bool
		switch r.URL.Query().Get("time") {
		case "future":
			future = true
		case "past":
			future = false
		default:
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidRequest))
			return
		}

		resp.RespondSuccess(w, r, deps.Store.Events(future, identity.UserID))
	}
}

// HandleGetEvent returns one event with its comments and ratings.
func HandleGetEvent(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrNotFound))
			return
		}

		e, err := deps.Store.Event(id, identity.UserID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, e)
	}
}

// HandleCreateEvent creates an event organized by the caller.
func HandleCreateEvent(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		e, customErr := bindEvent(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		e.OrganizerID = identity.UserID
		resp.RespondCreated(w, r, deps.Store.AddEvent(e))
	}
}

// HandleUpdateEvent updates an event organized by the caller. The id is in the body.
func HandleUpdateEvent(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		e, customErr := bindEvent(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Store.UpdateEvent(identity.UserID, e); err != nil {
			respondStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// bindEvent decodes an EventRequest. The date and time fields are combined into
// one UTC timestamp, stored in both Date and Time.
func bindEvent(w http.ResponseWriter, r *http.Request) (event.Event, *errs.CustomError) {
	var input api.EventRequest
	if customErr := req.BindJSON(w, r, &input); customErr != nil {
		return event.Event{}, customErr
	}

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Location) == "" || input.Price < 0 || input.Stock < 0 {
		return event.Event{}, errs.NewError(errs.ErrInvalidRequest)
	}

	startsAt, err := time.Parse("2006-01-02 15:04:05", input.Date+" "+input.Time)
	if err != nil {
		return event.Event{}, errs.NewError(errs.ErrInvalidRequest)
	}

	return event.Event{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Date:        stamp(startsAt),
		Time:        stamp(startsAt),
		Location:    input.Location,
		Price:       input.Price,
		Stock:       input.Stock,
	}, nil
}
