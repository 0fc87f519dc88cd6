package handler

import (
	"net/http"
	"strings"

	"eventify/internal/app/api"
	"eventify/internal/app/event"
	"eventify/internal/pkg/auth/jwt"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/req"
	"eventify/internal/pkg/resp"
)

// HandleConfirmAttendance registers the caller for an event and takes one seat.
func HandleConfirmAttendance(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		var input api.ConfirmAttendanceRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		rec, err := deps.Store.Attend(input.EventID, identity.UserID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		resp.RespondCreated(w, r, rec)
	}
}

// HandleAddComment stores a comment by the caller.
func HandleAddComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		var input api.AddCommentRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if strings.TrimSpace(input.Content) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidRequest))
			return
		}

		comment, err := deps.Store.AddComment(input.EventID, identity.UserID, input.Content)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		resp.RespondCreated(w, r, comment)
	}
}

// HandleSubmitRating stores a 1 to 5 star rating by the caller.
func HandleSubmitRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.FromRequest(r)

		var input api.RatingRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if !event.ValidRating(input.Rating) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidRequest))
			return
		}

		rating, err := deps.Store.AddRating(input.EventID, identity.UserID, input.Rating)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		resp.RespondCreated(w, r, rating)
	}
}
