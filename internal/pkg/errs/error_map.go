/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError template, which holds
the user-facing message and, where one applies, the HTTP status.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: Local Validation Errors
	ErrFieldsRequired:    {Code: ErrFieldsRequired, Message: "Please fill in all fields"},
	ErrInvalidRating:     {Code: ErrInvalidRating, Message: "Please select a rating from 1 to 5 stars."},
	ErrInvalidEventField: {Code: ErrInvalidEventField, Message: "Invalid value for %s."},
	ErrEmptyComment:      {Code: ErrEmptyComment, Message: "Comment cannot be empty."},
	ErrInvalidRequest:    {Code: ErrInvalidRequest, Message: "Invalid request body.", Status: http.StatusBadRequest},

	// 2xxx: Event Card Action Errors
	ErrActionInFlight:   {Code: ErrActionInFlight, Message: "Please wait, your previous request is still in progress."},
	ErrActionNotAllowed: {Code: ErrActionNotAllowed, Message: "This action is not available right now."},
	ErrCardClosed:       {Code: ErrCardClosed, Message: "This event is no longer displayed."},

	// 3xxx: Session and Authentication Errors
	ErrUnauthorized:   {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrSessionCorrupt: {Code: ErrSessionCorrupt, Message: "Stored session is invalid. Please sign in again."},
	ErrSessionStorage: {Code: ErrSessionStorage, Message: "Could not access saved session."},
	ErrNoSession:      {Code: ErrNoSession, Message: "You are not signed in."},

	// 4xxx: Remote API Errors
	ErrNetwork:        {Code: ErrNetwork, Message: "Unable to reach the server. Please check your connection and try again."},
	ErrHTTPStatus:     {Code: ErrHTTPStatus, Message: "%s"},
	ErrNotFound:       {Code: ErrNotFound, Message: "Not found.", Status: http.StatusNotFound},
	ErrDecodeResponse: {Code: ErrDecodeResponse, Message: "Unexpected response from the server."},
	ErrCanceled:       {Code: ErrCanceled, Message: "Request cancelled."},

	// 5xxx: Internal Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again."},

	// 6xxx: Stub Backend Errors
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid credentials", Status: http.StatusBadRequest},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "User already exists", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:  {Code: ErrRateLimitExceeded, Message: "Too many requests", Status: http.StatusTooManyRequests},
	ErrNotOrganizer:       {Code: ErrNotOrganizer, Message: "Only the organizer can modify this event", Status: http.StatusForbidden},
	ErrSoldOut:            {Code: ErrSoldOut, Message: "Event is sold out", Status: http.StatusBadRequest},
}
