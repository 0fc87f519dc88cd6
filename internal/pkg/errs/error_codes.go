/*
Package errs provides custom error types and application-level error code constants.

These error codes identify every failure the client core can surface, from local
form validation through card actions and session handling to remote API failures.
*/
package errs

// 1xxx: Local Validation Errors (caught before any network call)
const (
	// ErrFieldsRequired indicates that one or more required form fields are empty.
	ErrFieldsRequired = 1001

	// ErrInvalidRating indicates that a rating outside the 1-5 range was selected or submitted.
	ErrInvalidRating = 1002

	// ErrInvalidEventField indicates that an event form field holds an out-of-range value.
	ErrInvalidEventField = 1003

	// ErrEmptyComment indicates that the comment input is blank.
	ErrEmptyComment = 1004

	// ErrInvalidRequest indicates that an inbound request body could not be bound (stub backend).
	ErrInvalidRequest = 1005
)

// 2xxx: Event Card Action Errors
const (
	// ErrActionInFlight indicates that the same action is already waiting for the server.
	ErrActionInFlight = 2001

	// ErrActionNotAllowed indicates that the action is not available in the card's current state.
	ErrActionNotAllowed = 2002

	// ErrCardClosed indicates that the card was closed and no longer accepts actions.
	ErrCardClosed = 2003
)

// 3xxx: Session and Authentication Errors
const (
	// ErrUnauthorized indicates that the server rejected the session (HTTP 401).
	ErrUnauthorized = 3001

	// ErrSessionCorrupt indicates that the stored session blob could not be decoded.
	ErrSessionCorrupt = 3002

	// ErrSessionStorage indicates that the session backend failed to read or write.
	ErrSessionStorage = 3003

	// ErrNoSession indicates that no session is stored.
	ErrNoSession = 3004
)

// 4xxx: Remote API Errors
const (
	// ErrNetwork indicates a transport-level failure (connection refused, timeout, DNS).
	ErrNetwork = 4001

	// ErrHTTPStatus indicates a non-2xx response; the message is the raw response body.
	ErrHTTPStatus = 4002

	// ErrNotFound indicates a 404 response.
	ErrNotFound = 4003

	// ErrDecodeResponse indicates that a 2xx response body did not match the expected schema.
	ErrDecodeResponse = 4004

	// ErrCanceled indicates that the request was cancelled by its caller.
	ErrCanceled = 4005
)

// 5xxx: Internal Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)

// 6xxx: Stub Backend Errors (written as plain-text response bodies)
const (
	// ErrInvalidCredentials indicates that the email or password did not match an account.
	ErrInvalidCredentials = 6001

	// ErrUserAlreadyExists indicates that the email is already registered.
	ErrUserAlreadyExists = 6002

	// ErrRateLimitExceeded indicates that the client sent too many requests.
	ErrRateLimitExceeded = 6003

	// ErrNotOrganizer indicates that only the organizer may change the event.
	ErrNotOrganizer = 6004

	// ErrSoldOut indicates that no seats remain for the event.
	ErrSoldOut = 6005
)
