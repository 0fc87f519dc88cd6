/*
Package user contains the user profile snapshot returned by the events API.

A Profile has no lifecycle of its own: it lives inside the stored session, on
event organizers and on comment authors.
*/
package user

// Profile is an immutable snapshot of a user as returned by the server.
type Profile struct {
	// ID is the server-assigned user identifier.
	ID int `json:"id"`

	// Username is the display name.
	Username string `json:"username"`

	// Email is the login email address.
	Email string `json:"email"`

	// CreatedAt is the server timestamp of account creation (ISO 8601, passed through verbatim).
	CreatedAt string `json:"createdAt"`

	// UpdatedAt is the server timestamp of the last profile change.
	UpdatedAt string `json:"updatedAt"`
}
