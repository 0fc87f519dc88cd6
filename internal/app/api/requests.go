package api

// LoginRequest is the body of user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the body of user/register.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ConfirmAttendanceRequest is the body of attendance/create.
type ConfirmAttendanceRequest struct {
	EventID int `json:"eventId"`
}

// AddCommentRequest is the body of comments/create.
type AddCommentRequest struct {
	Content string `json:"content"`
	EventID int    `json:"eventId"`
}

// RatingRequest is the body of ratings/create.
type RatingRequest struct {
	EventID int `json:"eventId"`
	Rating  int `json:"rating"`
}

// EventRequest is the body of event/create and event/update.
// ID is ignored by event/create.
type EventRequest struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}
