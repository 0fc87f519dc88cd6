package card

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"eventify/internal/app/event"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/metrics"
)

// Metric action names.
const (
	actionConfirm = "confirm_attendance"
	actionRate    = "submit_rating"
	actionComment = "add_comment"
)

// Backend is the subset of the API client a card needs.
type Backend interface {
	ConfirmAttendance(ctx context.Context, eventID int) (*event.AttendanceRecord, error)
	SubmitRating(ctx context.Context, eventID, stars int) (*event.Rating, error)
	AddComment(ctx context.Context, eventID int, content string) (*event.Comment, error)
}

// Options configures a Controller.
type Options struct {
	// ViewerID is the id of the signed-in user, 0 when unknown.
	ViewerID int

	// Metrics records action outcomes. Optional.
	Metrics *metrics.Metrics

	// Now returns the current time. time.Now is used when nil.
	Now func() time.Time
}

// Controller is the state machine of one event card. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	backend Backend
	ev      event.Event

	attendance     State
	rating         State
	selectedRating int

	commentInput    string
	commentInFlight bool

	// lastErr is the failure of the most recent action, cleared by the next success.
	lastErr error
	closed  bool

	viewerID int
	now      func() time.Time
	metrics  *metrics.Metrics

	// life is cancelled by Close and bounds every request of the card.
	life   context.Context
	cancel context.CancelFunc

	logger zerolog.Logger
}

// New returns an idle Controller for ev. The event is copied.
func New(ev event.Event, backend Backend, opts Options) *Controller {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	life, cancel := context.WithCancel(context.Background())

	c := &Controller{
		backend:  backend,
		ev:       cloneEvent(ev),
		viewerID: opts.ViewerID,
		now:      now,
		metrics:  opts.Metrics,
		life:     life,
		cancel:   cancel,
		logger:   logx.Logger().With().Str("component", "event-card").Int("event_id", ev.ID).Logger(),
	}

	if c.ev.Stock < 0 {
		c.ev.Stock = 0
	}
	if c.ev.IsAttendee {
		c.attendance = Attending
	}
	return c
}

// EventID returns the id of the card's event.
func (c *Controller) EventID() int {
	return c.ev.ID
}

// Close cancels every in-flight request of the card. Later actions fail with ErrCardClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
}

// --- Attendance track ---

// OpenConfirmation opens the confirmation modal. No request is sent.
func (c *Controller) OpenConfirmation() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpen(); err != nil {
		return err
	}
	if c.attendance.InFlight() {
		return errs.NewError(errs.ErrActionInFlight)
	}
	if c.attendance != Idle || !c.canConfirmLocked() {
		return errs.NewError(errs.ErrActionNotAllowed)
	}

	c.attendance = AwaitingConfirmation
	return nil
}

// DismissConfirmation closes the confirmation modal without sending anything.
func (c *Controller) DismissConfirmation() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attendance != AwaitingConfirmation {
		return errs.NewError(errs.ErrActionNotAllowed)
	}
	c.attendance = Idle
	return nil
}

// ConfirmAttendance sends the attendance request for the open confirmation.
// On success the stock drops by one (never below zero) and the viewer becomes an
// attendee. On failure the card returns to Idle with the event unchanged.
func (c *Controller) ConfirmAttendance(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.attendance == ConfirmingAttendance {
		c.mu.Unlock()
		return errs.NewError(errs.ErrActionInFlight)
	}
	if c.attendance != AwaitingConfirmation {
		c.mu.Unlock()
		return errs.NewError(errs.ErrActionNotAllowed)
	}
	c.attendance = ConfirmingAttendance
	eventID := c.ev.ID
	c.mu.Unlock()

	reqCtx, done := c.requestContext(ctx)
	_, err := c.backend.ConfirmAttendance(reqCtx, eventID)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CardAction(actionConfirm, err)

	if err != nil {
		c.attendance = Idle
		c.lastErr = err
		c.logger.Warn().Err(err).Msg("Attendance confirmation failed")
		return err
	}

	c.ev.Stock = max(c.ev.Stock-1, 0)
	c.ev.IsAttendee = true
	c.attendance = Attending
	c.lastErr = nil
	c.logger.Info().Int("stock", c.ev.Stock).Msg("Attendance confirmed")
	return nil
}

// --- Rating track ---

// OpenRating opens the rating modal. The previous star selection is kept.
func (c *Controller) OpenRating() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkOpen(); err != nil {
		return err
	}
	if c.rating.InFlight() {
		return errs.NewError(errs.ErrActionInFlight)
	}
	if c.rating != Idle {
		return errs.NewError(errs.ErrActionNotAllowed)
	}

	c.rating = AwaitingRating
	return nil
}

// SelectRating picks 1 to 5 stars in the open rating modal. Nothing is sent.
func (c *Controller) SelectRating(stars int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rating != AwaitingRating {
		return errs.NewError(errs.ErrActionNotAllowed)
	}
	if !event.ValidRating(stars) {
		return errs.NewError(errs.ErrInvalidRating)
	}

	c.selectedRating = stars
	return nil
}

// DismissRating closes the rating modal without sending anything.
func (c *Controller) DismissRating() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rating != AwaitingRating {
		return errs.NewError(errs.ErrActionNotAllowed)
	}
	c.rating = Idle
	return nil
}

// SubmitRating sends the selected rating. On success the returned rating is
// appended to the local ratings; on failure they are left unchanged.
func (c *Controller) SubmitRating(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.rating == SubmittingRating {
		c.mu.Unlock()
		return errs.NewError(errs.ErrActionInFlight)
	}
	if c.rating != AwaitingRating {
		c.mu.Unlock()
		return errs.NewError(errs.ErrActionNotAllowed)
	}
	if !event.ValidRating(c.selectedRating) {
		c.mu.Unlock()
		return errs.NewError(errs.ErrInvalidRating)
	}
	c.rating = SubmittingRating
	eventID, stars := c.ev.ID, c.selectedRating
	c.mu.Unlock()

	reqCtx, done := c.requestContext(ctx)
	rating, err := c.backend.SubmitRating(reqCtx, eventID, stars)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics.CardAction(actionRate, err)

	if err != nil {
		c.rating = Idle
		c.lastErr = err
		c.logger.Warn().Err(err).Int("stars", stars).Msg("Rating submission failed")
		return err
	}

	c.ev.Ratings = append(c.ev.Ratings, *rating)
	c.rating = RatingSubmitted
	c.lastErr = nil
	return nil
}

// --- Comments ---

// SetCommentInput replaces the text of the comment input.
func (c *Controller) SetCommentInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentInput = text
}

// SubmitComment posts the comment input. On success the stored comment is
// prepended and the input cleared; on failure the input is kept for a retry.
func (c *Controller) SubmitComment(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkOpen(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.commentInFlight {
		c.mu.Unlock()
		return errs.NewError(errs.ErrActionInFlight)
	}
	if strings.TrimSpace(c.commentInput) == "" {
		c.mu.Unlock()
		return errs.NewError(errs.ErrEmptyComment)
	}
	c.commentInFlight = true
	eventID, content := c.ev.ID, c.commentInput
	c.mu.Unlock()

	reqCtx, done := c.requestContext(ctx)
	comment, err := c.backend.AddComment(reqCtx, eventID, content)
	done()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentInFlight = false
	c.metrics.CardAction(actionComment, err)

	if err != nil {
		c.lastErr = err
		c.logger.Warn().Err(err).Msg("Comment submission failed")
		return err
	}

	c.ev.Comments = append([]event.Comment{*comment}, c.ev.Comments...)
	c.commentInput = ""
	c.lastErr = nil
	return nil
}

// --- helpers ---

func (c *Controller) checkOpen() error {
	if c.closed {
		return errs.NewError(errs.ErrCardClosed)
	}
	return nil
}

func (c *Controller) canConfirmLocked() bool {
	return event.CanConfirmAttendance(c.ev.Stock, c.ev.IsAttendee, c.ev.Date, c.now())
}

// requestContext derives a request context that is also cancelled when the card closes.
func (c *Controller) requestContext(ctx context.Context) (context.Context, func()) {
	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}
}

func cloneEvent(ev event.Event) event.Event {
	out := ev
	out.Comments = append([]event.Comment(nil), ev.Comments...)
	out.Ratings = append([]event.Rating(nil), ev.Ratings...)
	if ev.Organizer != nil {
		organizer := *ev.Organizer
		out.Organizer = &organizer
	}
	return out
}
