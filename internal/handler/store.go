package handler

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"eventify/internal/app/event"
	"eventify/internal/app/user"
	"eventify/internal/pkg/errs"
)

// account is a registered user with its password hash.
type account struct {
	profile      user.Profile
	passwordHash []byte
}

// Store is the in-memory state of the stub backend. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	accounts map[int]*account
	byEmail  map[string]int

	events map[int]*event.Event
	// attendees maps an event id to the set of attending user ids.
	attendees map[int]map[int]*event.AttendanceRecord

	nextUserID       int
	nextEventID      int
	nextCommentID    int
	nextRatingID     int
	nextAttendanceID int

	now func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[int]*account),
		byEmail:   make(map[string]int),
		events:    make(map[int]*event.Event),
		attendees: make(map[int]map[int]*event.AttendanceRecord),
		now:       time.Now,
	}
}

// stamp formats t like the events API does.
func stamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// AddUser registers a user. The email is matched case-insensitively.
func (s *Store) AddUser(username, email, password string) (user.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.Profile{}, errs.NewError(errs.ErrUnknown, err)
	}

	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return user.Profile{}, errs.NewError(errs.ErrUserAlreadyExists)
	}

	s.nextUserID++
	now := stamp(s.now())
	profile := user.Profile{
		ID:        s.nextUserID,
		Username:  username,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[profile.ID] = &account{profile: profile, passwordHash: hash}
	s.byEmail[key] = profile.ID
	return profile, nil
}

// Authenticate returns the profile matching email and password.
func (s *Store) Authenticate(email, password string) (user.Profile, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	s.mu.RUnlock()

	if acc == nil {
		return user.Profile{}, errs.NewError(errs.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return user.Profile{}, errs.NewError(errs.ErrInvalidCredentials)
	}
	return acc.profile, nil
}

// AddEvent stores e as organized by e.OrganizerID and returns it with its assigned id.
func (s *Store) AddEvent(e event.Event) event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	e.ID = s.nextEventID
	e.IsAttendee = false
	e.Comments = append([]event.Comment(nil), e.Comments...)
	e.Ratings = append([]event.Rating(nil), e.Ratings...)
	if acc, ok := s.accounts[e.OrganizerID]; ok {
		organizer := acc.profile
		e.Organizer = &organizer
	}

	stored := e
	s.events[e.ID] = &stored
	return s.viewLocked(&stored, e.OrganizerID)
}

// UpdateEvent replaces the editable fields of an event organized by viewerID.
func (s *Store) UpdateEvent(viewerID int, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[e.ID]
	if !ok {
		return errs.NewError(errs.ErrNotFound)
	}
	if stored.OrganizerID != viewerID {
		return errs.NewError(errs.ErrNotOrganizer)
	}

	stored.Title = e.Title
	stored.Description = e.Description
	stored.Date = e.Date
	stored.Time = e.Time
	stored.Location = e.Location
	stored.Price = e.Price
	stored.Stock = e.Stock
	return nil
}

// Event returns one event as seen by viewerID.
func (s *Store) Event(id, viewerID int) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.events[id]
	if !ok {
		return event.Event{}, errs.NewError(errs.ErrNotFound)
	}
	return s.viewLocked(stored, viewerID), nil
}

// Events returns the events starting after now (future) or not (past), ordered by date.
func (s *Store) Events(future bool, viewerID int) []event.Event {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.events))
	for _, stored := range s.events {
		startsAt, ok := event.ParseDate(stored.Date)
		if !ok || startsAt.After(now) != future {
			continue
		}
		out = append(out, s.viewLocked(stored, viewerID))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Attend registers viewerID for an event. Attending twice returns the first record
// without taking another seat.
func (s *Store) Attend(eventID, viewerID int) (event.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[eventID]
	if !ok {
		return event.AttendanceRecord{}, errs.NewError(errs.ErrNotFound)
	}

	if rec, ok := s.attendees[eventID][viewerID]; ok {
		return *rec, nil
	}
	if stored.Stock <= 0 {
		return event.AttendanceRecord{}, errs.NewError(errs.ErrSoldOut)
	}

	stored.Stock--
	s.nextAttendanceID++
	rec := &event.AttendanceRecord{
		ID:            s.nextAttendanceID,
		UserID:        viewerID,
		EventID:       eventID,
		Attendance:    true,
		Notifications: true,
	}
	if s.attendees[eventID] == nil {
		s.attendees[eventID] = make(map[int]*event.AttendanceRecord)
	}
	s.attendees[eventID][viewerID] = rec
	return *rec, nil
}

// AddComment stores a comment by viewerID on an event.
func (s *Store) AddComment(eventID, viewerID int, content string) (event.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[eventID]
	if !ok {
		return event.Comment{}, errs.NewError(errs.ErrNotFound)
	}
	acc, ok := s.accounts[viewerID]
	if !ok {
		return event.Comment{}, errs.NewError(errs.ErrUnauthorized)
	}

	s.nextCommentID++
	comment := event.Comment{
		ID:      s.nextCommentID,
		Content: content,
		Date:    stamp(s.now()),
		UserID:  viewerID,
		EventID: eventID,
		User:    acc.profile,
	}
	stored.Comments = append([]event.Comment{comment}, stored.Comments...)
	return comment, nil
}

// AddRating stores a rating by viewerID on an event.
func (s *Store) AddRating(eventID, viewerID, stars int) (event.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[eventID]
	if !ok {
		return event.Rating{}, errs.NewError(errs.ErrNotFound)
	}

	s.nextRatingID++
	rating := event.Rating{
		ID:      s.nextRatingID,
		Rating:  stars,
		Date:    stamp(s.now()),
		UserID:  viewerID,
		EventID: eventID,
	}
	stored.Ratings = append(stored.Ratings, rating)
	return rating, nil
}

// viewLocked copies a stored event and marks whether viewerID attends it.
func (s *Store) viewLocked(stored *event.Event, viewerID int) event.Event {
	out := *stored
	out.Comments = append([]event.Comment{}, stored.Comments...)
	out.Ratings = append([]event.Rating{}, stored.Ratings...)
	if stored.Organizer != nil {
		organizer := *stored.Organizer
		out.Organizer = &organizer
	}
	_, out.IsAttendee = s.attendees[stored.ID][viewerID]
	return out
}
