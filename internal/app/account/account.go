/*
Package account implements the sign-in, sign-up and sign-out flows of the client.

Credentials are validated locally first: a request with an empty required field is
never sent. A successful exchange stores the returned session and moves the
navigator to the home route.
*/
package account

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"eventify/internal/app/api"
	"eventify/internal/app/nav"
	"eventify/internal/app/session"
	"eventify/internal/app/user"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
)

// Fallback messages for failures that carry no server text.
const (
	LoginFallback  = "Login failed"
	SignUpFallback = "Sign-up failed"
)

// Backend is the subset of the API client the account flows need.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (*session.Session, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (*session.Session, error)
}

// Service runs the account flows against a backend, a session store and a navigator.
type Service struct {
	backend   Backend
	store     session.Store
	navigator *nav.Navigator
	logger    zerolog.Logger
}

// NewService returns a Service. The store and navigator are shared, not owned.
func NewService(backend Backend, store session.Store, navigator *nav.Navigator) *Service {
	return &Service{
		backend:   backend,
		store:     store,
		navigator: navigator,
		logger:    logx.Component("account"),
	}
}

// Login signs in with email and password.
// Use LoginMessage to render a returned error.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	if blank(email, password) {
		return nil, errs.NewError(errs.ErrFieldsRequired)
	}

	sess, err := s.backend.Login(ctx, api.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Login rejected")
		return nil, err
	}
	if err := s.establish(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", sess.User.ID).Msg("User logged in")
	return sess, nil
}

// SignUp registers a new account and signs in with it.
// Use SignUpMessage to render a returned error.
func (s *Service) SignUp(ctx context.Context, username, email, password string) (*session.Session, error) {
	if blank(username, email, password) {
		return nil, errs.NewError(errs.ErrFieldsRequired)
	}

	sess, err := s.backend.SignUp(ctx, api.SignUpRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Sign-up rejected")
		return nil, err
	}
	if err := s.establish(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", sess.User.ID).Msg("User signed up")
	return sess, nil
}

// Logout clears the stored session and returns to the login route.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return errs.Wrap(errs.ErrSessionStorage, err)
	}
	s.navigator.Reset(nav.Login)
	return nil
}

// Current returns the profile of the signed-in user.
func (s *Service) Current(ctx context.Context) (*user.Profile, error) {
	sess, err := session.Current(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return &sess.User, nil
}

// Resume skips the login route when a session is already stored.
// A stored session that cannot be decoded is discarded. It reports whether the
// client is signed in.
func (s *Service) Resume(ctx context.Context) (bool, error) {
	_, err := session.Current(ctx, s.store)
	switch {
	case err == nil:
		s.navigator.Reset(nav.Home)
		return true, nil
	case errs.Is(err, errs.ErrNoSession):
		s.navigator.Reset(nav.Login)
		return false, nil
	case errs.Is(err, errs.ErrSessionCorrupt):
		s.logger.Warn().Err(err).Msg("Discarding unreadable stored session")
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			return false, errs.Wrap(errs.ErrSessionStorage, clearErr)
		}
		s.navigator.Reset(nav.Login)
		return false, nil
	default:
		return false, err
	}
}

// LoginMessage is the text shown for a failed Login.
func LoginMessage(err error) string {
	return errs.UserMessage(err, LoginFallback)
}

// SignUpMessage is the text shown for a failed SignUp.
func SignUpMessage(err error) string {
	return errs.UserMessage(err, SignUpFallback)
}

func (s *Service) establish(ctx context.Context, sess *session.Session) error {
	if sess == nil || strings.TrimSpace(sess.Token) == "" {
		return errs.NewError(errs.ErrDecodeResponse)
	}
	if err := session.Persist(ctx, s.store, sess); err != nil {
		return err
	}
	s.navigator.Reset(nav.Home)
	return nil
}

func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
