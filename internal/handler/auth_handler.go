package handler

import (
	"net/http"
	"strings"

	"eventify/internal/app/api"
	"eventify/internal/app/session"
	"eventify/internal/app/user"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/req"
	"eventify/internal/pkg/resp"
)

// HandleRegister creates an account and signs it in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input api.SignUpRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidRequest))
			return
		}

		profile, err := deps.Store.AddUser(strings.TrimSpace(input.Username), input.Email, input.Password)
		if err != nil {
			if errs.Is(err, errs.ErrUserAlreadyExists) {
				logx.Warn("registration conflict: email already exists", "email", input.Email)
			}
			respondStoreError(w, r, err)
			return
		}

		issueSession(w, r, deps, profile)
	}
}

// HandleLogin verifies credentials and issues a bearer token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input api.LoginRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		profile, err := deps.Store.Authenticate(input.Email, input.Password)
		if err != nil {
			logx.Warn("login: invalid credentials", "email", input.Email)
			respondStoreError(w, r, err)
			return
		}

		issueSession(w, r, deps, profile)
	}
}

func issueSession(w http.ResponseWriter, r *http.Request, deps *AppDeps, profile user.Profile) {
	token, err := deps.Tokens.Issue(profile)
	if err != nil {
		logx.Error(err, "jwt generation failed", "user_id", profile.ID)
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
		return
	}

	resp.RespondSuccess(w, r, session.Session{Token: token, User: profile})
}

// respondStoreError writes a Store failure; anything unexpected becomes a 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if customErr, ok := errs.As(err); ok {
		resp.RespondError(w, r, customErr)
		return
	}
	logx.Error(err, "stub store failure")
	resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
}
