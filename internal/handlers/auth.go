// Package handlers wires the HTTP surface to the core engine and stores.
package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/videotrack/internal/platform/analytics"
	"github.com/example/videotrack/internal/platform/api"
	"github.com/example/videotrack/internal/platform/auth"
	"github.com/example/videotrack/internal/platform/httpserver"
	"github.com/example/videotrack/internal/store"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User        store.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
}

// Register creates an account and logs it in immediately.
func Register(users store.UserStore, tokens auth.TokenService, ap *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req credentialsRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !emailRe.MatchString(email) {
			api.BadRequest(w, "VALIDATION_EMAIL", "Invalid email", rid)
			return
		}
		if len(req.Password) < 8 {
			api.BadRequest(w, "VALIDATION_PASSWORD", "Password too short", rid)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Internal(w, rid)
			return
		}

		u, err := users.CreateUser(r.Context(), email, string(hash))
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				api.Conflict(w, "USER_ALREADY_EXISTS", "Email already registered", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		resp, err := issueToken(tokens, u)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		ap.Publish(analytics.SubjectAuthRegistered, "user_registered", u.ID, nil)
		api.WriteJSON(w, http.StatusCreated, resp)
	}
}

// Login validates credentials and returns an access token.
func Login(users store.UserStore, tokens auth.TokenService, ap *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req credentialsRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			api.BadRequest(w, "VALIDATION_CREDENTIALS", "Email and password are required", rid)
			return
		}

		u, ok, err := users.GetUserByEmail(r.Context(), email)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			api.Unauthorized(w, "AUTH_INVALID_CREDENTIALS", "Invalid email or password", rid)
			return
		}

		resp, err := issueToken(tokens, u)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		ap.Publish(analytics.SubjectAuthLoggedIn, "user_logged_in", u.ID, nil)
		api.WriteJSON(w, http.StatusOK, resp)
	}
}

func issueToken(tokens auth.TokenService, u store.User) (authResponse, error) {
	access, exp, err := tokens.NewAccessToken(u.ID, time.Now().UTC())
	if err != nil {
		return authResponse{}, err
	}
	return authResponse{
		User:        u,
		AccessToken: access,
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	}, nil
}
