package handler

import (
	"net/http"

	"github.com/pkordes/tripjournal/internal/service"
)

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the body of POST /auth/signup.
type SignupInput struct {
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Currency        string `json:"currency,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
}

// Profile is the JSON shape of the signup profile.
type Profile struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
}

// AuthSession is the body of every /auth response.
type AuthSession struct {
	Authenticated bool     `json:"authenticated"`
	Profile       *Profile `json:"profile,omitempty"`
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginInput
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.auth.Login(body.Email, body.Password); err != nil {
		s.writeError(w, r, "account", err)
		return
	}
	writeJSON(w, http.StatusOK, s.authSession())
}

// SignUp handles POST /auth/signup.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var body SignupInput
	if !decodeBody(w, r, &body) {
		return
	}
	_, err := s.auth.SignUp(service.Signup{
		Nickname:        body.Nickname,
		Email:           body.Email,
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
		Currency:        body.Currency,
		Timezone:        body.Timezone,
	})
	if err != nil {
		s.writeError(w, r, "account", err)
		return
	}
	writeJSON(w, http.StatusCreated, s.authSession())
}

// Logout handles POST /auth/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout()
	writeJSON(w, http.StatusOK, s.authSession())
}

// GetAuthSession handles GET /auth/session.
func (s *Server) GetAuthSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.authSession())
}

func (s *Server) authSession() AuthSession {
	out := AuthSession{Authenticated: s.auth.Authenticated()}
	if p, ok := s.auth.Profile(); ok {
		out.Profile = &Profile{
			Nickname: p.Nickname,
			Email:    p.Email,
			Currency: p.Currency,
			Timezone: p.Timezone,
		}
	}
	return out
}
