package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Profile is what a user filled in at signup.
type Profile struct {
	Nickname string
	Email    string
	Currency string // preferred currency
	Timezone string
}

// Signup is the signup form.
type Signup struct {
	Nickname        string
	Email           string
	Password        string
	ConfirmPassword string
	Currency        string
	Timezone        string
}

// AuthService holds the signed-in flag. Credentials are checked for presence
// only; there is no account store behind it.
type AuthService struct {
	log *slog.Logger

	mu            sync.RWMutex
	authenticated bool
	profile       *Profile
}

// NewAuthService returns a signed-out AuthService.
func NewAuthService(opts ...Option) *AuthService {
	return &AuthService{log: buildOptions(opts).log}
}

// Login signs the user in.
// Returns domain.ErrValidation when email or password is empty.
func (s *AuthService) Login(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	s.log.Info("signed in", slog.String("email", email))
	return nil
}

// SignUp records the profile and signs the user in.
// Returns domain.ErrValidation for missing fields or mismatched passwords.
func (s *AuthService) SignUp(form Signup) (Profile, error) {
	form.Email = strings.TrimSpace(form.Email)
	form.Nickname = strings.TrimSpace(form.Nickname)
	if form.Email == "" || form.Password == "" {
		return Profile{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	if form.Password != form.ConfirmPassword {
		return Profile{}, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	currency := "KRW"
	if strings.TrimSpace(form.Currency) != "" {
		c, err := normalizeCurrency(form.Currency)
		if err != nil {
			return Profile{}, err
		}
		currency = c
	}
	timezone := strings.TrimSpace(form.Timezone)
	if timezone == "" {
		timezone = "Asia/Seoul"
	}

	p := Profile{Nickname: form.Nickname, Email: form.Email, Currency: currency, Timezone: timezone}
	s.mu.Lock()
	s.authenticated = true
	s.profile = &p
	s.mu.Unlock()
	s.log.Info("signed up", slog.String("email", p.Email))
	return p, nil
}

// Logout clears the flag. The profile from signup is kept.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}

// Authenticated reports whether the user is signed in.
func (s *AuthService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Profile returns the signup profile, if any.
func (s *AuthService) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}
