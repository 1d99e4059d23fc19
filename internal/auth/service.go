package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
	"github.com/RanjithMathi/freshto-gateway/internal/session"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")

	// 10 digits, leading 6-9 (local mobile format)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	otpRe   = regexp.MustCompile(`^\d{4,6}$`)
)

// Service runs the OTP login flow and owns the persisted session triple
// {user, authToken, isLoggedIn} stored per issued token.
type Service struct {
	otp      OTPService
	sessions session.Store
}

func NewService(otp OTPService, sessions session.Store) *Service {
	return &Service{otp: otp, sessions: sessions}
}

func (s *Service) SendOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return &backend.ValidationError{
			Field:  "phoneNumber",
			Reason: "must be 10 digits starting with 6-9",
		}
	}
	return s.otp.SendOTP(ctx, phone)
}

// VerifyOTP checks the code with the auth service. A successful verify
// persists the session; a failed one mutates nothing and leaves the
// caller logged out.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return nil, &backend.ValidationError{
			Field:  "phoneNumber",
			Reason: "must be 10 digits starting with 6-9",
		}
	}
	if !otpRe.MatchString(strings.TrimSpace(code)) {
		return nil, &backend.ValidationError{Field: "otp", Reason: "must be 4-6 digits"}
	}

	result, err := s.otp.VerifyOTP(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	if result.User == nil || result.Token == "" {
		return nil, fmt.Errorf("auth service returned success without user or token")
	}
	result.User.HasAddresses = result.HasAddresses

	if err := s.persist(ctx, result.Token, result.User); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return result, nil
}

// CurrentUser resolves a bearer token against the persisted session,
// bootstrapping auth state across gateway restarts.
func (s *Service) CurrentUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	raw, err := s.sessions.Get(ctx, sessionKey(token, session.KeyUser))
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Remove(ctx,
		sessionKey(token, session.KeyUser),
		sessionKey(token, session.KeyAuthToken),
		sessionKey(token, session.KeyIsLoggedIn),
	)
}

// Expire tears down a session the backend has rejected (401/403).
func (s *Service) Expire(ctx context.Context, token string) {
	if err := s.Logout(ctx, token); err != nil {
		log.Printf("failed to expire session: %v", err)
	}
}

func (s *Service) persist(ctx context.Context, token string, user *User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.sessions.Set(ctx, sessionKey(token, session.KeyUser), string(userJSON)); err != nil {
		return err
	}
	if err := s.sessions.Set(ctx, sessionKey(token, session.KeyAuthToken), token); err != nil {
		return err
	}
	return s.sessions.Set(ctx, sessionKey(token, session.KeyIsLoggedIn), "true")
}

func sessionKey(token, field string) string {
	return token + ":" + field
}
