package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
	"github.com/RanjithMathi/freshto-gateway/internal/session"
)

type memorySessions struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: make(map[string]string)}
}

func (m *memorySessions) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (m *memorySessions) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memorySessions) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memorySessions) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

type fakeOTP struct {
	sent   []string
	result *VerifyResult
	err    error
}

func (f *fakeOTP) SendOTP(_ context.Context, phone string) error {
	f.sent = append(f.sent, phone)
	return f.err
}

func (f *fakeOTP) VerifyOTP(_ context.Context, phone, code string) (*VerifyResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestSendOTP_ValidatesPhone(t *testing.T) {
	otp := &fakeOTP{}
	svc := NewService(otp, newMemorySessions())

	for _, phone := range []string{"12345", "5876543210", "98765432100", "abcdefghij"} {
		err := svc.SendOTP(context.Background(), phone)
		var vErr *backend.ValidationError
		require.ErrorAs(t, err, &vErr, "phone %q should fail validation", phone)
	}
	assert.Empty(t, otp.sent, "invalid numbers never reach the network")

	require.NoError(t, svc.SendOTP(context.Background(), " 9876543210 "))
	assert.Equal(t, []string{"9876543210"}, otp.sent)
}

func TestVerifyOTP_SuccessPersistsSession(t *testing.T) {
	sessions := newMemorySessions()
	otp := &fakeOTP{result: &VerifyResult{
		Success:      true,
		User:         &User{ID: 42, Phone: "9876543210"},
		Token:        "tok-abc",
		HasAddresses: true,
	}}
	svc := NewService(otp, sessions)

	result, err := svc.VerifyOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	require.True(t, result.Success)

	user, err := svc.CurrentUser(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.True(t, user.HasAddresses)

	loggedIn, err := sessions.Get(context.Background(), "tok-abc:"+session.KeyIsLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "true", loggedIn)
}

func TestVerifyOTP_WrongCodeLeavesLoggedOut(t *testing.T) {
	sessions := newMemorySessions()
	otp := &fakeOTP{result: &VerifyResult{Success: false, Message: "Invalid OTP"}}
	svc := NewService(otp, sessions)

	result, err := svc.VerifyOTP(context.Background(), "9876543210", "000000")
	require.NoError(t, err)
	assert.False(t, result.Success)

	// Nothing persisted: still logged out.
	assert.Equal(t, 0, sessions.size())
	_, err = svc.CurrentUser(context.Background(), "tok-abc")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestVerifyOTP_ValidatesInputsLocally(t *testing.T) {
	svc := NewService(&fakeOTP{}, newMemorySessions())

	_, err := svc.VerifyOTP(context.Background(), "5876543210", "123456")
	var vErr *backend.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phoneNumber", vErr.Field)

	_, err = svc.VerifyOTP(context.Background(), "9876543210", "12ab")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "otp", vErr.Field)
}

func TestLogout_ClearsSession(t *testing.T) {
	sessions := newMemorySessions()
	otp := &fakeOTP{result: &VerifyResult{
		Success: true,
		User:    &User{ID: 42},
		Token:   "tok-abc",
	}}
	svc := NewService(otp, sessions)

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	require.NotZero(t, sessions.size())

	require.NoError(t, svc.Logout(context.Background(), "tok-abc"))
	assert.Equal(t, 0, sessions.size())

	_, err = svc.CurrentUser(context.Background(), "tok-abc")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCurrentUser_EmptyToken(t *testing.T) {
	svc := NewService(&fakeOTP{}, newMemorySessions())
	_, err := svc.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
