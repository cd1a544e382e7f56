package auth

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/events"
	"projector/internal/storage"
)

func newTestSession(t *testing.T) (*Session, storage.Store, *[]events.Notification) {
	t.Helper()
	store := storage.NewMemoryStore()
	bus := events.NewBus()
	var got []events.Notification
	events.On(bus, func(n events.Notification) { got = append(got, n) })
	return NewSession(store, bus), store, &got
}

func TestLogin(t *testing.T) {
	s, store, got := newTestSession(t)

	_, err := s.Require()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, "You", s.Actor().Name)

	u, err := s.Login("niranjan@example.com", "Niranjan Rao")
	require.NoError(t, err)
	assert.Equal(t, "Niranjan Rao", u.Name)
	assert.Equal(t, DefaultAvatarURL, u.AvatarURL)
	require.Len(t, *got, 1)
	assert.Equal(t, "Welcome back, Niranjan!", (*got)[0].Title)

	raw, err := store.Get(storage.KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Niranjan Rao","email":"niranjan@example.com","avatarUrl":"`+DefaultAvatarURL+`"}`, string(raw))

	cur, err := s.Require()
	require.NoError(t, err)
	assert.Equal(t, u, cur)
	assert.Equal(t, "Niranjan Rao", s.Actor().Name)
}

func TestLoginValidation(t *testing.T) {
	s, _, got := newTestSession(t)

	_, err := s.Login("  ", "x")
	assert.ErrorIs(t, err, ErrEmailRequired)
	_, err = s.Login("not-an-address", "x")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = s.SignUp("a@b.co", " ")
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = s.Login("Jane Doe <jane@example.com>", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, *got)
	assert.False(t, s.Authenticated())
}

func TestLoginStoresBareAddress(t *testing.T) {
	s, _, _ := newTestSession(t)
	u, err := s.Login("  <jane@example.com> ", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.Name)
}

func TestNameFromEmail(t *testing.T) {
	tests := map[string]string{
		"jane.doe@example.com": "Jane Doe",
		"sam@example.com":      "Sam",
		"a_b-c@example.com":    "A B C",
		"@example.com":         "You",
		"élodie.ünal@x.fr":     "Élodie Ünal",
	}
	for email, want := range tests {
		got := NameFromEmail(email)
		assert.Equal(t, want, got, email)
		assert.True(t, utf8.ValidString(got), email)
	}

	s, _, _ := newTestSession(t)
	u, err := s.Login("jane.doe@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.Name)
}

func TestLogout(t *testing.T) {
	s, store, got := newTestSession(t)
	_, err := s.Login("a@b.co", "Ann")
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	assert.False(t, s.Authenticated())
	_, err = store.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, "Logged out", (*got)[len(*got)-1].Title)
}

func TestCorruptUserIsSignedOut(t *testing.T) {
	s, store, _ := newTestSession(t)
	require.NoError(t, store.Put(storage.KeyUser, []byte(`{nope`)))
	assert.False(t, s.Authenticated())
}

func TestUpdateProfileAndPreferences(t *testing.T) {
	s, _, got := newTestSession(t)

	_, err := s.UpdateProfile("New", "n@b.co")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Login("a@b.co", "Ann")
	require.NoError(t, err)

	u, err := s.UpdateProfile("Ann Lee", "ann@b.co")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", u.Name)
	assert.Equal(t, "Profile Updated", (*got)[len(*got)-1].Title)

	assert.Equal(t, DefaultPreferences(), u.Settings())
	u, err = s.SaveAppearance("dark", "24h")
	require.NoError(t, err)
	u, err = s.SaveNotifications(false, true)
	require.NoError(t, err)
	assert.Equal(t, Preferences{NotifyEmail: false, NotifyApp: true, Theme: "dark", TimeFormat: "24h"}, u.Settings())

	_, err = s.SaveAppearance("neon", "24h")
	assert.Error(t, err)

	// Signing in again with the same address keeps preferences.
	u, err = s.Login("ann@b.co", "")
	require.NoError(t, err)
	assert.Equal(t, "dark", u.Settings().Theme)
}
