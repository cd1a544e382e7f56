// Package auth holds the signed-in user. A stored user record is the only
// authentication signal; there are no credentials.
package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"projector/internal/events"
	"projector/internal/repo"
	"projector/internal/storage"
	"projector/internal/team"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNameRequired     = errors.New("name is required")
	ErrNotAuthenticated = errors.New("not signed in")
)

const DefaultAvatarURL = "/uploads/6653e968-d824-406d-a044-035175d60980.png"

type Preferences struct {
	NotifyEmail bool   `json:"notifyEmail"`
	NotifyApp   bool   `json:"notifyApp"`
	Theme       string `json:"theme"`
	TimeFormat  string `json:"timeFormat"`
}

func DefaultPreferences() Preferences {
	return Preferences{NotifyEmail: true, NotifyApp: true, Theme: "light", TimeFormat: "12h"}
}

type User struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	AvatarURL   string       `json:"avatarUrl"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// FirstName is the first word of the display name.
func (u User) FirstName() string {
	if f := strings.Fields(u.Name); len(f) > 0 {
		return f[0]
	}
	return u.Name
}

// Settings returns the stored preferences or the defaults.
func (u User) Settings() Preferences {
	if u.Preferences == nil {
		return DefaultPreferences()
	}
	return *u.Preferences
}

// Actor converts the user for activity records.
func (u User) Actor() events.Actor {
	return events.Actor{Name: u.Name, AvatarURL: u.AvatarURL}
}

// Member converts the user for assignee lists.
func (u User) Member() team.Member {
	return team.Member{Name: u.Name, AvatarURL: u.AvatarURL}
}

type Session struct {
	mu  sync.RWMutex
	doc *repo.Document[User]
	bus *events.Bus
}

func NewSession(store storage.Store, bus *events.Bus) *Session {
	return &Session{doc: repo.NewDocument[User](store, storage.KeyUser), bus: bus}
}

// Current returns the stored user, if any. A record that cannot be read
// counts as signed out.
func (s *Session) Current() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok, err := s.doc.Load()
	if err != nil || !ok {
		return User{}, false
	}
	return u, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Require returns the current user or ErrNotAuthenticated.
func (s *Session) Require() (User, error) {
	u, ok := s.Current()
	if !ok {
		return User{}, ErrNotAuthenticated
	}
	return u, nil
}

// Actor returns the signed-in user's activity identity, "You" when signed
// out.
func (s *Session) Actor() events.Actor {
	if u, ok := s.Current(); ok {
		return u.Actor()
	}
	return events.Actor{Name: "You"}
}

func checkEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	return addr.Address, nil
}

// NameFromEmail derives a display name from the local part of an address:
// "jane.doe@x.io" becomes "Jane Doe".
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[n:]
	}
	if len(words) == 0 {
		return "You"
	}
	return strings.Join(words, " ")
}

func (s *Session) save(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Save(u)
}

// Login stores a user for email. A blank name is derived from the address.
func (s *Session) Login(email, name string) (User, error) {
	email, err := checkEmail(email)
	if err != nil {
		return User{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = NameFromEmail(email)
	}
	u := User{Name: name, Email: email, AvatarURL: DefaultAvatarURL}
	if prev, ok := s.Current(); ok && strings.EqualFold(prev.Email, email) {
		u.AvatarURL = prev.AvatarURL
		u.Preferences = prev.Preferences
	}
	if err := s.save(u); err != nil {
		return User{}, err
	}
	s.bus.Notify(fmt.Sprintf("Welcome back, %s!", u.FirstName()), "You have successfully logged in.")
	return u, nil
}

// SignUp is Login with a required name.
func (s *Session) SignUp(email, name string) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, ErrNameRequired
	}
	email, err := checkEmail(email)
	if err != nil {
		return User{}, err
	}
	u := User{Name: strings.TrimSpace(name), Email: email, AvatarURL: DefaultAvatarURL}
	if err := s.save(u); err != nil {
		return User{}, err
	}
	s.bus.Notify("Account created!", "Your account has been created successfully.")
	return u, nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	err := s.doc.Clear()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bus.Notify("Logged out", "You have been logged out successfully.")
	return nil
}

func (s *Session) update(fn func(*User) error) (User, error) {
	u, err := s.Require()
	if err != nil {
		return User{}, err
	}
	if err := fn(&u); err != nil {
		return User{}, err
	}
	if err := s.save(u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateProfile changes name and email of the signed-in user.
func (s *Session) UpdateProfile(name, email string) (User, error) {
	u, err := s.update(func(u *User) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return ErrNameRequired
		}
		e, err := checkEmail(email)
		if err != nil {
			return err
		}
		u.Name, u.Email = name, e
		return nil
	})
	if err != nil {
		return User{}, err
	}
	s.bus.Notify("Profile Updated", "Your profile has been updated successfully")
	return u, nil
}

// SaveNotifications stores the notification toggles.
func (s *Session) SaveNotifications(email, app bool) (User, error) {
	u, err := s.update(func(u *User) error {
		p := u.Settings()
		p.NotifyEmail, p.NotifyApp = email, app
		u.Preferences = &p
		return nil
	})
	if err != nil {
		return User{}, err
	}
	s.bus.Notify("Notification Settings Saved", "Your notification preferences have been updated")
	return u, nil
}

// SaveAppearance stores theme ("light" or "dark") and time format ("12h" or
// "24h").
func (s *Session) SaveAppearance(theme, timeFormat string) (User, error) {
	if theme != "light" && theme != "dark" {
		return User{}, fmt.Errorf("unknown theme %q", theme)
	}
	if timeFormat != "12h" && timeFormat != "24h" {
		return User{}, fmt.Errorf("unknown time format %q", timeFormat)
	}
	u, err := s.update(func(u *User) error {
		p := u.Settings()
		p.Theme, p.TimeFormat = theme, timeFormat
		u.Preferences = &p
		return nil
	})
	if err != nil {
		return User{}, err
	}
	s.bus.Notify("Appearance Settings Saved", "Your appearance settings have been updated")
	return u, nil
}
