package models

import "time"

// Session holds the authenticated state that used to live in browser storage.
type Session struct {
	LoggedInAt  time.Time    `json:"loggedInAt"`
	Profile     *UserProfile `json:"profile,omitempty"`
	AccessToken string       `json:"accessToken"`
	UserName    string       `json:"userName"`
	LanguageID  int          `json:"languageId,omitempty"`
}

// IsAuthenticated reports whether the session carries an access token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() Session {
	clone := *s
	if s.Profile != nil {
		p := *s.Profile
		clone.Profile = &p
	}
	return clone
}
