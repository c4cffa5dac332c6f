package domain

import (
	"strconv"
	"time"
)

// Session is a login issued by the account store.
//
// Lifecycle:
//
//	absent --Login--> active --Touch (idle < timeout)--> active
//	active --Touch (idle >= timeout) | Logout--> inactive
//
// inactive is terminal for the token.
type Session struct {
	ID           string    `json:"session_id"`
	UserType     Role      `json:"user_type"`
	UserID       int64     `json:"user_id"`
	LastActivity time.Time `json:"last_activity"`
	Active       bool      `json:"active"`
}

// Touch validates the session at now and refreshes its last activity. It
// returns the idle budget that was left before the refresh.
//
// An inactive session yields ErrInvalidSession. A session idle for at least
// timeout is deactivated and yields a *SessionExpiredError.
func (s *Session) Touch(now time.Time, timeout time.Duration) (time.Duration, error) {
	if !s.Active {
		return 0, ErrInvalidSession
	}
	idle := now.Sub(s.LastActivity)
	if idle >= timeout {
		s.Active = false
		return 0, &SessionExpiredError{UserType: s.UserType, UserID: s.UserID, Timeout: idleLimit(timeout)}
	}
	s.LastActivity = now
	return timeout - idle, nil
}

// Deactivate ends the session. It reports false when it was already inactive.
func (s *Session) Deactivate() bool {
	if !s.Active {
		return false
	}
	s.Active = false
	return true
}

// idleLimit renders a timeout for user-facing messages, e.g. "5 minutes".
func idleLimit(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d%time.Minute == 0:
		return strconv.FormatInt(int64(d/time.Minute), 10) + " minutes"
	case d%time.Second == 0:
		return strconv.FormatInt(int64(d/time.Second), 10) + " seconds"
	}
	return d.String()
}
