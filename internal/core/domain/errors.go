package domain

import (
	"errors"
	"fmt"
)

// Account and session errors.
var (
	ErrInvalidRole      = errors.New("role must be buyer or seller")
	ErrNameTooLong      = errors.New("exceeds 32 characters")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrMissingUsername  = errors.New("username required")
	ErrUnknownUsername  = errors.New("unknown username")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrSessionRequired  = errors.New("session_id required")
	ErrInvalidSession   = errors.New("invalid session")
	ErrSessionExpired   = errors.New("session expired")
	ErrWrongSessionRole = errors.New("session role mismatch")
	ErrSellerNotFound   = errors.New("seller not found")
	ErrSellerIDRequired = errors.New("seller_id required")
	ErrInvalidVote      = errors.New("vote must be up or down")
)

// Catalog and cart errors.
var (
	ErrItemNameTooLong      = errors.New("item_name exceeds 32 characters")
	ErrTooManyKeywords      = errors.New("at most 5 keywords allowed")
	ErrKeywordTooLong       = errors.New("keyword exceeds 8 characters")
	ErrInvalidCondition     = errors.New("condition must be New or Used")
	ErrNegativeQuantity     = errors.New("quantity must be non-negative")
	ErrItemNotFound         = errors.New("item not found")
	ErrNotItemOwner         = errors.New("forbidden: not item owner")
	ErrNegativeRemoval      = errors.New("remove_quantity must be non-negative")
	ErrInsufficientQuantity = errors.New("cannot remove more than available quantity")
	ErrNonPositiveQuantity  = errors.New("quantity must be > 0")
	ErrItemUnavailable      = errors.New("item unavailable")
	ErrNotInCart            = errors.New("item not in cart")
	ErrExceedsCartQuantity  = errors.New("cannot remove more than in cart")
	ErrInvalidItemKey       = errors.New("item_id must be <category>:<id>")
	ErrPurchaseUnsupported  = errors.New("MakePurchase is not implemented")
	ErrMissingField         = errors.New("required field missing")
)

// MissingFieldError names a required payload field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return e.Field + " required" }

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// SessionExpiredError reports a session that was active but idle past the
// timeout. It carries the owner so callers can prompt a re-login.
type SessionExpiredError struct {
	UserType Role
	UserID   int64
	Timeout  string
}

func (e *SessionExpiredError) Error() string {
	if e.Timeout == "" {
		return "Session expired due to inactivity."
	}
	return fmt.Sprintf("Session expired after %s of inactivity.", e.Timeout)
}

func (e *SessionExpiredError) Unwrap() error { return ErrSessionExpired }

// WrongSessionRoleError reports a valid session used against the other
// frontend.
type WrongSessionRoleError struct {
	Want Role
}

func (e *WrongSessionRoleError) Error() string {
	return fmt.Sprintf("Session is not a %s session.", e.Want)
}

func (e *WrongSessionRoleError) Unwrap() error { return ErrWrongSessionRole }
