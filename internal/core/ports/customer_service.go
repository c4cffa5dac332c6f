package ports

//go:generate mockgen -source=customer_service.go -destination=mocks/mock_customer_service.go -package=mocks

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
)

// CreateAccountInput carries a new buyer or seller registration. Role travels
// in the request envelope, not the payload; only the name field matching the
// role is used.
type CreateAccountInput struct {
	Role       domain.Role `json:"-"`
	SellerName string      `json:"seller_name,omitempty"`
	BuyerName  string      `json:"buyer_name,omitempty"`
	Username   string      `json:"username" validate:"required"`
	Password   string      `json:"password"`
}

// AccountCreated holds the id allocated in the role's namespace.
type AccountCreated struct {
	SellerID int64 `json:"seller_id,omitempty"`
	BuyerID  int64 `json:"buyer_id,omitempty"`
}

type LoginInput struct {
	Role     domain.Role `json:"-"`
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password"`
}

// LoginResult returns a fresh session token and the id of the logged-in user
// under the role's key.
type LoginResult struct {
	SessionID string `json:"session_id"`
	SellerID  int64  `json:"seller_id,omitempty"`
	BuyerID   int64  `json:"buyer_id,omitempty"`
}

// LogoutInput and the other session-keyed inputs accept the token from the
// payload or, when absent there, from the request envelope.
type LogoutInput struct {
	SessionID string `json:"session_id,omitempty"`
}

type LogoutResult struct {
	LoggedOut bool `json:"logged_out"`
}

type ValidateSessionInput struct {
	SessionID string `json:"session_id" validate:"required"`
}

// SessionInfo describes a session that passed validation.
type SessionInfo struct {
	Valid            bool        `json:"valid"`
	UserType         domain.Role `json:"user_type"`
	UserID           int64       `json:"user_id"`
	ExpiresInSeconds int64       `json:"expires_in_seconds"`
}

// SellerRatingInput selects a seller either directly or through a seller
// session. SellerID wins when both are present.
type SellerRatingInput struct {
	SellerID  *int64 `json:"seller_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type SellerRating struct {
	SellerID   int64 `json:"seller_id"`
	ThumbsUp   int   `json:"thumbs_up"`
	ThumbsDown int   `json:"thumbs_down"`
}

type SellerFeedbackInput struct {
	SellerID int64       `json:"seller_id"`
	Vote     domain.Vote `json:"vote"`
}

type BuyerPurchasesInput struct {
	SessionID string `json:"session_id,omitempty"`
}

// BuyerPurchases is always empty: there is no purchase flow.
type BuyerPurchases struct {
	Purchases []any  `json:"purchases"`
	Note      string `json:"note,omitempty"`
}

// CustomerService is the account and session store contract. The store
// implements it in process; rpcclient implements it over the wire for the
// frontends.
type CustomerService interface {
	CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountCreated, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, in LogoutInput) (*LogoutResult, error)
	ValidateAndTouchSession(ctx context.Context, in ValidateSessionInput) (*SessionInfo, error)
	GetSellerRating(ctx context.Context, in SellerRatingInput) (*SellerRating, error)
	UpdateSellerFeedback(ctx context.Context, in SellerFeedbackInput) (*SellerRating, error)
	GetBuyerPurchases(ctx context.Context, in BuyerPurchasesInput) (*BuyerPurchases, error)
}
