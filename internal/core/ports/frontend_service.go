package ports

import (
	"context"
)

// PurchaseInput is accepted for wire compatibility only.
type PurchaseInput struct{}

// BuyerService is the buyer-facing API. Every method except CreateAccount and
// Login authenticates sessionID against the account store first.
type BuyerService interface {
	CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountCreated, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) (*LogoutResult, error)
	SearchItemsForSale(ctx context.Context, sessionID string, in SearchInput) (*SearchResult, error)
	GetItem(ctx context.Context, sessionID string, in GetItemInput) (*ItemView, error)
	AddItemToCart(ctx context.Context, sessionID string, in CartChangeInput) (*CartAdded, error)
	RemoveItemFromCart(ctx context.Context, sessionID string, in CartChangeInput) (*CartRemoved, error)
	SaveCart(ctx context.Context, sessionID string) (*CartSaved, error)
	ClearCart(ctx context.Context, sessionID string) (*CartCleared, error)
	DisplayCart(ctx context.Context, sessionID string) (*CartView, error)
	ProvideFeedback(ctx context.Context, sessionID string, in ItemFeedbackInput) (*ItemFeedback, error)
	GetSellerRating(ctx context.Context, sessionID string, in SellerRatingInput) (*SellerRating, error)
	GetBuyerPurchases(ctx context.Context, sessionID string) (*BuyerPurchases, error)
	MakePurchase(ctx context.Context, sessionID string, in PurchaseInput) error
}

// SellerService is the seller-facing API.
type SellerService interface {
	CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountCreated, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) (*LogoutResult, error)
	GetSellerRating(ctx context.Context, sessionID string) (*SellerRating, error)
	RegisterItemForSale(ctx context.Context, sessionID string, in RegisterItemInput) (*ItemRegistered, error)
	ChangeItemPrice(ctx context.Context, sessionID string, in ChangePriceInput) (*PriceChanged, error)
	UpdateUnitsForSale(ctx context.Context, sessionID string, in UpdateUnitsInput) (*UnitsUpdated, error)
	DisplayItemsForSale(ctx context.Context, sessionID string) (*ItemList, error)
}
