package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// authenticate validates and refreshes sessionID against the account store
// and returns the owning user id. Store failures come back unchanged; a live
// session of the other role is rejected.
func authenticate(ctx context.Context, customer ports.CustomerService, sessionID string, want domain.Role) (int64, error) {
	if sessionID == "" {
		return 0, domain.ErrSessionRequired
	}
	info, err := customer.ValidateAndTouchSession(ctx, ports.ValidateSessionInput{SessionID: sessionID})
	if err != nil {
		return 0, err
	}
	if info.UserType != want {
		return 0, &domain.WrongSessionRoleError{Want: want}
	}
	return info.UserID, nil
}

// BuyerFrontend routes buyer requests to the two stores. It keeps no state:
// each authenticated call re-validates the session and injects the buyer id
// resolved from it.
type BuyerFrontend struct {
	customer ports.CustomerService
	product  ports.ProductService
	log      zerolog.Logger
}

var _ ports.BuyerService = (*BuyerFrontend)(nil)

func NewBuyerFrontend(customer ports.CustomerService, product ports.ProductService, log zerolog.Logger) *BuyerFrontend {
	return &BuyerFrontend{customer: customer, product: product, log: log}
}

func (f *BuyerFrontend) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*ports.AccountCreated, error) {
	in.Role = domain.RoleBuyer
	return f.customer.CreateAccount(ctx, in)
}

func (f *BuyerFrontend) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	in.Role = domain.RoleBuyer
	return f.customer.Login(ctx, in)
}

// Logout ends the session and then, whatever the outcome, asks the catalog
// store to drop the buyer's unsaved cart.
func (f *BuyerFrontend) Logout(ctx context.Context, sessionID string) (*ports.LogoutResult, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}

	out, logoutErr := f.customer.Logout(ctx, ports.LogoutInput{SessionID: sessionID})
	if _, err := f.product.LogoutCleanup(ctx, ports.BuyerInput{BuyerID: buyerID}); err != nil {
		f.log.Warn().Err(err).Int64("buyer_id", buyerID).Msg("logout cart cleanup failed")
	}
	if logoutErr != nil {
		return nil, logoutErr
	}
	return out, nil
}

func (f *BuyerFrontend) SearchItemsForSale(ctx context.Context, sessionID string, in ports.SearchInput) (*ports.SearchResult, error) {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return f.product.SearchItemsForSale(ctx, in)
}

func (f *BuyerFrontend) GetItem(ctx context.Context, sessionID string, in ports.GetItemInput) (*ports.ItemView, error) {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return f.product.GetItem(ctx, in)
}

func (f *BuyerFrontend) AddItemToCart(ctx context.Context, sessionID string, in ports.CartChangeInput) (*ports.CartAdded, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}
	in.BuyerID = buyerID
	return f.product.AddItemToCart(ctx, in)
}

func (f *BuyerFrontend) RemoveItemFromCart(ctx context.Context, sessionID string, in ports.CartChangeInput) (*ports.CartRemoved, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}
	in.BuyerID = buyerID
	return f.product.RemoveItemFromCart(ctx, in)
}

func (f *BuyerFrontend) SaveCart(ctx context.Context, sessionID string) (*ports.CartSaved, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}
	return f.product.SaveCart(ctx, ports.BuyerInput{BuyerID: buyerID})
}

func (f *BuyerFrontend) ClearCart(ctx context.Context, sessionID string) (*ports.CartCleared, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}
	return f.product.ClearCart(ctx, ports.BuyerInput{BuyerID: buyerID})
}

func (f *BuyerFrontend) DisplayCart(ctx context.Context, sessionID string) (*ports.CartView, error) {
	buyerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer)
	if err != nil {
		return nil, err
	}
	return f.product.DisplayCart(ctx, ports.BuyerInput{BuyerID: buyerID})
}

// ProvideFeedback votes on the item, then applies the same vote to the
// item's seller. The two writes are not atomic: if the second fails the item
// vote stands and the result says SellerRatingUpdated=false.
func (f *BuyerFrontend) ProvideFeedback(ctx context.Context, sessionID string, in ports.ItemFeedbackInput) (*ports.ItemFeedback, error) {
	if !in.Vote.Valid() {
		return nil, domain.ErrInvalidVote
	}
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}

	out, err := f.product.ProvideFeedback(ctx, in)
	if err != nil {
		return nil, err
	}

	propagated := true
	if _, err := f.customer.UpdateSellerFeedback(ctx, ports.SellerFeedbackInput{SellerID: out.SellerID, Vote: in.Vote}); err != nil {
		propagated = false
		f.log.Warn().
			Err(err).
			Str("item_id", in.ItemID.String()).
			Int64("seller_id", out.SellerID).
			Str("vote", string(in.Vote)).
			Msg("item vote recorded but seller rating not updated")
	}
	out.SellerRatingUpdated = &propagated
	return out, nil
}

// GetSellerRating looks up any seller by explicit id.
func (f *BuyerFrontend) GetSellerRating(ctx context.Context, sessionID string, in ports.SellerRatingInput) (*ports.SellerRating, error) {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}
	if in.SellerID == nil {
		return nil, domain.ErrSellerIDRequired
	}
	return f.customer.GetSellerRating(ctx, ports.SellerRatingInput{SellerID: in.SellerID})
}

func (f *BuyerFrontend) GetBuyerPurchases(ctx context.Context, sessionID string) (*ports.BuyerPurchases, error) {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return nil, err
	}
	return f.customer.GetBuyerPurchases(ctx, ports.BuyerPurchasesInput{SessionID: sessionID})
}

// MakePurchase always fails once the session checks out: there is no
// purchase flow.
func (f *BuyerFrontend) MakePurchase(ctx context.Context, sessionID string, _ ports.PurchaseInput) error {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleBuyer); err != nil {
		return err
	}
	return domain.ErrPurchaseUnsupported
}
