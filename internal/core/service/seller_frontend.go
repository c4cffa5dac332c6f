package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
)

// SellerFrontend routes seller requests. Like BuyerFrontend it is stateless
// and stamps the seller id from the validated session on every catalog call,
// so the catalog store never sees a client-supplied owner.
type SellerFrontend struct {
	customer ports.CustomerService
	product  ports.ProductService
	log      zerolog.Logger
}

var _ ports.SellerService = (*SellerFrontend)(nil)

func NewSellerFrontend(customer ports.CustomerService, product ports.ProductService, log zerolog.Logger) *SellerFrontend {
	return &SellerFrontend{customer: customer, product: product, log: log}
}

func (f *SellerFrontend) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*ports.AccountCreated, error) {
	in.Role = domain.RoleSeller
	return f.customer.CreateAccount(ctx, in)
}

func (f *SellerFrontend) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	in.Role = domain.RoleSeller
	return f.customer.Login(ctx, in)
}

func (f *SellerFrontend) Logout(ctx context.Context, sessionID string) (*ports.LogoutResult, error) {
	if _, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller); err != nil {
		return nil, err
	}
	return f.customer.Logout(ctx, ports.LogoutInput{SessionID: sessionID})
}

// GetSellerRating returns the caller's own rating.
func (f *SellerFrontend) GetSellerRating(ctx context.Context, sessionID string) (*ports.SellerRating, error) {
	sellerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	return f.customer.GetSellerRating(ctx, ports.SellerRatingInput{SellerID: &sellerID})
}

func (f *SellerFrontend) RegisterItemForSale(ctx context.Context, sessionID string, in ports.RegisterItemInput) (*ports.ItemRegistered, error) {
	sellerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	in.SellerID = sellerID
	out, err := f.product.RegisterItemForSale(ctx, in)
	if err != nil {
		return nil, err
	}
	f.log.Debug().Int64("seller_id", sellerID).Str("item_id", out.ItemID.String()).Msg("item registered")
	return out, nil
}

func (f *SellerFrontend) ChangeItemPrice(ctx context.Context, sessionID string, in ports.ChangePriceInput) (*ports.PriceChanged, error) {
	sellerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	in.SellerID = sellerID
	return f.product.ChangeItemPrice(ctx, in)
}

func (f *SellerFrontend) UpdateUnitsForSale(ctx context.Context, sessionID string, in ports.UpdateUnitsInput) (*ports.UnitsUpdated, error) {
	sellerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	in.SellerID = sellerID
	return f.product.UpdateUnitsForSale(ctx, in)
}

func (f *SellerFrontend) DisplayItemsForSale(ctx context.Context, sessionID string) (*ports.ItemList, error) {
	sellerID, err := authenticate(ctx, f.customer, sessionID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	return f.product.DisplayItemsForSale(ctx, ports.SellerItemsInput{SellerID: sellerID})
}
