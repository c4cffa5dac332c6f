package handler

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// RegisterProduct wires the catalog/cart store API. The store trusts the
// seller and buyer ids in the payload; only frontends call it.
func RegisterProduct(r *Router, svc ports.ProductService) {
	Handle(r, protocol.APIRegisterItemForSale, func(ctx context.Context, _ Envelope, in ports.RegisterItemInput) (any, error) {
		return svc.RegisterItemForSale(ctx, in)
	})
	Handle(r, protocol.APIChangeItemPrice, func(ctx context.Context, _ Envelope, in ports.ChangePriceInput) (any, error) {
		return svc.ChangeItemPrice(ctx, in)
	})
	Handle(r, protocol.APIUpdateUnitsForSale, func(ctx context.Context, _ Envelope, in ports.UpdateUnitsInput) (any, error) {
		return svc.UpdateUnitsForSale(ctx, in)
	})
	Handle(r, protocol.APIDisplayItemsForSale, func(ctx context.Context, _ Envelope, in ports.SellerItemsInput) (any, error) {
		return svc.DisplayItemsForSale(ctx, in)
	})
	Handle(r, protocol.APISearchItemsForSale, func(ctx context.Context, _ Envelope, in ports.SearchInput) (any, error) {
		return svc.SearchItemsForSale(ctx, in)
	})
	Handle(r, protocol.APIGetItem, func(ctx context.Context, _ Envelope, in ports.GetItemInput) (any, error) {
		return svc.GetItem(ctx, in)
	})
	Handle(r, protocol.APIAddItemToCart, func(ctx context.Context, _ Envelope, in ports.CartChangeInput) (any, error) {
		return svc.AddItemToCart(ctx, in)
	})
	Handle(r, protocol.APIRemoveItemFromCart, func(ctx context.Context, _ Envelope, in ports.CartChangeInput) (any, error) {
		return svc.RemoveItemFromCart(ctx, in)
	})
	Handle(r, protocol.APISaveCart, func(ctx context.Context, _ Envelope, in ports.BuyerInput) (any, error) {
		return svc.SaveCart(ctx, in)
	})
	Handle(r, protocol.APIClearCart, func(ctx context.Context, _ Envelope, in ports.BuyerInput) (any, error) {
		return svc.ClearCart(ctx, in)
	})
	Handle(r, protocol.APIDisplayCart, func(ctx context.Context, _ Envelope, in ports.BuyerInput) (any, error) {
		return svc.DisplayCart(ctx, in)
	})
	Handle(r, protocol.APIProvideFeedback, func(ctx context.Context, _ Envelope, in ports.ItemFeedbackInput) (any, error) {
		return svc.ProvideFeedback(ctx, in)
	})
	Handle(r, protocol.APILogoutCleanup, func(ctx context.Context, _ Envelope, in ports.BuyerInput) (any, error) {
		return svc.LogoutCleanup(ctx, in)
	})
}
