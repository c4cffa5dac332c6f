package handler

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/api/metrics"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

type noPayload struct{}

// RegisterBuyer wires the buyer-facing API. The session token is read from
// the envelope; the Session middleware lifts a payload token there first.
func RegisterBuyer(r *Router, svc ports.BuyerService) {
	Handle(r, protocol.APICreateAccount, func(ctx context.Context, _ Envelope, in ports.CreateAccountInput) (any, error) {
		return svc.CreateAccount(ctx, in)
	})
	Handle(r, protocol.APILogin, func(ctx context.Context, _ Envelope, in ports.LoginInput) (any, error) {
		return svc.Login(ctx, in)
	})
	Handle(r, protocol.APILogout, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.Logout(ctx, env.SessionID)
	})
	Handle(r, protocol.APISearchItemsForSale, func(ctx context.Context, env Envelope, in ports.SearchInput) (any, error) {
		return svc.SearchItemsForSale(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIGetItem, func(ctx context.Context, env Envelope, in ports.GetItemInput) (any, error) {
		return svc.GetItem(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIAddItemToCart, func(ctx context.Context, env Envelope, in ports.CartChangeInput) (any, error) {
		return svc.AddItemToCart(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIRemoveItemFromCart, func(ctx context.Context, env Envelope, in ports.CartChangeInput) (any, error) {
		return svc.RemoveItemFromCart(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APISaveCart, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.SaveCart(ctx, env.SessionID)
	})
	Handle(r, protocol.APIClearCart, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.ClearCart(ctx, env.SessionID)
	})
	Handle(r, protocol.APIDisplayCart, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.DisplayCart(ctx, env.SessionID)
	})
	Handle(r, protocol.APIProvideFeedback, func(ctx context.Context, env Envelope, in ports.ItemFeedbackInput) (any, error) {
		out, err := svc.ProvideFeedback(ctx, env.SessionID, in)
		if err != nil {
			return nil, err
		}
		if out.SellerRatingUpdated != nil && !*out.SellerRatingUpdated {
			metrics.FeedbackPropagationFailuresTotal.Inc()
		}
		return out, nil
	})
	Handle(r, protocol.APIGetSellerRating, func(ctx context.Context, env Envelope, in ports.SellerRatingInput) (any, error) {
		return svc.GetSellerRating(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIGetBuyerPurchases, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.GetBuyerPurchases(ctx, env.SessionID)
	})
	Handle(r, protocol.APIMakePurchase, func(ctx context.Context, env Envelope, in ports.PurchaseInput) (any, error) {
		return nil, svc.MakePurchase(ctx, env.SessionID, in)
	})
}

// RegisterSeller wires the seller-facing API.
func RegisterSeller(r *Router, svc ports.SellerService) {
	Handle(r, protocol.APICreateAccount, func(ctx context.Context, _ Envelope, in ports.CreateAccountInput) (any, error) {
		return svc.CreateAccount(ctx, in)
	})
	Handle(r, protocol.APILogin, func(ctx context.Context, _ Envelope, in ports.LoginInput) (any, error) {
		return svc.Login(ctx, in)
	})
	Handle(r, protocol.APILogout, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.Logout(ctx, env.SessionID)
	})
	Handle(r, protocol.APIGetSellerRating, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.GetSellerRating(ctx, env.SessionID)
	})
	Handle(r, protocol.APIRegisterItemForSale, func(ctx context.Context, env Envelope, in ports.RegisterItemInput) (any, error) {
		return svc.RegisterItemForSale(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIChangeItemPrice, func(ctx context.Context, env Envelope, in ports.ChangePriceInput) (any, error) {
		return svc.ChangeItemPrice(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIUpdateUnitsForSale, func(ctx context.Context, env Envelope, in ports.UpdateUnitsInput) (any, error) {
		return svc.UpdateUnitsForSale(ctx, env.SessionID, in)
	})
	Handle(r, protocol.APIDisplayItemsForSale, func(ctx context.Context, env Envelope, _ noPayload) (any, error) {
		return svc.DisplayItemsForSale(ctx, env.SessionID)
	})
}
