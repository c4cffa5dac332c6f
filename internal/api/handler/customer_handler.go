package handler

import (
	"context"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// RegisterCustomer wires the account/session store API.
func RegisterCustomer(r *Router, svc ports.CustomerService) {
	Handle(r, protocol.APICreateAccount, func(ctx context.Context, env Envelope, in ports.CreateAccountInput) (any, error) {
		in.Role = domain.Role(env.Role)
		return svc.CreateAccount(ctx, in)
	})
	Handle(r, protocol.APILogin, func(ctx context.Context, env Envelope, in ports.LoginInput) (any, error) {
		in.Role = domain.Role(env.Role)
		return svc.Login(ctx, in)
	})
	Handle(r, protocol.APILogout, func(ctx context.Context, env Envelope, in ports.LogoutInput) (any, error) {
		if in.SessionID == "" {
			in.SessionID = env.SessionID
		}
		if in.SessionID == "" {
			return nil, domain.ErrSessionRequired
		}
		return svc.Logout(ctx, in)
	})
	Handle(r, protocol.APIValidateAndTouchSession, func(ctx context.Context, _ Envelope, in ports.ValidateSessionInput) (any, error) {
		return svc.ValidateAndTouchSession(ctx, in)
	})
	Handle(r, protocol.APIGetSellerRating, func(ctx context.Context, env Envelope, in ports.SellerRatingInput) (any, error) {
		if in.SellerID == nil && in.SessionID == "" {
			in.SessionID = env.SessionID
		}
		return svc.GetSellerRating(ctx, in)
	})
	Handle(r, protocol.APIUpdateSellerFeedback, func(ctx context.Context, _ Envelope, in ports.SellerFeedbackInput) (any, error) {
		return svc.UpdateSellerFeedback(ctx, in)
	})
	Handle(r, protocol.APIGetBuyerPurchases, func(ctx context.Context, env Envelope, in ports.BuyerPurchasesInput) (any, error) {
		if in.SessionID == "" {
			in.SessionID = env.SessionID
		}
		return svc.GetBuyerPurchases(ctx, in)
	})
}
