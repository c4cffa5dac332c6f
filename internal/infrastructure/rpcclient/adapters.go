package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// invoke sends in to api and decodes a success body into Out. A failure
// response is returned as its *protocol.Error so callers can hand it on
// unchanged.
func invoke[Out any](ctx context.Context, c Caller, service string, api protocol.API, role string, in any) (*Out, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: encode %s payload: %w", api, err)
	}

	resp, err := c.Call(ctx, &protocol.Request{Service: service, API: api, Role: role, Payload: payload})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		if resp.Error == nil {
			return nil, &protocol.Error{Code: protocol.CodeInternal, Message: "Internal error: failure response without error"}
		}
		return nil, resp.Error
	}

	var out Out
	if err := resp.DecodeData(&out); err != nil {
		return nil, fmt.Errorf("rpcclient: decode %s response: %w", api, err)
	}
	return &out, nil
}

// CustomerClient implements ports.CustomerService against a remote
// account/session store.
type CustomerClient struct {
	c Caller
}

var _ ports.CustomerService = (*CustomerClient)(nil)

func NewCustomerClient(c Caller) *CustomerClient {
	return &CustomerClient{c: c}
}

func (cc *CustomerClient) CreateAccount(ctx context.Context, in ports.CreateAccountInput) (*ports.AccountCreated, error) {
	return invoke[ports.AccountCreated](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APICreateAccount, string(in.Role), in)
}

func (cc *CustomerClient) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return invoke[ports.LoginResult](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APILogin, string(in.Role), in)
}

func (cc *CustomerClient) Logout(ctx context.Context, in ports.LogoutInput) (*ports.LogoutResult, error) {
	return invoke[ports.LogoutResult](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APILogout, "", in)
}

func (cc *CustomerClient) ValidateAndTouchSession(ctx context.Context, in ports.ValidateSessionInput) (*ports.SessionInfo, error) {
	return invoke[ports.SessionInfo](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APIValidateAndTouchSession, "", in)
}

func (cc *CustomerClient) GetSellerRating(ctx context.Context, in ports.SellerRatingInput) (*ports.SellerRating, error) {
	return invoke[ports.SellerRating](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APIGetSellerRating, "", in)
}

func (cc *CustomerClient) UpdateSellerFeedback(ctx context.Context, in ports.SellerFeedbackInput) (*ports.SellerRating, error) {
	return invoke[ports.SellerRating](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APIUpdateSellerFeedback, "", in)
}

func (cc *CustomerClient) GetBuyerPurchases(ctx context.Context, in ports.BuyerPurchasesInput) (*ports.BuyerPurchases, error) {
	return invoke[ports.BuyerPurchases](ctx, cc.c, protocol.ServiceCustomerDB, protocol.APIGetBuyerPurchases, "", in)
}

// ProductClient implements ports.ProductService against a remote
// catalog/cart store.
type ProductClient struct {
	c Caller
}

var _ ports.ProductService = (*ProductClient)(nil)

func NewProductClient(c Caller) *ProductClient {
	return &ProductClient{c: c}
}

func productCall[Out any](ctx context.Context, c Caller, api protocol.API, in any) (*Out, error) {
	return invoke[Out](ctx, c, protocol.ServiceProductDB, api, "", in)
}

func (pc *ProductClient) RegisterItemForSale(ctx context.Context, in ports.RegisterItemInput) (*ports.ItemRegistered, error) {
	return productCall[ports.ItemRegistered](ctx, pc.c, protocol.APIRegisterItemForSale, in)
}

func (pc *ProductClient) ChangeItemPrice(ctx context.Context, in ports.ChangePriceInput) (*ports.PriceChanged, error) {
	return productCall[ports.PriceChanged](ctx, pc.c, protocol.APIChangeItemPrice, in)
}

func (pc *ProductClient) UpdateUnitsForSale(ctx context.Context, in ports.UpdateUnitsInput) (*ports.UnitsUpdated, error) {
	return productCall[ports.UnitsUpdated](ctx, pc.c, protocol.APIUpdateUnitsForSale, in)
}

func (pc *ProductClient) DisplayItemsForSale(ctx context.Context, in ports.SellerItemsInput) (*ports.ItemList, error) {
	return productCall[ports.ItemList](ctx, pc.c, protocol.APIDisplayItemsForSale, in)
}

func (pc *ProductClient) SearchItemsForSale(ctx context.Context, in ports.SearchInput) (*ports.SearchResult, error) {
	return productCall[ports.SearchResult](ctx, pc.c, protocol.APISearchItemsForSale, in)
}

func (pc *ProductClient) GetItem(ctx context.Context, in ports.GetItemInput) (*ports.ItemView, error) {
	return productCall[ports.ItemView](ctx, pc.c, protocol.APIGetItem, in)
}

func (pc *ProductClient) AddItemToCart(ctx context.Context, in ports.CartChangeInput) (*ports.CartAdded, error) {
	return productCall[ports.CartAdded](ctx, pc.c, protocol.APIAddItemToCart, in)
}

func (pc *ProductClient) RemoveItemFromCart(ctx context.Context, in ports.CartChangeInput) (*ports.CartRemoved, error) {
	return productCall[ports.CartRemoved](ctx, pc.c, protocol.APIRemoveItemFromCart, in)
}

func (pc *ProductClient) SaveCart(ctx context.Context, in ports.BuyerInput) (*ports.CartSaved, error) {
	return productCall[ports.CartSaved](ctx, pc.c, protocol.APISaveCart, in)
}

func (pc *ProductClient) ClearCart(ctx context.Context, in ports.BuyerInput) (*ports.CartCleared, error) {
	return productCall[ports.CartCleared](ctx, pc.c, protocol.APIClearCart, in)
}

func (pc *ProductClient) DisplayCart(ctx context.Context, in ports.BuyerInput) (*ports.CartView, error) {
	return productCall[ports.CartView](ctx, pc.c, protocol.APIDisplayCart, in)
}

func (pc *ProductClient) ProvideFeedback(ctx context.Context, in ports.ItemFeedbackInput) (*ports.ItemFeedback, error) {
	return productCall[ports.ItemFeedback](ctx, pc.c, protocol.APIProvideFeedback, in)
}

func (pc *ProductClient) LogoutCleanup(ctx context.Context, in ports.BuyerInput) (*ports.CleanupResult, error) {
	return productCall[ports.CleanupResult](ctx, pc.c, protocol.APILogoutCleanup, in)
}
