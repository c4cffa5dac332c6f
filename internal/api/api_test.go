package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/core/ports/mocks"
	"github.com/99minutos/marketplace-system/internal/core/service"
	"github.com/99minutos/marketplace-system/internal/infrastructure/db/file"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

func call(t *testing.T, h protocol.Handler, req *protocol.Request) *protocol.Response {
	t.Helper()
	if req.RequestID == "" {
		req.RequestID = "req-1"
	}
	resp := h.Handle(context.Background(), req)
	require.Equal(t, req.RequestID, resp.RequestID)
	require.Equal(t, protocol.Version, resp.V)
	if resp.OK {
		require.Nil(t, resp.Error)
	} else {
		require.NotNil(t, resp.Error)
		require.Empty(t, resp.Data)
	}
	return resp
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestResolveError(t *testing.T) {
	upstream := &protocol.Error{Code: protocol.CodeUnauthorized, Message: "Invalid session."}
	tests := []struct {
		name string
		err  error
		code string
		msg  string
	}{
		{"upstream verbatim", upstream, protocol.CodeUnauthorized, "Invalid session."},
		{"invalid session", domain.ErrInvalidSession, protocol.CodeUnauthorized, "Invalid session."},
		{"wrong role", &domain.WrongSessionRoleError{Want: domain.RoleSeller}, protocol.CodeUnauthorized, "Session is not a seller session."},
		{"wrapped sentinel", fmt.Errorf("seller_name %w", domain.ErrNameTooLong), protocol.CodeBadRequest, "seller_name exceeds 32 characters"},
		{"not owner", domain.ErrNotItemOwner, protocol.CodeBadRequest, "forbidden: not item owner"},
		{"unknown", fmt.Errorf("persist snapshot: %w", &fs.PathError{Op: "rename", Path: "/x", Err: fs.ErrPermission}),
			protocol.CodeInternal, "Internal error: *errors.errorString: permission denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveError(tt.err, zerolog.Nop(), &protocol.Request{API: protocol.APILogin})
			require.Equal(t, tt.code, got.Code)
			require.Equal(t, tt.msg, got.Message)
		})
	}
}

func TestResolveError_SessionExpiredCarriesOwner(t *testing.T) {
	err := &domain.SessionExpiredError{UserType: domain.RoleBuyer, UserID: 7, Timeout: "5 minutes"}

	got := ResolveError(err, zerolog.Nop(), &protocol.Request{})
	require.Equal(t, protocol.CodeSessionExpired, got.Code)
	require.Equal(t, "Session expired after 5 minutes of inactivity.", got.Message)
	require.Equal(t, map[string]any{"user_type": "buyer", "user_id": int64(7)}, got.Data)
}

func TestResolveError_UpstreamIsSameValue(t *testing.T) {
	upstream := &protocol.Error{Code: protocol.CodeSessionExpired, Message: "m", Data: map[string]any{"user_id": 1.0}}
	require.Same(t, upstream, ResolveError(upstream, zerolog.Nop(), &protocol.Request{}))
}

func TestCustomerHandler_UnknownAPI(t *testing.T) {
	h := NewCustomerHandler(mocks.NewMockCustomerService(gomock.NewController(t)), zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: "DropTables"})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
	require.Equal(t, "Unknown API: DropTables", resp.Error.Message)
}

func TestCustomerHandler_RoleRequired(t *testing.T) {
	h := NewCustomerHandler(mocks.NewMockCustomerService(gomock.NewController(t)), zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APILogin, Payload: payload(t, map[string]string{"username": "u", "password": "p"})})
	require.False(t, resp.OK)
	require.Equal(t, "role must be buyer or seller", resp.Error.Message)
}

func TestCustomerHandler_RoleFromEnvelope(t *testing.T) {
	svc := mocks.NewMockCustomerService(gomock.NewController(t))
	svc.EXPECT().
		Login(gomock.Any(), ports.LoginInput{Role: domain.RoleSeller, Username: "u", Password: "p"}).
		Return(&ports.LoginResult{SessionID: "sess_x", SellerID: 4}, nil)
	h := NewCustomerHandler(svc, zerolog.Nop())

	resp := call(t, h, &protocol.Request{
		API:     protocol.APILogin,
		Role:    protocol.RoleSeller,
		Payload: payload(t, map[string]string{"username": "u", "password": "p"}),
	})
	require.True(t, resp.OK)
	require.JSONEq(t, `{"session_id":"sess_x","seller_id":4}`, string(resp.Data))
}

func TestCustomerHandler_ValidationUsesJSONNames(t *testing.T) {
	h := NewCustomerHandler(mocks.NewMockCustomerService(gomock.NewController(t)), zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APICreateAccount, Role: protocol.RoleBuyer, Payload: payload(t, map[string]string{"password": "p"})})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
	require.Equal(t, "username required", resp.Error.Message)
}

func TestCustomerHandler_MalformedPayload(t *testing.T) {
	h := NewCustomerHandler(mocks.NewMockCustomerService(gomock.NewController(t)), zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APIValidateAndTouchSession, Payload: json.RawMessage(`"nope"`)})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
	require.Contains(t, resp.Error.Message, "invalid payload")
}

func TestCustomerHandler_LogoutFallsBackToEnvelope(t *testing.T) {
	svc := mocks.NewMockCustomerService(gomock.NewController(t))
	svc.EXPECT().Logout(gomock.Any(), ports.LogoutInput{SessionID: "sess_env"}).Return(&ports.LogoutResult{LoggedOut: true}, nil)
	h := NewCustomerHandler(svc, zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APILogout, SessionID: "sess_env"})
	require.True(t, resp.OK)
	require.JSONEq(t, `{"logged_out":true}`, string(resp.Data))

	resp = call(t, h, &protocol.Request{API: protocol.APILogout})
	require.False(t, resp.OK)
	require.Equal(t, "session_id required", resp.Error.Message)
}

func TestCustomerHandler_ExpiredSession(t *testing.T) {
	svc := mocks.NewMockCustomerService(gomock.NewController(t))
	svc.EXPECT().
		ValidateAndTouchSession(gomock.Any(), ports.ValidateSessionInput{SessionID: "sess_old"}).
		Return(nil, &domain.SessionExpiredError{UserType: domain.RoleBuyer, UserID: 2, Timeout: "5 minutes"})
	h := NewCustomerHandler(svc, zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APIValidateAndTouchSession, Payload: payload(t, map[string]string{"session_id": "sess_old"})})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeSessionExpired, resp.Error.Code)
	require.Equal(t, "buyer", resp.Error.Data["user_type"])
}

func TestCustomerHandler_InternalError(t *testing.T) {
	svc := mocks.NewMockCustomerService(gomock.NewController(t))
	svc.EXPECT().UpdateSellerFeedback(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk on fire"))
	h := NewCustomerHandler(svc, zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APIUpdateSellerFeedback, Payload: payload(t, map[string]any{"seller_id": 1, "vote": "up"})})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeInternal, resp.Error.Code)
	require.Equal(t, "Internal error: *errors.errorString: disk on fire", resp.Error.Message)
}

func TestBuyerHandler_SessionGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	customer := mocks.NewMockCustomerService(ctrl)
	product := mocks.NewMockProductService(ctrl)
	h := NewBuyerHandler(service.NewBuyerFrontend(customer, product, zerolog.Nop()), zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APIDisplayCart})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
	require.Equal(t, "session_id required", resp.Error.Message)

	resp = call(t, h, &protocol.Request{API: "Checkout"})
	require.Equal(t, "Unknown API: Checkout", resp.Error.Message)
}

func TestBuyerHandler_PayloadSessionAndBuyerInjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	customer := mocks.NewMockCustomerService(ctrl)
	product := mocks.NewMockProductService(ctrl)
	h := NewBuyerHandler(service.NewBuyerFrontend(customer, product, zerolog.Nop()), zerolog.Nop())

	customer.EXPECT().
		ValidateAndTouchSession(gomock.Any(), ports.ValidateSessionInput{SessionID: "sess_p"}).
		Return(&ports.SessionInfo{Valid: true, UserType: domain.RoleBuyer, UserID: 11}, nil)
	product.EXPECT().
		AddItemToCart(gomock.Any(), ports.CartChangeInput{BuyerID: 11, ItemID: &domain.ItemKey{Category: 2, ID: 1}, Quantity: 3}).
		Return(&ports.CartAdded{Added: true, CartSize: 1}, nil)

	resp := call(t, h, &protocol.Request{
		API:     protocol.APIAddItemToCart,
		Payload: json.RawMessage(`{"session_id":"sess_p","buyer_id":999,"item_id":"2:1","quantity":3}`),
	})
	require.True(t, resp.OK)
	require.JSONEq(t, `{"added":true,"cart_size":1}`, string(resp.Data))
}

func TestBuyerHandler_MakePurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	customer := mocks.NewMockCustomerService(ctrl)
	h := NewBuyerHandler(service.NewBuyerFrontend(customer, mocks.NewMockProductService(ctrl), zerolog.Nop()), zerolog.Nop())

	customer.EXPECT().
		ValidateAndTouchSession(gomock.Any(), gomock.Any()).
		Return(&ports.SessionInfo{Valid: true, UserType: domain.RoleBuyer, UserID: 1}, nil)

	resp := call(t, h, &protocol.Request{API: protocol.APIMakePurchase, SessionID: "sess_1"})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
	require.Equal(t, domain.ErrPurchaseUnsupported.Error(), resp.Error.Message)
}

func TestSellerHandler_WrongRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	customer := mocks.NewMockCustomerService(ctrl)
	h := NewSellerHandler(service.NewSellerFrontend(customer, mocks.NewMockProductService(ctrl), zerolog.Nop()), zerolog.Nop())

	customer.EXPECT().
		ValidateAndTouchSession(gomock.Any(), gomock.Any()).
		Return(&ports.SessionInfo{Valid: true, UserType: domain.RoleBuyer, UserID: 1}, nil)

	resp := call(t, h, &protocol.Request{API: protocol.APIDisplayItemsForSale, SessionID: "sess_b"})
	require.False(t, resp.OK)
	require.Equal(t, protocol.CodeUnauthorized, resp.Error.Code)
	require.Equal(t, "Session is not a seller session.", resp.Error.Message)
}

func TestHandlers_CoverAPISets(t *testing.T) {
	ctrl := gomock.NewController(t)
	customer := mocks.NewMockCustomerService(ctrl)
	product := mocks.NewMockProductService(ctrl)

	require.NotPanics(t, func() {
		NewCustomerHandler(customer, zerolog.Nop())
		NewProductHandler(product, zerolog.Nop())
		NewBuyerHandler(service.NewBuyerFrontend(customer, product, zerolog.Nop()), zerolog.Nop())
		NewSellerHandler(service.NewSellerFrontend(customer, product, zerolog.Nop()), zerolog.Nop())
	})
}

func TestProductHandler_MissingRequiredFields(t *testing.T) {
	ctx := context.Background()
	store, err := service.NewProductStore(ctx, file.NewSnapshotStore(filepath.Join(t.TempDir(), "product.json")), zerolog.Nop())
	require.NoError(t, err)
	h := NewProductHandler(store, zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APIRegisterItemForSale, Payload: payload(t, map[string]any{
		"seller_id": 1, "item_name": "widget", "item_category": 1, "condition": "New", "sale_price": 10, "quantity": 5,
	})})
	require.True(t, resp.OK, "%+v", resp.Error)
	item := map[string]any{"category": 1, "id": 1}

	tests := []struct {
		name    string
		api     protocol.API
		payload map[string]any
		msg     string
	}{
		{"register without category", protocol.APIRegisterItemForSale,
			map[string]any{"seller_id": 1, "item_name": "w", "condition": "New", "sale_price": 1, "quantity": 1}, "item_category required"},
		{"register without price", protocol.APIRegisterItemForSale,
			map[string]any{"seller_id": 1, "item_name": "w", "item_category": 1, "condition": "New", "quantity": 1}, "sale_price required"},
		{"register without quantity", protocol.APIRegisterItemForSale,
			map[string]any{"seller_id": 1, "item_name": "w", "item_category": 1, "condition": "New", "sale_price": 1}, "quantity required"},
		{"register without name", protocol.APIRegisterItemForSale,
			map[string]any{"seller_id": 1, "item_category": 1, "condition": "New", "sale_price": 1, "quantity": 1}, "item_name required"},
		{"register without condition", protocol.APIRegisterItemForSale,
			map[string]any{"seller_id": 1, "item_name": "w", "item_category": 1, "sale_price": 1, "quantity": 1}, "condition required"},
		{"price without new_price", protocol.APIChangeItemPrice,
			map[string]any{"seller_id": 1, "item_id": item}, "new_price required"},
		{"price without item", protocol.APIChangeItemPrice,
			map[string]any{"seller_id": 1, "new_price": 2}, "item_id required"},
		{"units without remove_quantity", protocol.APIUpdateUnitsForSale,
			map[string]any{"seller_id": 1, "item_id": item}, "remove_quantity required"},
		{"search without category", protocol.APISearchItemsForSale,
			map[string]any{"keywords": []string{"a"}}, "item_category required"},
		{"search with six keywords", protocol.APISearchItemsForSale,
			map[string]any{"item_category": 1, "keywords": []string{"a", "b", "c", "d", "e", "f"}}, "keywords must be at most 5"},
		{"get without item", protocol.APIGetItem, map[string]any{}, "item_id required"},
		{"add without quantity", protocol.APIAddItemToCart,
			map[string]any{"buyer_id": 2, "item_id": item}, "quantity must be > 0"},
		{"feedback without vote", protocol.APIProvideFeedback,
			map[string]any{"item_id": item}, "vote must be up or down"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(t, h, &protocol.Request{API: tc.api, Payload: payload(t, tc.payload)})
			require.False(t, resp.OK)
			require.Equal(t, protocol.CodeBadRequest, resp.Error.Code)
			require.Equal(t, tc.msg, resp.Error.Message)
		})
	}

	resp = call(t, h, &protocol.Request{API: protocol.APIGetItem, Payload: payload(t, map[string]any{"item_id": item})})
	require.True(t, resp.OK)
	var got ports.ItemView
	require.NoError(t, resp.DecodeData(&got))
	require.Equal(t, 10.0, got.SalePrice)
	require.Equal(t, 5, got.Quantity)
	require.Equal(t, []string{}, got.Keywords)
	require.Equal(t, domain.Feedback{}, got.Feedback)

	// Rejected listings consumed no id: category 1 hands out 2 next and
	// category 0 never came into existence.
	resp = call(t, h, &protocol.Request{API: protocol.APIRegisterItemForSale, Payload: payload(t, map[string]any{
		"seller_id": 1, "item_name": "second", "item_category": 1, "condition": "Used", "sale_price": 0, "quantity": 0,
	})})
	require.True(t, resp.OK, "%+v", resp.Error)
	require.JSONEq(t, `{"item_id":{"category":1,"id":2}}`, string(resp.Data))

	resp = call(t, h, &protocol.Request{API: protocol.APISearchItemsForSale, Payload: payload(t, map[string]any{"item_category": 0})})
	require.True(t, resp.OK)
	var found ports.SearchResult
	require.NoError(t, resp.DecodeData(&found))
	require.Empty(t, found.Items)
}

func TestCustomerHandler_EmptyPasswordAccepted(t *testing.T) {
	ctx := context.Background()
	store, err := service.NewCustomerStore(ctx, file.NewSnapshotStore(filepath.Join(t.TempDir(), "customer.json")), 0, zerolog.Nop())
	require.NoError(t, err)
	h := NewCustomerHandler(store, zerolog.Nop())

	resp := call(t, h, &protocol.Request{API: protocol.APICreateAccount, Role: protocol.RoleBuyer,
		Payload: payload(t, map[string]string{"buyer_name": "B", "username": "nopass", "password": ""})})
	require.True(t, resp.OK, "%+v", resp.Error)

	resp = call(t, h, &protocol.Request{API: protocol.APILogin, Role: protocol.RoleBuyer,
		Payload: payload(t, map[string]string{"username": "nopass"})})
	require.True(t, resp.OK, "%+v", resp.Error)

	resp = call(t, h, &protocol.Request{API: protocol.APILogin, Role: protocol.RoleBuyer,
		Payload: payload(t, map[string]string{"username": "nopass", "password": "x"})})
	require.False(t, resp.OK)
	require.Equal(t, domain.ErrInvalidPassword.Error(), resp.Error.Message)
}
