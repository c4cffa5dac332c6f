package api

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/api/handler"
	"github.com/99minutos/marketplace-system/internal/api/middleware"
	"github.com/99minutos/marketplace-system/internal/core/ports"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

var accountRoles = []string{protocol.RoleBuyer, protocol.RoleSeller}

// NewCustomerHandler builds the account/session store's request handler.
func NewCustomerHandler(svc ports.CustomerService, log zerolog.Logger) protocol.Handler {
	r := handler.NewRouter()
	handler.RegisterCustomer(r, svc)

	return build(r, protocol.ServiceCustomerDB, protocol.CustomerAPIs, log,
		middleware.RequireRole(accountRoles, protocol.APICreateAccount, protocol.APILogin),
	)
}

// NewProductHandler builds the catalog/cart store's request handler.
func NewProductHandler(svc ports.ProductService, log zerolog.Logger) protocol.Handler {
	r := handler.NewRouter()
	handler.RegisterProduct(r, svc)

	return build(r, protocol.ServiceProductDB, protocol.ProductAPIs, log)
}

// NewBuyerHandler builds the buyer frontend's request handler.
func NewBuyerHandler(svc ports.BuyerService, log zerolog.Logger) protocol.Handler {
	r := handler.NewRouter()
	handler.RegisterBuyer(r, svc)

	return build(r, protocol.ServiceBuyerFrontend, protocol.BuyerAPIs, log,
		middleware.Session(sessionAPIs(protocol.BuyerAPIs)...),
	)
}

// NewSellerHandler builds the seller frontend's request handler.
func NewSellerHandler(svc ports.SellerService, log zerolog.Logger) protocol.Handler {
	r := handler.NewRouter()
	handler.RegisterSeller(r, svc)

	return build(r, protocol.ServiceSellerFrontend, protocol.SellerAPIs, log,
		middleware.Session(sessionAPIs(protocol.SellerAPIs)...),
	)
}

// build checks that r serves exactly the service's API set and wraps it in
// the shared middleware stack followed by extra.
func build(r *handler.Router, service string, served []protocol.API, log zerolog.Logger, extra ...middleware.Middleware) protocol.Handler {
	if missing := r.Missing(served); len(missing) > 0 || r.Len() != len(served) {
		panic(fmt.Sprintf("%s: dispatch table does not match API set (missing %v)", service, missing))
	}

	mws := append([]middleware.Middleware{
		middleware.Recover(log),
		middleware.Logger(log),
		middleware.Metrics(service, served),
	}, extra...)

	return middleware.Chain(endpoint(r, log), mws...)
}

// endpoint adapts the router to protocol.Handler and renders its result.
func endpoint(r *handler.Router, log zerolog.Logger) protocol.Handler {
	return protocol.HandlerFunc(func(ctx context.Context, req *protocol.Request) *protocol.Response {
		ctx = protocol.WithRequestID(ctx, req.RequestID)

		data, err := r.Dispatch(ctx, req)
		if err != nil {
			return protocol.NewError(req.RequestID, ResolveError(err, log, req))
		}
		resp, err := protocol.NewOK(req.RequestID, data)
		if err != nil {
			return protocol.NewError(req.RequestID, ResolveError(err, log, req))
		}
		return resp
	})
}

// sessionAPIs is every frontend API except account creation and login.
func sessionAPIs(all []protocol.API) []protocol.API {
	out := make([]protocol.API, 0, len(all))
	for _, api := range all {
		if api == protocol.APICreateAccount || api == protocol.APILogin {
			continue
		}
		out = append(out, api)
	}
	return out
}
