package api

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/marketplace-system/internal/api/handler"
	"github.com/99minutos/marketplace-system/internal/core/domain"
	"github.com/99minutos/marketplace-system/internal/protocol"
)

// clientErrors are domain failures caused by the request itself. They are
// reported as BAD_REQUEST with the error text as message.
var clientErrors = []error{
	domain.ErrInvalidRole,
	domain.ErrNameTooLong,
	domain.ErrUsernameTaken,
	domain.ErrMissingUsername,
	domain.ErrUnknownUsername,
	domain.ErrInvalidPassword,
	domain.ErrSessionRequired,
	domain.ErrSellerNotFound,
	domain.ErrSellerIDRequired,
	domain.ErrInvalidVote,
	domain.ErrItemNameTooLong,
	domain.ErrTooManyKeywords,
	domain.ErrKeywordTooLong,
	domain.ErrInvalidCondition,
	domain.ErrNegativeQuantity,
	domain.ErrItemNotFound,
	domain.ErrNotItemOwner,
	domain.ErrNegativeRemoval,
	domain.ErrInsufficientQuantity,
	domain.ErrNonPositiveQuantity,
	domain.ErrItemUnavailable,
	domain.ErrNotInCart,
	domain.ErrExceedsCartQuantity,
	domain.ErrInvalidItemKey,
	domain.ErrPurchaseUnsupported,
	domain.ErrMissingField,
}

// ResolveError converts any error returned by a handler into its wire form:
//   - An upstream *protocol.Error is passed through unchanged.
//   - Session failures map to SESSION_EXPIRED or UNAUTHORIZED.
//   - Known domain and payload errors map to BAD_REQUEST.
//   - Anything else is logged and reported as INTERNAL.
func ResolveError(err error, log zerolog.Logger, req *protocol.Request) *protocol.Error {
	var pe *protocol.Error
	if errors.As(err, &pe) {
		return pe
	}

	var expired *domain.SessionExpiredError
	if errors.As(err, &expired) {
		return &protocol.Error{
			Code:    protocol.CodeSessionExpired,
			Message: expired.Error(),
			Data: map[string]any{
				"user_type": string(expired.UserType),
				"user_id":   expired.UserID,
			},
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSession):
		return &protocol.Error{Code: protocol.CodeUnauthorized, Message: "Invalid session."}
	case errors.Is(err, domain.ErrWrongSessionRole):
		return &protocol.Error{Code: protocol.CodeUnauthorized, Message: err.Error()}
	}

	var bad *handler.BadRequestError
	if errors.As(err, &bad) {
		return &protocol.Error{Code: protocol.CodeBadRequest, Message: bad.Msg}
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return &protocol.Error{Code: protocol.CodeBadRequest, Message: err.Error()}
		}
	}

	// Unexpected error: log the full chain, report the innermost cause.
	log.Error().
		Err(err).
		Str("api", string(req.API)).
		Str("request_id", req.RequestID).
		Msg("unhandled error")

	return InternalError(rootCause(err))
}

// InternalError builds the INTERNAL wire error for cause.
func InternalError(cause error) *protocol.Error {
	return &protocol.Error{
		Code:    protocol.CodeInternal,
		Message: fmt.Sprintf("Internal error: %T: %s", cause, cause.Error()),
	}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
