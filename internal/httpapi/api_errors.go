package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogports "github.com/everestcart/storefront-api/internal/domains/catalog/ports"
	ordersapp "github.com/everestcart/storefront-api/internal/domains/orders/application"
	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"
	usersapp "github.com/everestcart/storefront-api/internal/domains/users/application"
	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/problem"
)

// parseIDParam reads a positive integer path parameter or responds 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Respond(c, problem.ErrBadRequest.WithDetail("invalid "+name+" path parameter"))
		return 0, false
	}
	return id, true
}

// respondOrderServiceError maps order use case failures onto problem details.
// Checkout failures caused by stock are reported as internal errors carrying
// the offending product, the same contract the storefront clients already
// handle.
func respondOrderServiceError(c *gin.Context, err error) {
	var unavailable *catalogports.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		problem.Respond(c, problem.ErrInternal.WithDetail(unavailable.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		problem.Respond(c, problem.NewValidationProblem(trimWrapped(err, ordersapp.ErrInvalidInput)))
	case errors.Is(err, ordersapp.ErrConflict):
		problem.Respond(c, problem.ErrBadRequest.WithDetail(trimWrapped(err, ordersapp.ErrConflict)))
	case errors.Is(err, ordersports.ErrNotFound):
		problem.Respond(c, problem.NewNotFoundProblem("order", c.Param("orderId")))
	case errors.Is(err, ordersports.ErrForbidden):
		problem.Respond(c, problem.ErrForbidden.WithDetail("not allowed to modify this order"))
	default:
		problem.RespondError(c, err)
	}
}

// respondUserServiceError maps account use case failures onto problem details.
func respondUserServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usersapp.ErrInvalidInput):
		problem.Respond(c, problem.NewValidationProblem(trimWrapped(err, usersapp.ErrInvalidInput)))
	case errors.Is(err, usersapp.ErrAuthentication):
		problem.Respond(c, problem.ErrUnauthorized.WithDetail(trimWrapped(err, usersapp.ErrAuthentication)))
	case errors.Is(err, usersapp.ErrConflict):
		problem.Respond(c, problem.ErrConflict.WithDetail(trimWrapped(err, usersapp.ErrConflict)))
	case errors.Is(err, userports.ErrNotFound):
		problem.Respond(c, problem.NewNotFoundProblem("user", c.Param("userId")))
	case errors.Is(err, userports.ErrForbidden):
		problem.Respond(c, problem.ErrForbidden.WithDetail("not allowed to modify this profile"))
	default:
		problem.RespondError(c, err)
	}
}

// respondProductServiceError maps catalog read failures onto problem details.
func respondProductServiceError(c *gin.Context, err error) {
	if errors.Is(err, catalogports.ErrNotFound) {
		problem.Respond(c, problem.NewNotFoundProblem("product", c.Param("productId")))
		return
	}
	problem.RespondError(c, err)
}

// trimWrapped strips the classification sentinel prefix so the client sees
// the underlying message, e.g. "order must contain items" rather than
// "invalid order input: order must contain items".
func trimWrapped(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
