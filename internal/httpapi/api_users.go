package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/everestcart/storefront-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/problem"
)

// UsersAPI wires HTTP transport with account profile use cases.
type UsersAPI struct {
	service userports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// Get /api/users/:userId
// Load a profile; buyers only see their own
func (api *UsersAPI) GetUser(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetProfile(c.Request.Context(), act, id)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Put /api/users/:userId
// Update the editable profile details
func (api *UsersAPI) UpdateUser(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload usermapper.UpdateProfileRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	user, err := api.service.UpdateProfile(c.Request.Context(), act, id, usermapper.ToProfileUpdate(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}
