package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/everestcart/storefront-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"
	"github.com/everestcart/storefront-api/internal/shared/problem"
)

// AuthAPI wires HTTP transport with the account bounded context service.
type AuthAPI struct {
	service userports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/register
// Create a client account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	user, err := api.service.Register(c.Request.Context(), usermapper.ToRegisterInput(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(user))
}

// Post /api/auth/login
// Open a session
func (api *AuthAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.LoginResponse{Token: token, User: usermapper.FromDomainUser(user)})
}

// Post /api/auth/logout
// End the current session
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/auth/me
// Return the authenticated account
func (api *AuthAPI) Me(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	user, err := api.service.GetProfile(c.Request.Context(), act, act.UserID)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}
