package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Secured marks routes that require a valid session.
	Secured bool
	// AdminOnly marks routes that additionally require the staff role.
	AdminOnly bool
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated Route.
type Routes []Route

// ApiHandleFunctions bundles the API handlers for the router.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	UsersAPI    UsersAPI
	ProductsAPI ProductsAPI
	OrdersAPI   OrdersAPI
}

// NewRouter returns a new router with all API routes registered. Global
// middleware is installed before any route so it joins every handler chain.
// The auth middleware guards secured routes; admin routes get the role check
// on top.
func NewRouter(handleFunctions ApiHandleFunctions, auth *AuthMiddleware, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		chain := make([]gin.HandlerFunc, 0, 3)
		if route.Secured && auth != nil {
			chain = append(chain, auth.RequireUser())
			if route.AdminOnly {
				chain = append(chain, auth.RequireAdmin())
			}
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

func defaultFunc(c *gin.Context) {}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			Name:        "Register",
			Method:      http.MethodPost,
			Pattern:     "/api/auth/register",
			HandlerFunc: handleFunctions.AuthAPI.Register,
		},
		{
			Name:        "Login",
			Method:      http.MethodPost,
			Pattern:     "/api/auth/login",
			HandlerFunc: handleFunctions.AuthAPI.Login,
		},
		{
			Name:        "Logout",
			Method:      http.MethodPost,
			Pattern:     "/api/auth/logout",
			Secured:     true,
			HandlerFunc: handleFunctions.AuthAPI.Logout,
		},
		{
			Name:        "Me",
			Method:      http.MethodGet,
			Pattern:     "/api/auth/me",
			Secured:     true,
			HandlerFunc: handleFunctions.AuthAPI.Me,
		},
		{
			Name:        "GetUser",
			Method:      http.MethodGet,
			Pattern:     "/api/users/:userId",
			Secured:     true,
			HandlerFunc: handleFunctions.UsersAPI.GetUser,
		},
		{
			Name:        "UpdateUser",
			Method:      http.MethodPut,
			Pattern:     "/api/users/:userId",
			Secured:     true,
			HandlerFunc: handleFunctions.UsersAPI.UpdateUser,
		},
		{
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/api/products",
			HandlerFunc: handleFunctions.ProductsAPI.ListProducts,
		},
		{
			Name:        "GetProduct",
			Method:      http.MethodGet,
			Pattern:     "/api/products/:productId",
			HandlerFunc: handleFunctions.ProductsAPI.GetProduct,
		},
		{
			Name:        "CreateOrder",
			Method:      http.MethodPost,
			Pattern:     "/api/orders",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.CreateOrder,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/api/orders",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.ListOrders,
		},
		{
			Name:        "GetOrder",
			Method:      http.MethodGet,
			Pattern:     "/api/orders/:orderId",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.GetOrder,
		},
		{
			Name:        "UpdateOrderStatus",
			Method:      http.MethodPut,
			Pattern:     "/api/orders/:orderId/status",
			Secured:     true,
			AdminOnly:   true,
			HandlerFunc: handleFunctions.OrdersAPI.UpdateStatus,
		},
		{
			Name:        "CancelOrder",
			Method:      http.MethodPut,
			Pattern:     "/api/orders/:orderId/cancel",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.CancelOrder,
		},
		{
			Name:        "OrderTrackingBarcode",
			Method:      http.MethodGet,
			Pattern:     "/api/orders/:orderId/tracking/barcode.png",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.TrackingBarcode,
		},
		{
			Name:        "OrderTrackingQRCode",
			Method:      http.MethodGet,
			Pattern:     "/api/orders/:orderId/tracking/qrcode.png",
			Secured:     true,
			HandlerFunc: handleFunctions.OrdersAPI.TrackingQRCode,
		},
	}
}
