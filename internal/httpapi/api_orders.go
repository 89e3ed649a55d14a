package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/everestcart/storefront-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/everestcart/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"
	"github.com/everestcart/storefront-api/internal/platform/tracking"
	"github.com/everestcart/storefront-api/internal/shared/problem"
)

// OrdersAPI wires HTTP transport with the order bounded context service.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Post /api/orders
// Place an order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	var payload ordermapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), act, ordermapper.ToCreateInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

// Get /api/orders
// List orders; buyers see their own, staff see all
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	summaries, err := api.service.ListOrders(c.Request.Context(), act)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	out := make([]ordermapper.OrderSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, ordermapper.FromSummary(summary))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/orders/:orderId
// Load one order with its priced lines
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /api/orders/:orderId/status
// Advance the fulfilment status (staff only)
func (api *OrdersAPI) UpdateStatus(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), act, id, ordersdomain.Status(payload.Status))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /api/orders/:orderId/cancel
// Cancel an order with a mandatory reason
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.CancelOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problem.Respond(c, problem.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), act, id, payload.Reason)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /api/orders/:orderId/tracking/barcode.png
// Render the tracking number as a Code 128 barcode
func (api *OrdersAPI) TrackingBarcode(c *gin.Context) {
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	img, err := tracking.BarcodePNG(order.TrackingNumber)
	if err != nil {
		problem.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// Get /api/orders/:orderId/tracking/qrcode.png
// Render the tracking number as a QR code
func (api *OrdersAPI) TrackingQRCode(c *gin.Context) {
	order, ok := api.loadOrder(c)
	if !ok {
		return
	}
	img, err := tracking.QRCodePNG(order.TrackingNumber)
	if err != nil {
		problem.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// loadOrder handles the shared actor/id/ownership plumbing of the order
// read endpoints.
func (api *OrdersAPI) loadOrder(c *gin.Context) (*ordersdomain.Order, bool) {
	act, ok := ActorFromContext(c)
	if !ok {
		problem.Respond(c, problem.ErrUnauthorized.WithDetail("missing session"))
		return nil, false
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return nil, false
	}
	order, err := api.service.GetOrder(c.Request.Context(), act, id)
	if err != nil {
		respondOrderServiceError(c, err)
		return nil, false
	}
	return order, true
}
