package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/everestcart/storefront-api/internal/domains/orders/domain"
	ordersports "github.com/everestcart/storefront-api/internal/domains/orders/ports"
)

// OrderItemRequest is one requested line of a checkout payload.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// ShippingDetails is the transport shape of the delivery snapshot.
type ShippingDetails struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Municipal    string `json:"municipal"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingDetails ShippingDetails    `json:"shipping_details"`
	PaymentMethod   string             `json:"payment_method"`
}

// UpdateStatusRequest carries a staff status change.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CancelOrderRequest carries the mandatory cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItem is one priced line in an order response.
type OrderItem struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int32           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ProductName     string          `json:"product_name,omitempty"`
	ProductImageURL string          `json:"product_image_url,omitempty"`
}

// Order is the transport representation of an order aggregate.
type Order struct {
	ID                 int64           `json:"id"`
	UserID             int64           `json:"user_id"`
	OrderDate          time.Time       `json:"order_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	Status             string          `json:"status"`
	TrackingNumber     string          `json:"tracking_number"`
	CancellationReason *string         `json:"cancellation_reason,omitempty"`
	ShippingDetails    ShippingDetails `json:"shipping_details"`
	PaymentMethod      string          `json:"payment_method"`
	Items              []OrderItem     `json:"items,omitempty"`
}

// Customer is the joined display data of the placing user.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	OrderDate      time.Time       `json:"order_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number"`
	PaymentMethod  string          `json:"payment_method"`
	Customer       Customer        `json:"customer"`
}

// ToCreateInput converts a checkout payload into the application input.
func ToCreateInput(req CreateOrderRequest) ordersports.CreateOrderInput {
	items := make([]ordersdomain.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordersdomain.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return ordersports.CreateOrderInput{
		Items: items,
		Shipping: ordersdomain.ShippingDetails{
			FirstName:    req.ShippingDetails.FirstName,
			LastName:     req.ShippingDetails.LastName,
			Email:        req.ShippingDetails.Email,
			MobileNumber: req.ShippingDetails.MobileNumber,
			Address:      req.ShippingDetails.Address,
			Province:     req.ShippingDetails.Province,
			District:     req.ShippingDetails.District,
			Municipal:    req.ShippingDetails.Municipal,
		},
		PaymentMethod: req.PaymentMethod,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:                 order.ID,
		UserID:             order.UserID,
		OrderDate:          order.OrderDate,
		TotalAmount:        order.TotalAmount,
		Status:             string(order.Status),
		TrackingNumber:     order.TrackingNumber,
		CancellationReason: order.CancellationReason,
		ShippingDetails: ShippingDetails{
			FirstName:    order.Shipping.FirstName,
			LastName:     order.Shipping.LastName,
			Email:        order.Shipping.Email,
			MobileNumber: order.Shipping.MobileNumber,
			Address:      order.Shipping.Address,
			Province:     order.Shipping.Province,
			District:     order.Shipping.District,
			Municipal:    order.Shipping.Municipal,
		},
		PaymentMethod: order.PaymentMethod,
	}
	for _, line := range order.Lines {
		out.Items = append(out.Items, OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			Price:           line.UnitPrice,
			Subtotal:        line.Subtotal(),
			ProductName:     line.ProductName,
			ProductImageURL: line.ProductImageURL,
		})
	}
	return out
}

// FromSummary converts a listing row to the transport representation.
func FromSummary(summary ordersports.Summary) OrderSummary {
	return OrderSummary{
		ID:             summary.ID,
		UserID:         summary.UserID,
		OrderDate:      summary.OrderDate,
		TotalAmount:    summary.TotalAmount,
		Status:         string(summary.Status),
		TrackingNumber: summary.TrackingNumber,
		PaymentMethod:  summary.PaymentMethod,
		Customer: Customer{
			FirstName: summary.Customer.FirstName,
			LastName:  summary.Customer.LastName,
			Email:     summary.Customer.Email,
		},
	}
}
