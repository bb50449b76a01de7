package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order. The item list, address and prices are
// a snapshot taken at checkout; only the payment and delivery fields change
// afterwards.
type Order struct {
	ID              uuid.UUID       `json:"_id" db:"id"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" db:"shipping_address"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" db:"payment_result"`
	ItemsPrice      float64         `json:"itemsPrice" db:"items_price"`
	ShippingPrice   float64         `json:"shippingPrice" db:"shipping_price"`
	TaxPrice        float64         `json:"taxPrice" db:"tax_price"`
	TotalPrice      float64         `json:"totalPrice" db:"total_price"`
	UserID          uuid.UUID       `json:"user" db:"user_id"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	DiscountCode    *string         `json:"discountCode,omitempty" db:"discount_code"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a product snapshot captured at checkout.
type OrderItem struct {
	ID        uuid.UUID `json:"_id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"product" db:"product_id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Image     string    `json:"image" db:"image"`
	Price     float64   `json:"price" db:"price"`
}

// ShippingAddress is stored inline with the order.
type ShippingAddress struct {
	FullName   string    `json:"fullName"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	Location   *Location `json:"location,omitempty"`
}

// Location is the optional map pin chosen at checkout.
type Location struct {
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Address         string  `json:"address,omitempty"`
	Name            string  `json:"name,omitempty"`
	Vicinity        string  `json:"vicinity,omitempty"`
	GoogleAddressID string  `json:"googleAddressId,omitempty"`
}

// PaymentResult is the payment provider's capture receipt.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// OrderStatus is the combined view of the independent paid and delivered flags.
type OrderStatus string

const (
	OrderStatusPlaced           OrderStatus = "placed"
	OrderStatusPaid             OrderStatus = "paid"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusPaidAndDelivered OrderStatus = "paid_and_delivered"
)

// Status derives the combined status. The two flags are stored independently
// and either may be set first.
func (o *Order) Status() OrderStatus {
	switch {
	case o.IsPaid && o.IsDelivered:
		return OrderStatusPaidAndDelivered
	case o.IsPaid:
		return OrderStatusPaid
	case o.IsDelivered:
		return OrderStatusDelivered
	default:
		return OrderStatusPlaced
	}
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice"`
	ShippingPrice   float64            `json:"shippingPrice"`
	TaxPrice        float64            `json:"taxPrice"`
	TotalPrice      float64            `json:"totalPrice"`
}

// OrderItemRequest represents a single cart line in an order request.
// The client sends its cart entries with the product id under "_id".
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
}

// OrderResponse wraps an order with an acknowledgement message.
type OrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// OrderSummary is an order row in the admin list with the owner's name resolved.
type OrderSummary struct {
	Order
	UserName string `json:"userName"`
}
