package domain

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses returns every recognized status, in lifecycle order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move between two statuses.
// Every pair is currently allowed so staff can correct mistakes manually
// (e.g. undo an accidental "delivered"). Swap the body for a transition
// table if that policy ever tightens.
func CanTransition(from, to OrderStatus) bool {
	return from.Valid() && to.Valid()
}

type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type Order struct {
	ID           string       `json:"id"`
	Items        []OrderItem  `json:"items"`
	Total        float64      `json:"total"`
	Status       OrderStatus  `json:"status"`
	CustomerInfo CustomerInfo `json:"customer_info"`
	PaymentProof *string      `json:"payment_proof,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// OrderItem snapshots name and price at purchase time so later catalog
// edits never rewrite order history.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"-"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal is the snapshot price times quantity.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartItemRequest is one client-submitted cart line. Name and Price are
// hints only; the service resolves the authoritative values from the
// catalog and falls back to the hints for discontinued products.
type CartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items        []CartItemRequest `json:"cart" binding:"required,min=1,dive"`
	CustomerInfo CustomerInfo      `json:"customer_info" binding:"required"`
	PaymentProof *string           `json:"-"`
}

type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
