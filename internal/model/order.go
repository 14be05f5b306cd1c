package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCardOnline     PaymentMethod = "card_online"
	PaymentMethodGoogleApplePay PaymentMethod = "google_apple_pay"
	PaymentMethodInvoice        PaymentMethod = "invoice"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCashOnDelivery, PaymentMethodCardOnline,
		PaymentMethodGoogleApplePay, PaymentMethodInvoice:
		return true
	}
	return false
}

// Online reports whether the method is settled through the payment gateway.
func (m PaymentMethod) Online() bool {
	return m == PaymentMethodCardOnline || m == PaymentMethodGoogleApplePay
}

// Order represents a customer order. Monetary fields are in minor units and
// satisfy Total = Subtotal - DiscountAmount + DeliveryPrice.
type Order struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	OrderNumber       string        `json:"orderNumber" db:"order_number"`
	CustomerID        *uuid.UUID    `json:"customerId,omitempty" db:"customer_id"`
	FirstName         string        `json:"firstName" db:"first_name"`
	LastName          string        `json:"lastName" db:"last_name"`
	Phone             string        `json:"phone" db:"phone"`
	Email             string        `json:"email" db:"email"`
	DeliveryMethod    string        `json:"deliveryMethod" db:"delivery_method"`
	DeliveryCity      string        `json:"deliveryCity" db:"delivery_city"`
	DeliveryWarehouse string        `json:"deliveryWarehouse" db:"delivery_warehouse"`
	Comment           string        `json:"comment,omitempty" db:"comment"`
	Subtotal          int64         `json:"subtotal" db:"subtotal"`
	DiscountAmount    int64         `json:"discountAmount" db:"discount_amount"`
	DeliveryPrice     int64         `json:"deliveryPrice" db:"delivery_price"`
	Total             int64         `json:"total" db:"total"`
	PromoCode         *string       `json:"promoCode,omitempty" db:"promo_code"`
	Status            OrderStatus   `json:"status" db:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" db:"payment_status"`
	PaymentMethod     PaymentMethod `json:"paymentMethod" db:"payment_method"`
	TransactionID     *string       `json:"transactionId,omitempty" db:"transaction_id"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is an immutable snapshot of a purchased product taken at order time.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	Position  int       `json:"-" db:"position"`
	ProductID string    `json:"productId" db:"product_id"`
	Title     string    `json:"title" db:"title"`
	Image     string    `json:"image" db:"image"`
	Size      string    `json:"size" db:"size"`
	Firmness  string    `json:"firmness" db:"firmness"`
	UnitPrice int64     `json:"unitPrice" db:"unit_price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Total     int64     `json:"total" db:"total"`
}

// OrderRequest represents the checkout payload for creating an order.
type OrderRequest struct {
	CustomerID        *uuid.UUID         `json:"customerId,omitempty"`
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Phone             string             `json:"phone"`
	Email             string             `json:"email"`
	DeliveryMethod    string             `json:"deliveryMethod"`
	DeliveryCity      string             `json:"deliveryCity"`
	DeliveryWarehouse string             `json:"deliveryWarehouse"`
	PaymentMethod     PaymentMethod      `json:"paymentMethod"`
	PromoCode         *string            `json:"promoCode,omitempty"`
	Comment           string             `json:"comment,omitempty"`
	Items             []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID string    `json:"productId"`
	SizeID    uuid.UUID `json:"sizeId"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}

// StatusUpdateRequest is the admin payload for moving an order through its lifecycle.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
