package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order status lifecycle: every order is created pending and is moved
// exactly once to confirmed or cancelled by an administrator.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// Fulfillment and payment choices accepted at checkout.
const (
	FulfillmentDelivery = "delivery"
	FulfillmentPickup   = "pickup"

	PaymentCard = "card"
	PaymentCash = "cash"
)

type Order struct {
	gorm.Model
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Fulfillment     string          `json:"fulfillment"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`
	Status          string          `json:"status"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots one cart line at submission time. PriceAtPurchase is
// the menu price when the order was placed, not a live lookup, so later
// menu edits never change what a customer was charged.
type OrderItem struct {
	gorm.Model
	OrderID         uint            `json:"orderId"`
	MenuItemID      uint            `json:"menuItemId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase" gorm:"type:decimal(10,2)"`
	Notes           string          `json:"notes"`
}
