package services

import (
	"context"
	"errors"
	"log"

	"github.com/savoria/savoria-api/models"
)

// OrderStore is the persistence boundary for orders. CreateOrderWithItems
// must write the order and its items atomically where the backing store
// supports it, or return ErrOrderIncomplete when the order row committed
// but the items did not.
type OrderStore interface {
	CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error
}

// CustomerInfo is the checkout contact form.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// SubmitOrderInput bundles everything the checkout form collects. The
// payment configuration is passed in explicitly so the card-enabled check
// is deterministic rather than read from shared state mid-flight.
type SubmitOrderInput struct {
	Customer    CustomerInfo
	Fulfillment string
	Payment     string
	Payments    PaymentSettings
}

// Checkout outcomes. A card order on an enabled payments integration
// still has a charge pending; everything else is done once persisted.
const (
	OutcomeOrderComplete    = "order_complete"
	OutcomeProceedToPayment = "proceed_to_payment"
)

type SubmitOrderResult struct {
	Order   *models.Order
	Outcome string
}

type OrderService struct {
	store    OrderStore
	notifier *Notifier
}

func NewOrderService(store OrderStore, notifier *Notifier) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// SubmitOrder validates the checkout input against the cart, persists the
// order with its item snapshots in one transaction, clears the cart and
// fires the new-order notification. The persisted total always comes from
// the cart, never from the caller.
func (s *OrderService) SubmitOrder(ctx context.Context, input SubmitOrderInput, cart *Cart) (*SubmitOrderResult, error) {
	if err := validateSubmission(input, cart); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:    input.Customer.Name,
		CustomerEmail:   input.Customer.Email,
		CustomerPhone:   input.Customer.Phone,
		DeliveryAddress: input.Customer.Address,
		Fulfillment:     input.Fulfillment,
		PaymentMethod:   input.Payment,
		TotalAmount:     cart.Total().Round(2),
		Status:          models.OrderStatusPending,
	}

	items := make([]models.OrderItem, 0, len(cart.Lines()))
	for _, line := range cart.Lines() {
		items = append(items, models.OrderItem{
			MenuItemID:      line.Item.ID,
			Name:            line.Item.Name,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Item.Price.Round(2),
			Notes:           input.Customer.Notes,
		})
	}

	if err := s.store.CreateOrderWithItems(ctx, order, items); err != nil {
		if errors.Is(err, ErrOrderIncomplete) {
			return nil, &PersistenceError{OrderID: order.ID, Incomplete: true, Err: err}
		}
		return nil, &PersistenceError{Err: err}
	}
	order.OrderItems = items

	cart.Clear()
	s.notifier.OrderCreated(*order)

	outcome := OutcomeOrderComplete
	if input.Payment == models.PaymentCard && input.Payments.Enabled {
		outcome = OutcomeProceedToPayment
	}
	return &SubmitOrderResult{Order: order, Outcome: outcome}, nil
}

func validateSubmission(input SubmitOrderInput, cart *Cart) error {
	var missing []string
	if input.Customer.Name == "" {
		missing = append(missing, "name")
	}
	if input.Customer.Phone == "" {
		missing = append(missing, "phone")
	}
	switch input.Fulfillment {
	case models.FulfillmentDelivery:
		if input.Customer.Address == "" {
			missing = append(missing, "address")
		}
	case models.FulfillmentPickup:
	default:
		missing = append(missing, "fulfillment")
	}
	if input.Payment != models.PaymentCard && input.Payment != models.PaymentCash {
		missing = append(missing, "paymentMethod")
	}
	if cart == nil || cart.IsEmpty() {
		missing = append(missing, "cart")
	}
	if input.Payment == models.PaymentCard && !input.Payments.Enabled {
		missing = append(missing, "paymentMethod")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ValidStatusTransition reports whether an order may move between the two
// statuses. Only pending orders move, each exactly once.
func ValidStatusTransition(from, to string) bool {
	if from != models.OrderStatusPending {
		return false
	}
	return to == models.OrderStatusConfirmed || to == models.OrderStatusCancelled
}

// SetOrderStatus moves a pending order to confirmed or cancelled. Orders
// that already left pending are never changed; re-requesting a transition
// fails loudly instead of silently succeeding.
func (s *OrderService) SetOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{OrderID: id, Err: err}
	}

	if !ValidStatusTransition(order.Status, status) {
		return nil, &InvalidStateTransitionError{OrderID: id, From: order.Status, To: status}
	}

	if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, &PersistenceError{OrderID: id, Err: err}
	}
	order.Status = status

	// Status-change notification is best effort and never rolls back the
	// update it reports on.
	if err := s.notifier.OrderStatusChanged(*order); err != nil {
		log.Println("order status notification failed:", err)
	}
	return order, nil
}
