package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savoria/savoria-api/models"
)

// fakeOrderStore records writes in memory so workflow behavior can be
// checked without a database.
type fakeOrderStore struct {
	nextID      uint
	orders      map[uint]*models.Order
	items       map[uint][]models.OrderItem
	createCalls int
	createErr   error
	updateErr   error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		nextID: 1,
		orders: make(map[uint]*models.Order),
		items:  make(map[uint][]models.OrderItem),
	}
}

func (s *fakeOrderStore) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = s.nextID
	s.nextID++
	saved := *order
	s.orders[order.ID] = &saved
	s.items[order.ID] = items
	return nil
}

func (s *fakeOrderStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	order, ok := s.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func validInput() SubmitOrderInput {
	return SubmitOrderInput{
		Customer: CustomerInfo{
			Name:    "Ada Customer",
			Phone:   "555-0101",
			Address: "1 Restaurant Street",
		},
		Fulfillment: models.FulfillmentDelivery,
		Payment:     models.PaymentCash,
	}
}

func filledCart() *Cart {
	cart := NewCart()
	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	cart.AddItem(menuItem(3, "Caprese Salad", "12.99"))
	cart.AddItem(menuItem(3, "Caprese Salad", "12.99"))
	return cart
}

func TestSubmitOrderEmptyCartIsRejected(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))

	_, err := svc.SubmitOrder(context.Background(), validInput(), NewCart())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cart")
	assert.Zero(t, store.createCalls, "validation failure must not touch the store")
}

func TestSubmitOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitOrderInput)
		missing string
	}{
		{"empty name", func(in *SubmitOrderInput) { in.Customer.Name = "" }, "name"},
		{"empty phone", func(in *SubmitOrderInput) { in.Customer.Phone = "" }, "phone"},
		{"delivery without address", func(in *SubmitOrderInput) { in.Customer.Address = "" }, "address"},
		{"card while payments disabled", func(in *SubmitOrderInput) { in.Payment = models.PaymentCard }, "paymentMethod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeOrderStore()
			svc := NewOrderService(store, NewNotifier(""))
			input := validInput()
			tt.mutate(&input)

			_, err := svc.SubmitOrder(context.Background(), input, filledCart())

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.missing)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestSubmitOrderPickupNeedsNoAddress(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), NewNotifier(""))
	input := validInput()
	input.Customer.Address = ""
	input.Fulfillment = models.FulfillmentPickup

	result, err := svc.SubmitOrder(context.Background(), input, filledCart())
	require.NoError(t, err)
	assert.Equal(t, OutcomeOrderComplete, result.Outcome)
}

func TestSubmitOrderTotalComesFromCart(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))

	cart := NewCart()
	cart.AddItem(menuItem(1, "Margherita Pizza", "14.99"))
	cart.AddItem(menuItem(2, "Truffle Pasta", "18.99"))

	result, err := svc.SubmitOrder(context.Background(), validInput(), cart)
	require.NoError(t, err)

	// The persisted total is computed server side; nothing a client sends
	// can substitute a tampered amount.
	saved := store.orders[result.Order.ID]
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("33.98")),
		"got %s", saved.TotalAmount)
}

func TestSubmitOrderPersistsSnapshotsAndClearsCart(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))
	cart := filledCart()

	var notified []models.Order
	notifier := svc.notifier
	unsubscribe := notifier.OnOrderCreated(func(o models.Order) {
		notified = append(notified, o)
	})
	defer unsubscribe()

	result, err := svc.SubmitOrder(context.Background(), validInput(), cart)
	require.NoError(t, err)

	saved := store.orders[result.Order.ID]
	assert.Equal(t, models.OrderStatusPending, saved.Status)
	assert.Equal(t, "Ada Customer", saved.CustomerName)
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("40.97")),
		"got %s", saved.TotalAmount)

	items := store.items[result.Order.ID]
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].MenuItemID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].PriceAtPurchase.Equal(decimal.RequireFromString("14.99")))
	assert.Equal(t, uint(3), items[1].MenuItemID)
	assert.Equal(t, 2, items[1].Quantity)
	assert.True(t, items[1].PriceAtPurchase.Equal(decimal.RequireFromString("12.99")))

	assert.True(t, cart.IsEmpty(), "cart is discarded after submission")
	require.Len(t, notified, 1)
	assert.Equal(t, result.Order.ID, notified[0].ID)
}

func TestSubmitOrderCardOutcome(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), NewNotifier(""))
	input := validInput()
	input.Payment = models.PaymentCard
	input.Payments = PaymentSettings{Enabled: true, PublishableKey: "pk_test_123"}

	result, err := svc.SubmitOrder(context.Background(), input, filledCart())
	require.NoError(t, err)
	assert.Equal(t, OutcomeProceedToPayment, result.Outcome)
}

func TestSubmitOrderStoreFailure(t *testing.T) {
	store := newFakeOrderStore()
	store.createErr = errors.New("connection reset")
	svc := NewOrderService(store, NewNotifier(""))
	cart := filledCart()

	_, err := svc.SubmitOrder(context.Background(), validInput(), cart)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.False(t, perr.Incomplete)
	assert.False(t, cart.IsEmpty(), "cart survives a failed submission")
}

func TestSubmitOrderIncompleteWriteIsReported(t *testing.T) {
	store := newFakeOrderStore()
	store.createErr = ErrOrderIncomplete
	svc := NewOrderService(store, NewNotifier(""))

	_, err := svc.SubmitOrder(context.Background(), validInput(), filledCart())

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.Incomplete, "partial writes must be surfaced, not swallowed")
}

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusPending, false},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, false},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{models.OrderStatusCancelled, models.OrderStatusCancelled, false},
		{"", models.OrderStatusConfirmed, false},
		{models.OrderStatusPending, "", false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func submitOne(t *testing.T, svc *OrderService) uint {
	t.Helper()
	result, err := svc.SubmitOrder(context.Background(), validInput(), filledCart())
	require.NoError(t, err)
	return result.Order.ID
}

func TestSetOrderStatusConfirmsPendingOrder(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))
	id := submitOne(t, svc)

	order, err := svc.SetOrderStatus(context.Background(), id, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.OrderStatusConfirmed, store.orders[id].Status)
}

func TestSetOrderStatusNotFound(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), NewNotifier(""))

	_, err := svc.SetOrderStatus(context.Background(), 404, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetOrderStatusRejectsSecondTransition(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))
	id := submitOne(t, svc)

	_, err := svc.SetOrderStatus(context.Background(), id, models.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = svc.SetOrderStatus(context.Background(), id, models.OrderStatusConfirmed)
	var terr *InvalidStateTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.OrderStatusCancelled, terr.From)
	assert.Equal(t, models.OrderStatusCancelled, store.orders[id].Status,
		"a rejected transition must not change the record")
}

func TestSetOrderStatusUpdateFailure(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, NewNotifier(""))
	id := submitOne(t, svc)

	store.updateErr = errors.New("deadlock")
	_, err := svc.SetOrderStatus(context.Background(), id, models.OrderStatusConfirmed)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.OrderStatusPending, store.orders[id].Status)
}
