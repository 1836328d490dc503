package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/savoria/savoria-api/models"
)

// Notifier tells the admin side about order activity: in-process
// subscribers (the dashboard event stream) are called on every new order,
// and an operator-configured webhook gets a best-effort POST. Webhook
// delivery failures are logged and dropped; they never fail the order
// operation that triggered them.
type Notifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(models.Order)

	webhookURL string
	client     *resty.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		handlers:   make(map[int]func(models.Order)),
		webhookURL: webhookURL,
		client:     resty.New().SetTimeout(10 * time.Second),
	}
}

// OnOrderCreated registers a handler for new orders and returns a
// function that removes it again. Admin sessions must deregister when
// they end so a closed dashboard stops receiving deliveries.
func (n *Notifier) OnOrderCreated(handler func(models.Order)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = handler
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.handlers, id)
		n.mu.Unlock()
	}
}

// OrderCreated fans the order out to all subscribers and, when a webhook
// is configured, posts it in the background.
func (n *Notifier) OrderCreated(order models.Order) {
	n.mu.Lock()
	handlers := make([]func(models.Order), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h(order)
	}

	if n.webhookURL == "" {
		return
	}
	go func() {
		if err := n.post("new_order", order); err != nil {
			log.Println("new order webhook failed:", err)
		}
	}()
}

// OrderStatusChanged posts a status-change event to the webhook if one is
// configured. Callers log the returned error and move on.
func (n *Notifier) OrderStatusChanged(order models.Order) error {
	if n.webhookURL == "" {
		return nil
	}
	return n.post("order_status_changed", order)
}

func (n *Notifier) post(event string, order models.Order) error {
	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"event": event,
			"order": order,
		}).
		Post(n.webhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	return nil
}
