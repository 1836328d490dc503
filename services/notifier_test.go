package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/savoria/savoria-api/models"
)

func TestOnOrderCreatedSubscribeAndUnsubscribe(t *testing.T) {
	notifier := NewNotifier("")

	var first, second int
	unsubFirst := notifier.OnOrderCreated(func(models.Order) { first++ })
	unsubSecond := notifier.OnOrderCreated(func(models.Order) { second++ })
	defer unsubSecond()

	notifier.OrderCreated(models.Order{Model: gorm.Model{ID: 1}})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	unsubFirst()
	notifier.OrderCreated(models.Order{Model: gorm.Model{ID: 2}})
	assert.Equal(t, 1, first, "unsubscribed handler must not be called again")
	assert.Equal(t, 2, second)
}

func TestOrderCreatedPostsWebhook(t *testing.T) {
	received := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL)
	notifier.OrderCreated(models.Order{
		Model:        gorm.Model{ID: 7},
		CustomerName: "Ada Customer",
		Status:       models.OrderStatusPending,
	})

	select {
	case body := <-received:
		var payload struct {
			Event string       `json:"event"`
			Order models.Order `json:"order"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "new_order", payload.Event)
		assert.Equal(t, uint(7), payload.Order.ID)
		assert.Equal(t, "Ada Customer", payload.Order.CustomerName)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was never delivered")
	}
}

func TestOrderCreatedWithoutWebhookConfigured(t *testing.T) {
	notifier := NewNotifier("")
	// No webhook URL: fan-out still works and nothing panics.
	called := false
	defer notifier.OnOrderCreated(func(models.Order) { called = true })()

	notifier.OrderCreated(models.Order{Model: gorm.Model{ID: 1}})
	assert.True(t, called)
}

func TestOrderStatusChangedReportsWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewNotifier(server.URL)
	err := notifier.OrderStatusChanged(models.Order{Model: gorm.Model{ID: 3}})
	assert.Error(t, err)

	// And no webhook configured means nothing to fail.
	assert.NoError(t, NewNotifier("").OrderStatusChanged(models.Order{}))
}
