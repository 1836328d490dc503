package controllers

import (
	"os"

	"github.com/savoria/savoria-api/initializers"
	"github.com/savoria/savoria-api/services"
)

var (
	cartSessions    = services.NewCartStore()
	notifier        *services.Notifier
	orderService    *services.OrderService
	settingsService *services.SettingsService
	geocoder        *services.Geocoder
)

// InitServices wires the service layer once the database connection
// exists. Must run after initializers.ConnectToDB.
func InitServices() {
	notifier = services.NewNotifier(os.Getenv("ORDER_WEBHOOK_URL"))
	orderService = services.NewOrderService(services.NewGormOrderStore(initializers.DB), notifier)
	settingsService = services.NewSettingsService(initializers.DB)
	geocoder = services.NewGeocoder(settingsService)
}
