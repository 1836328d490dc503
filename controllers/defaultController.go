package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Savoria restaurant API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create an account (first account becomes admin)
- POST "/auth/login" - Log in and receive a token

MENU
- GET "/menu" - List available menu items (filter with ?category=)
- GET "/menu/:id" - Get one menu item

CART
- POST "/cart/items" - Add a menu item to the cart
- GET "/cart" - View the cart
- PATCH "/cart/items/:itemId" - Change a line's quantity
- DELETE "/cart/items/:itemId" - Remove a line

ORDERING
- POST "/order" - Submit the cart as an order
- GET "/settings/payments" - Check whether card payment is enabled
- GET "/location/reverse-geocode" - Resolve a map pin to an address
- POST "/reservation" - Request a table reservation

ADMIN (requires admin token)
- POST/PUT/DELETE "/admin/menu..." - Manage menu items
- POST "/admin/menu/images" - Upload a dish photo
- GET "/admin/orders" - List orders
- PATCH "/admin/orders/:orderId/status" - Confirm or cancel an order
- GET "/admin/orders/stream" - Live feed of incoming orders
- GET/PUT "/admin/settings/..." - Payments and maps configuration`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
