package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/savoria/savoria-api/initializers"
	"github.com/savoria/savoria-api/models"
	"github.com/savoria/savoria-api/services"
)

// Carts are server side, keyed by an opaque session id the client echoes
// back in this header. The first add creates the session.
const cartSessionHeader = "X-Cart-Session"

func cartView(sessionID string, cart *services.Cart) gin.H {
	return gin.H{
		"sessionId": sessionID,
		"items":     cart.Lines(),
		"total":     cart.Total().Round(2),
	}
}

func requireCartSession(ctx *gin.Context) (string, *services.Cart, bool) {
	sessionID := ctx.GetHeader(cartSessionHeader)
	if sessionID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing "+cartSessionHeader+" header")
		return "", nil, false
	}
	cart := cartSessions.Get(sessionID)
	if cart == nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart session not found")
		return "", nil, false
	}
	return sessionID, cart, true
}

// AddCartItem puts a menu item in the session's cart, starting a new
// session when the client has none yet. Adding the same item again bumps
// its quantity.
func AddCartItem(ctx *gin.Context) {
	var body struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var item models.MenuItem
	result := initializers.DB.First(&item, body.MenuItemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Menu item not found")
		} else {
			log.Println("Database error fetching menu item:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}
	if !item.Available {
		sendErrorResponse(ctx, http.StatusBadRequest, "Menu item is not available")
		return
	}

	sessionID := ctx.GetHeader(cartSessionHeader)
	cart := cartSessions.Get(sessionID)
	if cart == nil {
		sessionID, cart = cartSessions.NewSession()
	}

	cart.AddItem(item)
	sendJSONResponse(ctx, http.StatusOK, cartView(sessionID, cart))
}

func GetCart(ctx *gin.Context) {
	sessionID, cart, ok := requireCartSession(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, cartView(sessionID, cart))
}

// UpdateCartItem replaces a line's quantity. Quantities below 1 leave the
// line untouched; removal has its own endpoint.
func UpdateCartItem(ctx *gin.Context) {
	sessionID, cart, ok := requireCartSession(ctx)
	if !ok {
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart.UpdateQuantity(uint(itemId), body.Quantity)
	sendJSONResponse(ctx, http.StatusOK, cartView(sessionID, cart))
}

func RemoveCartItem(ctx *gin.Context) {
	sessionID, cart, ok := requireCartSession(ctx)
	if !ok {
		return
	}

	itemId, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	cart.RemoveItem(uint(itemId))
	sendJSONResponse(ctx, http.StatusOK, cartView(sessionID, cart))
}
