package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/initializers"
	"github.com/savoria/savoria-api/models"
	"github.com/savoria/savoria-api/services"
)

type submitOrderBody struct {
	Customer    services.CustomerInfo `json:"customer"`
	Fulfillment string                `json:"fulfillment"`
	Payment     string                `json:"paymentMethod"`
}

// SubmitOrder turns the session's cart into a persisted order. The total
// is always recomputed from the cart on the server; any total a client
// sends along is ignored.
func SubmitOrder(ctx *gin.Context) {
	var body submitOrderBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("JSON binding error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := ctx.GetHeader(cartSessionHeader)
	cart := cartSessions.Get(sessionID)
	if cart == nil {
		cart = services.NewCart()
	}

	requestCtx, cancel := context.WithTimeout(ctx.Request.Context(), 30*time.Second)
	defer cancel()

	paymentSettings, err := settingsService.PaymentSettings(requestCtx)
	if err != nil {
		log.Println("Failed to load payment settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	input := services.SubmitOrderInput{
		Customer:    body.Customer,
		Fulfillment: body.Fulfillment,
		Payment:     body.Payment,
		Payments:    paymentSettings,
	}

	result, err := orderService.SubmitOrder(requestCtx, input, cart)
	if err != nil {
		var verr *services.ValidationError
		var perr *services.PersistenceError
		switch {
		case errors.As(err, &verr):
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message":       "Missing or invalid fields",
				"missingFields": verr.Fields,
			})
		case errors.As(err, &perr):
			log.Println("Order persistence failed:", perr)
			response := gin.H{"message": "Failed to save order"}
			if perr.Incomplete {
				response["message"] = "Order was created but its items were not saved"
				response["orderId"] = perr.OrderID
				response["incomplete"] = true
			}
			sendJSONResponse(ctx, http.StatusInternalServerError, response)
		default:
			log.Println("Order submission failed:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	cartSessions.Discard(sessionID)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"orderId": result.Order.ID,
		"total":   result.Order.TotalAmount,
		"status":  result.Order.Status,
		"outcome": result.Outcome,
	})
}

// GetOrders lists orders for the admin dashboard, newest first.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("OrderItems")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasPrevPage": page > 1,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("OrderItems").First(&order, orderId)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus confirms or cancels a pending order. Orders that
// already left pending are rejected, never silently rewritten.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := orderService.SetOrderStatus(ctx.Request.Context(), uint(orderId), orderStatusData.Status)
	if err != nil {
		var terr *services.InvalidStateTransitionError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		case errors.As(err, &terr):
			sendJSONResponse(ctx, http.StatusConflict, gin.H{
				"message":       "Order status can no longer be changed",
				"currentStatus": terr.From,
			})
		default:
			log.Println("Failed to update order status:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}

// GetPendingOrderCount backs the dashboard badge showing how many orders
// still need a decision.
func GetPendingOrderCount(ctx *gin.Context) {
	var count int64
	result := initializers.DB.
		Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&count)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count pending orders", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"pendingOrderCount": count})
}

// StreamOrders pushes newly created orders to the admin dashboard over
// server-sent events. The subscription is dropped as soon as the client
// disconnects so closed dashboards stop consuming deliveries.
func StreamOrders(ctx *gin.Context) {
	events := make(chan models.Order, 8)
	unsubscribe := notifier.OnOrderCreated(func(order models.Order) {
		select {
		case events <- order:
		default:
			// Slow consumer; the dashboard refetches on reconnect anyway.
		}
	})
	defer unsubscribe()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case order := <-events:
			ctx.SSEvent("new_order", order)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
