package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/services"
)

// GetPublicPaymentSettings tells the ordering page whether card payment
// is selectable. Only the enabled flag and the publishable key leave the
// server; the rest of the blob stays admin-only.
func GetPublicPaymentSettings(ctx *gin.Context) {
	settings, err := settingsService.PaymentSettings(ctx.Request.Context())
	if err != nil {
		log.Println("Failed to load payment settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"enabled":        settings.Enabled,
		"publishableKey": settings.PublishableKey,
	})
}

func GetPaymentSettings(ctx *gin.Context) {
	settings, err := settingsService.PaymentSettings(ctx.Request.Context())
	if err != nil {
		log.Println("Failed to load payment settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"settings": settings})
}

func UpdatePaymentSettings(ctx *gin.Context) {
	var settings services.PaymentSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := settingsService.SavePaymentSettings(ctx.Request.Context(), settings); err != nil {
		log.Println("Failed to save payment settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment settings saved successfully."})
}

func GetMapsSettings(ctx *gin.Context) {
	settings, err := settingsService.MapsSettings(ctx.Request.Context())
	if err != nil {
		log.Println("Failed to load maps settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"settings": settings})
}

func UpdateMapsSettings(ctx *gin.Context) {
	var settings services.MapsSettings
	if err := ctx.ShouldBindJSON(&settings); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := settingsService.SaveMapsSettings(ctx.Request.Context(), settings); err != nil {
		log.Println("Failed to save maps settings:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Maps settings saved successfully."})
}

// ReverseGeocode resolves a picked map location into a delivery address
// for the checkout form.
func ReverseGeocode(ctx *gin.Context) {
	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid or missing lat parameter")
		return
	}
	lng, err := strconv.ParseFloat(ctx.Query("lng"), 64)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid or missing lng parameter")
		return
	}

	address, err := geocoder.ReverseGeocode(ctx.Request.Context(), lat, lng)
	if err != nil {
		log.Println("Reverse geocoding failed:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to resolve address for location")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"address": address})
}
