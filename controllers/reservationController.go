package controllers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/initializers"
	"github.com/savoria/savoria-api/models"
	"github.com/savoria/savoria-api/utils"
)

// CreateReservation stores a table reservation request from the landing
// page. The confirmation email is best effort; a failed send never fails
// the reservation.
func CreateReservation(ctx *gin.Context) {
	var reservation models.Reservation
	if err := ctx.ShouldBindJSON(&reservation); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var missing []string
	if reservation.Name == "" {
		missing = append(missing, "name")
	}
	if reservation.Phone == "" {
		missing = append(missing, "phone")
	}
	if reservation.Date == "" {
		missing = append(missing, "date")
	}
	if reservation.Time == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message":       "Missing required fields",
			"missingFields": missing,
		})
		return
	}

	if result := initializers.DB.Create(&reservation); result.Error != nil {
		log.Println("Reservation creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save reservation")
		return
	}

	if reservation.Email != "" {
		go func(r models.Reservation) {
			emailData := utils.EmailData{
				Name:    r.Name,
				Message: "We received your reservation request and will confirm it shortly.",
				Details: r.Date + " at " + r.Time,
			}
			templatePath := filepath.Join("templates", "reservation_received.html")
			if err := utils.SendEmail(r.Email, "Reservation Received", emailData, templatePath); err != nil {
				log.Println("Error sending reservation email:", err)
			}
		}(reservation)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":       "Reservation received. We'll confirm it shortly.",
		"reservationId": reservation.ID,
	})
}

// GetReservations lists reservation requests for the admin dashboard.
func GetReservations(ctx *gin.Context) {
	var reservations []models.Reservation
	result := initializers.DB.Order("created_at desc").Find(&reservations)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch reservations", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"reservations": reservations})
}
