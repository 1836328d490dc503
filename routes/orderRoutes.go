package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/controllers"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/order", controllers.SubmitOrder)
	server.GET("/settings/payments", controllers.GetPublicPaymentSettings)
	server.GET("/location/reverse-geocode", controllers.ReverseGeocode)
	server.POST("/reservation", controllers.CreateReservation)
}
