package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/controllers"
	"github.com/savoria/savoria-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/menu", controllers.CreateMenuItem)
		admin.PUT("/menu/:id", controllers.UpdateMenuItem)
		admin.DELETE("/menu/:id", controllers.DeleteMenuItem)
		admin.POST("/menu/images", controllers.UploadMenuItemImage)

		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/pending-count", controllers.GetPendingOrderCount)
		admin.GET("/orders/stream", controllers.StreamOrders)
		admin.GET("/orders/:orderId", controllers.GetOrderById)
		admin.PATCH("/orders/:orderId/status", controllers.UpdateOrderStatus)

		admin.GET("/settings/payments", controllers.GetPaymentSettings)
		admin.PUT("/settings/payments", controllers.UpdatePaymentSettings)
		admin.GET("/settings/maps", controllers.GetMapsSettings)
		admin.PUT("/settings/maps", controllers.UpdateMapsSettings)

		admin.GET("/reservations", controllers.GetReservations)
	}
}
