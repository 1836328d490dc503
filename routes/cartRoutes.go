package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.POST("/cart/items", controllers.AddCartItem)
	server.GET("/cart", controllers.GetCart)
	server.PATCH("/cart/items/:itemId", controllers.UpdateCartItem)
	server.DELETE("/cart/items/:itemId", controllers.RemoveCartItem)
}
