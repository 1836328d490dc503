package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/savoria/savoria-api/controllers"
)

func MenuRoutes(server *gin.Engine) {
	server.GET("/menu", controllers.GetMenu)
	server.GET("/menu/:id", controllers.GetMenuItem)
}
