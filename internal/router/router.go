package router

import (
	"github.com/gin-gonic/gin"

	"github.com/mealmate/backend/internal/api"
	"github.com/mealmate/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(deps api.Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	api.SetupAPI(router, deps)

	return router
}
