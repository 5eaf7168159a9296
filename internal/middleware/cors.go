package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS middleware to handle cross-origin requests from the Expo dev
// server and the web build.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:19006", "http://localhost:8081"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type", "Authorization", "Accept", "Origin", "User-Agent",
			"Cache-Control", "Keep-Alive", "X-Requested-With", "Pragma", "X-API-Version",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
