package routes

import (
	"Lingo/controllers"
	redis_client "Lingo/services/redis"
	"Lingo/services/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the REST surface: health, the room directory and
// per-room public info. Gameplay itself goes over socket.io.
func SetupRoutes(router *gin.Engine, s *store.RoomStore, redisClient *redis_client.RedisClient) {
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/directory", controllers.GetDirectory(s, redisClient))

	api.GET("/rooms/:code", controllers.GetRoomInfo(s))
}
