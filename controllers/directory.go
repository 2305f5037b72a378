package controllers

import (
	game_constants "Lingo/constants/game"
	redis_client "Lingo/services/redis"
	"Lingo/services/store"
	"Lingo/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping is the health check.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GetDirectory returns the joinable rooms: lobby state, recently active,
// neither empty nor full. Served from the Redis cache when warm.
func GetDirectory(s *store.RoomStore, redisClient *redis_client.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient != nil {
			if entries, err := redisClient.GetDirectory(); err == nil {
				c.JSON(http.StatusOK, gin.H{"rooms": entries})
				return
			}
		}

		entries, err := s.JoinableRooms()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rooms"})
			return
		}
		if redisClient != nil {
			// Cache failures do not matter here
			_ = redisClient.SaveDirectory(entries)
		}
		c.JSON(http.StatusOK, gin.H{"rooms": entries})
	}
}

// GetRoomInfo returns the public information of one room by its code.
func GetRoomInfo(s *store.RoomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		room, err := utils.CheckRoomExists(s, code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying database"})
			return
		}
		if room == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room_id":      room.ID,
			"game_state":   room.GameState,
			"game_mode":    room.GameMode,
			"player_count": len(room.Players),
			"capacity":     game_constants.MaxPlayersPerRoom,
			"target_score": room.TargetScore,
		})
	}
}
