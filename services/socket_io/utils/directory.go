package socketio_utils

import (
	redis_client "Lingo/services/redis"
	"Lingo/services/store"
	"log"

	"github.com/gin-gonic/gin"
)

// BroadcastDirectory recomputes the joinable-room list, refreshes the Redis
// cache and pushes the result to every connected client. Called after every
// command that can change room visibility (create, join, leave, start,
// restart) and by the watchdog after evictions.
func BroadcastDirectory(s *store.RoomStore, redisClient *redis_client.RedisClient, sio SioBroadcaster) {
	entries, err := s.JoinableRooms()
	if err != nil {
		log.Printf("[DIRECTORY-ERROR] Error recomputing directory: %v", err)
		return
	}

	if redisClient != nil {
		if err := redisClient.SaveDirectory(entries); err != nil {
			log.Printf("[DIRECTORY] Error caching directory in Redis: %v", err)
			// cache only, keep broadcasting
		}
	}

	sio.Emit("directory_update", gin.H{"rooms": entries})
}
