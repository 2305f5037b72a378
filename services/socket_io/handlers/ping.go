package handlers

import (
	redis_client "Lingo/services/redis"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleActivityPing is a pure liveness touch: it resets the watchdog clock
// and the persisted timestamps and changes nothing else.
func HandleActivityPing(s *store.RoomStore, wd *watchdog.Watchdog,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.GetSession(client.Id())
		if !exists {
			return
		}
		wd.Touch(session.RoomID)
		s.TouchActivity(session.RoomID, session.PlayerID)
		client.Emit("pong", gin.H{"room_id": session.RoomID})
	}
}

// HandleTypingPreview relays the active player's in-progress keystrokes to
// the rest of the room. Best effort, never persisted, no room state touched.
func HandleTypingPreview(client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.GetSession(client.Id())
		if !exists {
			return
		}
		payload, ok := socketio_utils.ParsePayload(args)
		if !ok {
			return
		}
		text, _ := payload.String("text")
		// To() on the socket excludes the sender
		client.To(socket.Room(session.RoomID)).Emit("typing_preview", gin.H{
			"room_id":   session.RoomID,
			"player_id": session.PlayerID,
			"text":      text,
		})
	}
}

// HandleGetDirectory answers a direct directory poll with the joinable-room
// list, serving the Redis cache when it is warm.
func HandleGetDirectory(s *store.RoomStore, redisClient *redis_client.RedisClient,
	client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		if redisClient != nil {
			if entries, err := redisClient.GetDirectory(); err == nil {
				client.Emit("directory_update", gin.H{"rooms": entries})
				return
			}
		}
		entries, err := s.JoinableRooms()
		if err != nil {
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error listing rooms")
			return
		}
		if redisClient != nil {
			if err := redisClient.SaveDirectory(entries); err != nil {
				log.Printf("[DIRECTORY] Error caching directory: %v", err)
			}
		}
		client.Emit("directory_update", gin.H{"rooms": entries})
	}
}
