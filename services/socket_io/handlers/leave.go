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

// HandleLeaveRoom removes the caller from their room. Host departure is
// fatal for the whole session: everyone gets host_left and the room is torn
// down, rather than silently electing a replacement.
func HandleLeaveRoom(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.GetSession(client.Id())
		if !exists {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Not in a room")
			return
		}
		leaveRoom(s, redisClient, wd, client, sio, session, "left")
	}
}

// HandleDisconnecting runs when a socket drops. Same path as a voluntary
// leave; running it twice is harmless.
func HandleDisconnecting(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, exists := sio.GetSession(client.Id())
		if exists {
			log.Printf("[DISCONNECT] Player %s disconnected from room %s", session.PlayerID, session.RoomID)
			leaveRoom(s, redisClient, wd, client, sio, session, "disconnected")
		}
		if session != nil {
			sio.RemoveConnection(session.PlayerID)
		}
		sio.ClearSession(client.Id())
	}
}

func leaveRoom(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket, sio *socketio_types.SocketServer,
	session *socketio_types.PlayerSession, reason string) {

	result, err := s.RemovePlayer(session.PlayerID)
	if err != nil {
		log.Printf("[LEAVE-ERROR] Error removing player %s: %v", session.PlayerID, err)
		socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error leaving room")
		return
	}

	client.Leave(socket.Room(session.RoomID))
	sio.ClearSession(client.Id())
	sio.RemoveConnection(session.PlayerID)
	if redisClient != nil {
		if err := redisClient.DeletePresence(session.PlayerID); err != nil {
			log.Printf("[LEAVE] Error dropping presence for %s: %v", session.PlayerID, err)
		}
	}

	if result == nil {
		// Player was already gone, nothing else to tear down
		return
	}

	log.Printf("[LEAVE] Player %s %s room %s (host=%v, empty=%v)",
		session.PlayerID, reason, result.RoomID, result.WasHost, result.RoomEmpty)

	if result.RoomEmpty {
		wd.Untrack(result.RoomID)
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
		return
	}

	if result.WasHost {
		// Fatal: the session does not survive its host
		socketio_utils.EmitToRoom(sio.Sio_server, result.RoomID, "host_left", gin.H{
			"room_id": result.RoomID,
			"message": "The host left, the room is closing",
		})
		evictRemaining(s, redisClient, wd, sio, result.RoomID)
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
		return
	}

	socketio_utils.EmitToRoom(sio.Sio_server, result.RoomID, "player_left", gin.H{
		"room_id":   result.RoomID,
		"player_id": session.PlayerID,
		"reason":    reason,
	})

	fresh, err := s.GetRoom(result.RoomID)
	if err == nil && fresh != nil {
		snapshot := socketio_utils.BuildSnapshot(fresh)
		sio.Sio_server.To(socket.Room(result.RoomID)).Emit("room_update", snapshot)
	}
	wd.Touch(result.RoomID)
	socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
}

// evictRemaining clears out everyone still in a room after a fatal host
// departure and deletes the room.
func evictRemaining(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, sio *socketio_types.SocketServer, roomID string) {

	room, err := s.GetRoom(roomID)
	if err != nil || room == nil {
		return
	}
	for _, p := range room.Players {
		if peer, exists := sio.GetConnection(p.ID); exists {
			peer.Emit("force_disconnect", gin.H{"room_id": roomID, "reason": "host left"})
			peer.Leave(socket.Room(roomID))
			sio.ClearSession(peer.Id())
		}
		sio.RemoveConnection(p.ID)
		if redisClient != nil {
			if err := redisClient.DeletePresence(p.ID); err != nil {
				log.Printf("[LEAVE] Error dropping presence for %s: %v", p.ID, err)
			}
		}
	}
	if err := s.RemoveAllPlayers(roomID); err != nil {
		log.Printf("[LEAVE-ERROR] Error tearing down room %s: %v", roomID, err)
	}
	wd.Untrack(roomID)
}
