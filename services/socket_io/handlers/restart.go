package handlers

import (
	redis_client "Lingo/services/redis"
	"Lingo/services/game"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleRestartGame takes a room back to a fresh lobby. Host only. Scores,
// readiness and questions are wiped, the target score returns to default.
func HandleRestartGame(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, ok := socketio_utils.RequireSession(sio, client)
		if !ok {
			return
		}
		room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
		if err != nil {
			return
		}
		if !socketio_utils.RequireHost(client, player) {
			return
		}

		log.Printf("[RESTART] Host %s restarting room %s", player.ID, room.ID)

		if err := game.ResetRoom(s, room); err != nil {
			log.Printf("[RESTART-ERROR] Error resetting room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error restarting game")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)

		// Back in lobby means joinable again
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
	}
}
