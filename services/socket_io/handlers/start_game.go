package handlers

import (
	game_constants "Lingo/constants/game"
	redis_client "Lingo/services/redis"
	"Lingo/services/game"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"Lingo/services/words"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStartGame moves a room from lobby to playing. Host only; every
// player must have a language and be ready.
func HandleStartGame(s *store.RoomStore, wordsSvc words.Service,
	redisClient *redis_client.RedisClient, wd *watchdog.Watchdog,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
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

		if err := game.CheckStartConditions(room); err != nil {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, err.Error())
			return
		}

		log.Printf("[START] Host %s starting room %s in mode %s", player.ID, room.ID, room.GameMode)

		if err := game.StartGame(s, wordsSvc, room); err != nil {
			log.Printf("[START-ERROR] Error starting room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error starting game")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)

		fresh, err := s.GetRoom(room.ID)
		if err != nil || fresh == nil {
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error loading room")
			return
		}
		socketio_utils.AckAndBroadcast(sio.Sio_server, client, socketio_utils.BuildSnapshot(fresh))

		if fresh.GameMode == game_constants.ModeCooperation {
			broadcastChallenge(sio, fresh.ID, fresh.CurrentChallengePlayer, fresh.CurrentCategory,
				fresh.CooperationLives, fresh.CooperationScore)
		}

		// Rooms in play disappear from the joinable list
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
	}
}

// broadcastChallenge announces whose turn it is and in which category.
func broadcastChallenge(sio *socketio_types.SocketServer, roomID string,
	challengePlayer, category *string, lives, score int) {
	payload := gin.H{
		"room_id":           roomID,
		"cooperation_lives": lives,
		"cooperation_score": score,
		"turn_seconds":      game_constants.CooperationTurnSeconds,
	}
	if challengePlayer != nil {
		payload["challenge_player"] = *challengePlayer
	}
	if category != nil {
		payload["category"] = *category
	}
	socketio_utils.EmitToRoom(sio.Sio_server, roomID, "cooperation_challenge", payload)
}
