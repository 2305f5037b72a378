package handlers

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	redis_client "Lingo/services/redis"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"log"

	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinRoom adds the caller to an existing room. Late joins are locked
// out: a room that already started playing rejects everyone.
func HandleJoinRoom(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.ParsePayload(args)
		if !ok {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing command payload")
			return
		}

		roomID, ok := payload.String("room_id")
		if !ok || roomID == "" {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing room id")
			return
		}
		name, ok := payload.String("name")
		if !ok || name == "" {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing player name")
			return
		}
		wantHost := payload.Bool("want_host")

		log.Printf("[JOIN] Player %s joining room %s", name, roomID)

		room, err := s.GetRoom(roomID)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error fetching room %s: %v", roomID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Database error")
			return
		}
		if room == nil {
			socketio_utils.EmitError(client, socketio_utils.KindNotFound, "Room not found")
			return
		}
		if room.GameState == game_constants.StatePlaying {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Game already in progress")
			return
		}
		if len(room.Players) >= game_constants.MaxPlayersPerRoom {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Room is full")
			return
		}

		player := &models.RoomPlayer{ID: uuid.NewString(), Name: name}
		added, err := s.AddPlayer(roomID, player, wantHost)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error adding player to room %s: %v", roomID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error joining room")
			return
		}
		if !added {
			// Room vanished, started or filled up between the check and
			// the insert
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Room can no longer be joined")
			return
		}

		registerSession(sio, redisClient, client, player.ID, roomID, name)
		wd.Touch(roomID)
		s.TouchActivity(roomID, player.ID)

		fresh, err := s.GetRoom(roomID)
		if err != nil || fresh == nil {
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error loading room")
			return
		}

		log.Printf("[JOIN-SUCCESS] Player %s (%s) joined room %s", name, player.ID, roomID)
		socketio_utils.AckAndBroadcast(sio.Sio_server, client, socketio_utils.BuildSnapshot(fresh))
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
	}
}
