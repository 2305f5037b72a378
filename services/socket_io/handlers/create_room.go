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

// HandleCreateRoom creates a room (idempotent on the supplied code) and
// joins the caller into it as its first player, which makes them host.
func HandleCreateRoom(s *store.RoomStore, redisClient *redis_client.RedisClient,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		payload, ok := socketio_utils.ParsePayload(args)
		if !ok {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing command payload")
			return
		}

		name, ok := payload.String("name")
		if !ok || name == "" {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing player name")
			return
		}

		roomID, _ := payload.String("room_id")
		targetScore, hasScore := payload.Int("target_score")
		if hasScore && !game_constants.IsValidTargetScore(targetScore) {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Target score must be 100, 250 or 500")
			return
		}

		log.Printf("[CREATE] Player %s creating room %q", name, roomID)

		room, err := s.CreateRoom(roomID, store.RoomOptions{TargetScore: targetScore})
		if err != nil {
			log.Printf("[CREATE-ERROR] Error creating room: %v", err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error creating room")
			return
		}

		// The idempotent return may hand back someone else's room, so the
		// join preconditions apply here exactly as they do on join_room
		if room.GameState == game_constants.StatePlaying {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Game already in progress")
			return
		}
		if len(room.Players) >= game_constants.MaxPlayersPerRoom {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Room is full")
			return
		}

		player := &models.RoomPlayer{ID: uuid.NewString(), Name: name}
		added, err := s.AddPlayer(room.ID, player, true)
		if err != nil {
			log.Printf("[CREATE-ERROR] Error joining created room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error joining room")
			return
		}
		if !added {
			socketio_utils.EmitError(client, socketio_utils.KindForbidden, "Room can no longer be joined")
			return
		}

		registerSession(sio, redisClient, client, player.ID, room.ID, name)
		wd.Track(room.ID)
		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)

		fresh, err := s.GetRoom(room.ID)
		if err != nil || fresh == nil {
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error loading room")
			return
		}

		log.Printf("[CREATE-SUCCESS] Room %s created by %s (player %s)", room.ID, name, player.ID)
		socketio_utils.AckAndBroadcast(sio.Sio_server, client, socketio_utils.BuildSnapshot(fresh))
		socketio_utils.BroadcastDirectory(s, redisClient, sio.Sio_server)
	}
}

// registerSession wires the transient per-socket bookkeeping after a player
// enters a room: the socket.io room subscription, the session map and the
// presence marker.
func registerSession(sio *socketio_types.SocketServer, redisClient *redis_client.RedisClient,
	client *socket.Socket, playerID, roomID, name string) {
	client.Join(socket.Room(roomID))
	sio.AddConnection(playerID, client)
	sio.SetSession(client.Id(), &socketio_types.PlayerSession{
		PlayerID: playerID,
		RoomID:   roomID,
		Name:     name,
	})
	if redisClient != nil {
		if err := redisClient.SavePresence(playerID, roomID); err != nil {
			log.Printf("[SESSION] Error saving presence for %s: %v", playerID, err)
		}
	}
}
