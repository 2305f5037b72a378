package handlers

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"Lingo/services/game"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"Lingo/services/words"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleCooperationAnswer resolves a submitted category word. A rejected
// word (invalid or already used) changes nothing; the same player retries.
func HandleCooperationAnswer(s *store.RoomStore, wordsSvc words.Service,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, ok := socketio_utils.RequireSession(sio, client)
		if !ok {
			return
		}
		payload, ok := socketio_utils.ParsePayload(args)
		if !ok {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing command payload")
			return
		}
		answer, ok := payload.String("answer")
		if !ok || answer == "" {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing answer")
			return
		}

		room, player, err := cooperationRoom(s, client, session)
		if err != nil {
			return
		}

		outcome, err := game.ResolveCooperationAnswer(s, wordsSvc, room, player.ID, answer)
		if err != nil {
			log.Printf("[COOP-ERROR] Error resolving answer in room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error resolving answer")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)

		if outcome.Rejected {
			// Same player retries, but the snapshot still goes out so
			// every client reconverges on the authoritative state
			client.Emit("cooperation_rejected", gin.H{
				"room_id": room.ID,
				"answer":  answer,
			})
			ackWithFreshRoom(s, client, sio, room.ID)
			return
		}

		finishCooperationAction(s, client, sio, room.ID)
	}
}

// HandleCooperationTimeout burns a life when the active player's countdown
// expired. The client owning the clock submits this explicitly; the server
// treats it like any other command.
func HandleCooperationTimeout(s *store.RoomStore, wordsSvc words.Service,
	wd *watchdog.Watchdog, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		session, ok := socketio_utils.RequireSession(sio, client)
		if !ok {
			return
		}

		room, player, err := cooperationRoom(s, client, session)
		if err != nil {
			return
		}

		outcome, err := game.ResolveCooperationTimeout(s, wordsSvc, room, player.ID)
		if err != nil {
			log.Printf("[COOP-TIMEOUT-ERROR] Error in room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error resolving timeout")
			return
		}

		if outcome.GameOver {
			log.Printf("[COOP] Room %s ran out of lives at score %d", room.ID, outcome.Score)
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		finishCooperationAction(s, client, sio, room.ID)
	}
}

var errNotRunning = errors.New("no running cooperative game")

// cooperationRoom loads the caller's room and insists it is a running
// cooperative game.
func cooperationRoom(s *store.RoomStore, client *socket.Socket,
	session *socketio_types.PlayerSession) (*models.GameRoom, *models.RoomPlayer, error) {
	room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
	if err != nil {
		return nil, nil, err
	}
	if room.GameState != game_constants.StatePlaying {
		socketio_utils.EmitError(client, socketio_utils.KindConflict, "Game is not running")
		return nil, nil, errNotRunning
	}
	if room.GameMode != game_constants.ModeCooperation {
		socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Not a cooperative game")
		return nil, nil, errNotRunning
	}
	return room, player, nil
}

// finishCooperationAction broadcasts the new snapshot and, if the game is
// still on, the next challenge.
func finishCooperationAction(s *store.RoomStore, client *socket.Socket,
	sio *socketio_types.SocketServer, roomID string) {
	fresh, err := s.GetRoom(roomID)
	if err != nil || fresh == nil {
		socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error loading room")
		return
	}
	socketio_utils.AckAndBroadcast(sio.Sio_server, client, socketio_utils.BuildSnapshot(fresh))

	if fresh.GameState == game_constants.StatePlaying {
		broadcastChallenge(sio, fresh.ID, fresh.CurrentChallengePlayer, fresh.CurrentCategory,
			fresh.CooperationLives, fresh.CooperationScore)
	}
}
