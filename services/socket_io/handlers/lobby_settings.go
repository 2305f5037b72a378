package handlers

import (
	game_constants "Lingo/constants/game"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleUpdateLanguage sets the caller's quiz language. Picking a language
// for the first time clears readiness so a stale "ready" cannot carry over
// into the fresh pick.
func HandleUpdateLanguage(s *store.RoomStore, wd *watchdog.Watchdog,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
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
		language, ok := payload.String("language")
		if !ok || language == "" {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing language")
			return
		}

		room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
		if err != nil {
			return
		}

		fields := map[string]interface{}{"language": language}
		if player.Language == nil {
			fields["ready"] = false
		}
		if err := s.UpdatePlayer(player.ID, fields); err != nil {
			log.Printf("[LANGUAGE-ERROR] %v", err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error updating language")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)
	}
}

// HandleToggleReady flips the caller's readiness. Requires a language pick.
func HandleToggleReady(s *store.RoomStore, wd *watchdog.Watchdog,
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
		if player.Language == nil {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Pick a language before readying up")
			return
		}

		if err := s.UpdatePlayer(player.ID, map[string]interface{}{
			"ready": !player.Ready,
		}); err != nil {
			log.Printf("[READY-ERROR] %v", err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error toggling ready")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)
	}
}

// HandleUpdateTargetScore lets the host change the winning score.
func HandleUpdateTargetScore(s *store.RoomStore, wd *watchdog.Watchdog,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
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

		room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
		if err != nil {
			return
		}
		if !socketio_utils.RequireHost(client, player) {
			return
		}

		score, ok := payload.Int("target_score")
		if !ok || !game_constants.IsValidTargetScore(score) {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Target score must be 100, 250 or 500")
			return
		}

		if err := s.UpdateRoom(room.ID, map[string]interface{}{
			"target_score": score,
		}); err != nil {
			log.Printf("[TARGET-SCORE-ERROR] %v", err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error updating target score")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)
	}
}

// HandleUpdateGameMode lets the host pick the mode while still in the lobby.
func HandleUpdateGameMode(s *store.RoomStore, wd *watchdog.Watchdog,
	client *socket.Socket, sio *socketio_types.SocketServer) func(args ...interface{}) {
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

		room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
		if err != nil {
			return
		}
		if !socketio_utils.RequireHost(client, player) {
			return
		}
		if room.GameState != game_constants.StateLobby {
			socketio_utils.EmitError(client, socketio_utils.KindConflict, "Game already started")
			return
		}

		mode, ok := payload.String("game_mode")
		if !ok || !game_constants.IsValidGameMode(mode) {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Unknown game mode")
			return
		}

		if err := s.UpdateRoom(room.ID, map[string]interface{}{
			"game_mode": mode,
		}); err != nil {
			log.Printf("[GAME-MODE-ERROR] %v", err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error updating game mode")
			return
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)
	}
}

// ackWithFreshRoom reloads a room and answers the caller plus the room
// channel with the resulting snapshot.
func ackWithFreshRoom(s *store.RoomStore, client *socket.Socket,
	sio *socketio_types.SocketServer, roomID string) {
	fresh, err := s.GetRoom(roomID)
	if err != nil || fresh == nil {
		socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error loading room")
		return
	}
	socketio_utils.AckAndBroadcast(sio.Sio_server, client, socketio_utils.BuildSnapshot(fresh))
}
