package handlers

import (
	game_constants "Lingo/constants/game"
	"Lingo/services/game"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"Lingo/services/words"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleSubmitAnswer resolves one quiz answer. The client owns the countdown
// and reports the remaining time; a timeout arrives as a submission with no
// matching answer and time_left zero.
func HandleSubmitAnswer(s *store.RoomStore, wordsSvc words.Service,
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

		room, player, err := socketio_utils.LoadRoomAndPlayer(s, client, session)
		if err != nil {
			return
		}
		if room.GameState != game_constants.StatePlaying {
			socketio_utils.EmitError(client, socketio_utils.KindConflict, "Game is not running")
			return
		}
		if room.GameMode != game_constants.ModePractice &&
			room.GameMode != game_constants.ModeCompetition {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Not a quiz game")
			return
		}

		answer, _ := payload.String("answer")
		correctAnswer, ok := payload.String("correct_answer")
		if !ok {
			socketio_utils.EmitError(client, socketio_utils.KindBadRequest, "Missing correct answer")
			return
		}
		timeLeft, _ := payload.Int("time_left")
		if timeLeft < 0 {
			timeLeft = 0
		}

		outcome, err := game.ResolveAnswer(s, wordsSvc, room, player, answer, correctAnswer, timeLeft)
		if err != nil {
			log.Printf("[ANSWER-ERROR] Error resolving answer in room %s: %v", room.ID, err)
			socketio_utils.EmitError(client, socketio_utils.KindInternal, "Error resolving answer")
			return
		}

		if outcome.Won {
			log.Printf("[ANSWER] Player %s won room %s with %d points", player.ID, room.ID, outcome.NewScore)
		}

		wd.Touch(room.ID)
		s.TouchActivity(room.ID, player.ID)
		ackWithFreshRoom(s, client, sio, room.ID)
	}
}
