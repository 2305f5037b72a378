package socketio_utils

import (
	models "Lingo/models/postgres"
	game_constants "Lingo/constants/game"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// RoomSnapshot is the complete authoritative room state every broadcast
// carries. Clients must replace their local state with it wholesale, never
// patch it in, so out-of-order delivery cannot corrupt them.
type RoomSnapshot struct {
	RoomID                 string           `json:"room_id"`
	GameState              string           `json:"game_state"`
	GameMode               string           `json:"game_mode"`
	HostLanguage           *string          `json:"host_language"`
	WinnerID               *string          `json:"winner_id"`
	TargetScore            int              `json:"target_score"`
	QuestionCount          int              `json:"question_count"`
	CooperationLives       int              `json:"cooperation_lives"`
	CooperationScore       int              `json:"cooperation_score"`
	CurrentChallengePlayer *string          `json:"current_challenge_player"`
	CurrentCategory        *string          `json:"current_category"`
	Capacity               int              `json:"capacity"`
	Players                []PlayerSnapshot `json:"players"`
}

type PlayerSnapshot struct {
	PlayerID        string          `json:"player_id"`
	Name            string          `json:"name"`
	Language        *string         `json:"language"`
	Ready           bool            `json:"ready"`
	Score           int             `json:"score"`
	IsHost          bool            `json:"is_host"`
	CurrentQuestion json.RawMessage `json:"current_question,omitempty"`
}

// BuildSnapshot converts a loaded room into its broadcast form.
func BuildSnapshot(room *models.GameRoom) *RoomSnapshot {
	snapshot := &RoomSnapshot{
		RoomID:                 room.ID,
		GameState:              room.GameState,
		GameMode:               room.GameMode,
		HostLanguage:           room.HostLanguage,
		WinnerID:               room.WinnerID,
		TargetScore:            room.TargetScore,
		QuestionCount:          room.QuestionCount,
		CooperationLives:       room.CooperationLives,
		CooperationScore:       room.CooperationScore,
		CurrentChallengePlayer: room.CurrentChallengePlayer,
		CurrentCategory:        room.CurrentCategory,
		Capacity:               game_constants.MaxPlayersPerRoom,
		Players:                make([]PlayerSnapshot, 0, len(room.Players)),
	}
	for _, p := range room.Players {
		snapshot.Players = append(snapshot.Players, PlayerSnapshot{
			PlayerID:        p.ID,
			Name:            p.Name,
			Language:        p.Language,
			Ready:           p.Ready,
			Score:           p.Score,
			IsHost:          p.IsHost,
			CurrentQuestion: json.RawMessage(p.CurrentQuestion),
		})
	}
	return snapshot
}

// AckAndBroadcast replies to the caller with the room snapshot and pushes
// the same snapshot to every subscriber of the room.
func AckAndBroadcast(sio SioBroadcaster, client *socket.Socket, snapshot *RoomSnapshot) {
	client.Emit("room_update", snapshot)
	sio.To(socket.Room(snapshot.RoomID)).Emit("room_update", snapshot)
}

// SioBroadcaster is the slice of the socket server the utils need: room
// targeting plus the whole-namespace broadcast. Matches *socket.Server,
// whose Emit returns the server for chaining.
type SioBroadcaster interface {
	To(room ...socket.Room) *socket.BroadcastOperator
	Emit(event string, args ...interface{}) *socket.Server
}

// EmitToRoom pushes an out-of-band event to every subscriber of a room.
func EmitToRoom(sio SioBroadcaster, roomID, event string, payload gin.H) {
	sio.To(socket.Room(roomID)).Emit(event, payload)
}
