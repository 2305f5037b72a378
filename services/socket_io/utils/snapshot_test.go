package socketio_utils

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestBuildSnapshotCopiesRoomState(t *testing.T) {
	lang := "de"
	winner := "p2"
	room := &models.GameRoom{
		ID:            "ABC123",
		GameState:     game_constants.StateFinished,
		GameMode:      game_constants.ModeCompetition,
		HostLanguage:  &lang,
		WinnerID:      &winner,
		TargetScore:   250,
		QuestionCount: 7,
		Players: []*models.RoomPlayer{
			{ID: "p1", Name: "Ana", Language: &lang, Ready: true, Score: 40, IsHost: true},
			{ID: "p2", Name: "Ben", Score: 250},
		},
	}

	snapshot := BuildSnapshot(room)

	assert.Equal(t, "ABC123", snapshot.RoomID)
	assert.Equal(t, game_constants.StateFinished, snapshot.GameState)
	assert.Equal(t, game_constants.ModeCompetition, snapshot.GameMode)
	require.NotNil(t, snapshot.WinnerID)
	assert.Equal(t, "p2", *snapshot.WinnerID)
	assert.Equal(t, game_constants.MaxPlayersPerRoom, snapshot.Capacity)

	require.Len(t, snapshot.Players, 2)
	assert.Equal(t, "p1", snapshot.Players[0].PlayerID)
	assert.True(t, snapshot.Players[0].IsHost)
	assert.Equal(t, "p2", snapshot.Players[1].PlayerID)
	assert.Equal(t, 250, snapshot.Players[1].Score)
	assert.Nil(t, snapshot.Players[1].Language)
}

func TestBuildSnapshotPlayersNeverNil(t *testing.T) {
	snapshot := BuildSnapshot(&models.GameRoom{ID: "EMPTY1"})

	assert.NotNil(t, snapshot.Players)
	assert.Empty(t, snapshot.Players)

	// Marshals as [], not null, so clients can range over it blindly
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"players":[]`)
}

func TestBuildSnapshotOmitsEmptyQuestion(t *testing.T) {
	room := &models.GameRoom{
		ID:        "QQQ111",
		GameState: game_constants.StatePlaying,
		GameMode:  game_constants.ModePractice,
		Players: []*models.RoomPlayer{
			{ID: "p1", Name: "Ana", CurrentQuestion: datatypes.JSON(`{"word":"apfel"}`)},
			{ID: "p2", Name: "Ben"},
		},
	}

	raw, err := json.Marshal(BuildSnapshot(room))
	require.NoError(t, err)

	var decoded struct {
		Players []map[string]json.RawMessage `json:"players"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Players, 2)
	assert.Contains(t, decoded.Players[0], "current_question")
	assert.NotContains(t, decoded.Players[1], "current_question")
}

func TestParsePayload(t *testing.T) {
	payload, ok := ParsePayload([]interface{}{map[string]interface{}{"room_id": "R1"}})
	require.True(t, ok)
	value, ok := payload.String("room_id")
	assert.True(t, ok)
	assert.Equal(t, "R1", value)

	_, ok = ParsePayload(nil)
	assert.False(t, ok)

	_, ok = ParsePayload([]interface{}{"not a map"})
	assert.False(t, ok)
}

func TestPayloadAccessors(t *testing.T) {
	payload := Payload{
		"name":   "Ana",
		"score":  float64(250), // JSON numbers decode as float64
		"count":  3,
		"ready":  true,
		"absent": nil,
	}

	name, ok := payload.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)

	_, ok = payload.String("score")
	assert.False(t, ok)

	score, ok := payload.Int("score")
	assert.True(t, ok)
	assert.Equal(t, 250, score)

	count, ok := payload.Int("count")
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	_, ok = payload.Int("name")
	assert.False(t, ok)

	assert.True(t, payload.Bool("ready"))
	assert.False(t, payload.Bool("absent"))
	assert.False(t, payload.Bool("missing"))
}
