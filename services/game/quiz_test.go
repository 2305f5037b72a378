package game

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswerCorrectEarnsTimeLeft(t *testing.T) {
	assert.Equal(t, 10, ScoreAnswer(0, true, 10))
	assert.Equal(t, 52, ScoreAnswer(50, true, 2))
}

func TestScoreAnswerCorrectEarnsAtLeastOnePoint(t *testing.T) {
	// Answering at the buzzer still pays
	assert.Equal(t, 1, ScoreAnswer(0, true, 0))
	assert.Equal(t, 6, ScoreAnswer(5, true, -3))
}

func TestScoreAnswerWrongCostsFivePoints(t *testing.T) {
	assert.Equal(t, 45, ScoreAnswer(50, false, 10))
}

func TestScoreAnswerNeverGoesNegative(t *testing.T) {
	assert.Equal(t, 0, ScoreAnswer(0, false, 10))
	assert.Equal(t, 0, ScoreAnswer(3, false, 0))

	// Arbitrary wrong-answer sequences stay at the floor
	score := 4
	for i := 0; i < 20; i++ {
		score = ScoreAnswer(score, false, 0)
		assert.GreaterOrEqual(t, score, 0)
	}
}

func TestHasWon(t *testing.T) {
	assert.True(t, HasWon(100, 100))
	assert.True(t, HasWon(130, 100))
	assert.False(t, HasWon(99, 100))
	// A zero score never wins
	assert.False(t, HasWon(0, 0))
}

func TestQuizLanguagePracticeUsesOwnPick(t *testing.T) {
	es := "es"
	room := &models.GameRoom{GameMode: game_constants.ModePractice}
	player := &models.RoomPlayer{ID: "p1", Language: &es}

	language, err := QuizLanguage(room, player)
	assert.NoError(t, err)
	assert.Equal(t, "es", language)
}

func TestQuizLanguageCompetitionUsesHostLanguage(t *testing.T) {
	de := "de"
	fr := "fr"
	room := &models.GameRoom{GameMode: game_constants.ModeCompetition, HostLanguage: &de}
	player := &models.RoomPlayer{ID: "p1", Language: &fr}

	language, err := QuizLanguage(room, player)
	assert.NoError(t, err)
	assert.Equal(t, "de", language)
}

func TestQuizLanguageMissingPickFails(t *testing.T) {
	room := &models.GameRoom{GameMode: game_constants.ModePractice}
	player := &models.RoomPlayer{ID: "p1"}

	_, err := QuizLanguage(room, player)
	assert.Error(t, err)

	room = &models.GameRoom{GameMode: game_constants.ModeCooperation}
	_, err = QuizLanguage(room, player)
	assert.Error(t, err)
}

func TestCheckStartConditions(t *testing.T) {
	es := "es"

	ready := func(id string) *models.RoomPlayer {
		return &models.RoomPlayer{ID: id, Name: id, Language: &es, Ready: true}
	}

	t.Run("all ready with language succeeds", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StateLobby,
			GameMode: game_constants.ModePractice,
			Players:  []*models.RoomPlayer{ready("p1"), ready("p2")},
		}
		assert.NoError(t, CheckStartConditions(room))
	})

	t.Run("missing language fails", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StateLobby,
			GameMode: game_constants.ModePractice,
			Players: []*models.RoomPlayer{
				ready("p1"),
				{ID: "p2", Name: "p2", Ready: true},
			},
		}
		assert.Error(t, CheckStartConditions(room))
	})

	t.Run("unready player fails", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StateLobby,
			GameMode: game_constants.ModePractice,
			Players: []*models.RoomPlayer{
				ready("p1"),
				{ID: "p2", Name: "p2", Language: &es},
			},
		}
		assert.Error(t, CheckStartConditions(room))
	})

	t.Run("already playing fails", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StatePlaying,
			GameMode: game_constants.ModePractice,
			Players:  []*models.RoomPlayer{ready("p1")},
		}
		assert.Error(t, CheckStartConditions(room))
	})

	t.Run("no mode picked fails", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StateLobby,
			GameMode: game_constants.ModeNone,
			Players:  []*models.RoomPlayer{ready("p1")},
		}
		assert.Error(t, CheckStartConditions(room))
	})

	t.Run("cooperation needs exactly two players", func(t *testing.T) {
		room := &models.GameRoom{
			ID: "R1", GameState: game_constants.StateLobby,
			GameMode: game_constants.ModeCooperation,
			Players:  []*models.RoomPlayer{ready("p1")},
		}
		assert.Error(t, CheckStartConditions(room))

		room.Players = append(room.Players, ready("p2"))
		assert.NoError(t, CheckStartConditions(room))
	})
}
