package game

import (
	models "Lingo/models/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAnswerCountsQuestionInSQL(t *testing.T) {
	s, mock := newMockStore(t)
	lang := "de"
	room := &models.GameRoom{ID: "R1", GameState: "playing",
		GameMode: "practice", TargetScore: 100}
	player := &models.RoomPlayer{ID: "p1", Name: "ana", Language: &lang, Score: 10}

	// Rescore the player
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "room_players"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// Persist the next question
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "room_players"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// The counter bumps inside SQL, never as a read-modify-write
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "game_rooms" SET "question_count"=question_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	outcome, err := ResolveAnswer(s, &fakeWords{}, room, player, "mouse", "house", 3)
	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.Equal(t, 5, outcome.NewScore)
	require.NotNil(t, outcome.NextQuestion)
	assert.NoError(t, mock.ExpectationsWereMet())
}
