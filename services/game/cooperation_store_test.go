package game

import (
	models "Lingo/models/postgres"
	"Lingo/services/store"
	"Lingo/services/words"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeWords is a canned words.Service for turn-engine tests.
type fakeWords struct {
	valid    bool
	wordID   string
	category string
}

func (f *fakeWords) Generate(language string) (*words.Question, error) {
	q := words.NewQuestion("haus", "house", []string{"mouse", "horse", "hose"})
	return &q, nil
}

func (f *fakeWords) Validate(language, category, word string) (*words.ValidationResult, error) {
	return &words.ValidationResult{Valid: f.valid, WordID: f.wordID}, nil
}

func (f *fakeWords) RandomCategory(language string) (string, error) {
	return f.category, nil
}

func newMockStore(t *testing.T) (*store.RoomStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return store.NewRoomStore(gormDB), mock
}

func coopRoom(lives int, challengePlayer string) *models.GameRoom {
	lang := "de"
	category := "animals"
	room := &models.GameRoom{
		ID:               "R1",
		GameState:        "playing",
		GameMode:         "cooperation",
		HostLanguage:     &lang,
		CooperationLives: lives,
		CurrentCategory:  &category,
		Players:          twoPlayers(),
	}
	if challengePlayer != "" {
		room.CurrentChallengePlayer = &challengePlayer
	}
	return room
}

func expectRoomUpdate(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "game_rooms"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestTimeoutBurnsLifeAndPassesTurn(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(3, "p1")
	svc := &fakeWords{category: "food"}

	expectRoomUpdate(mock) // lives decrement
	expectRoomUpdate(mock) // next challenge

	outcome, err := ResolveCooperationTimeout(s, svc, room, "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.Lives)
	assert.False(t, outcome.GameOver)
	assert.Equal(t, "p2", outcome.NextActor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeoutOnLastLifeFinishesGame(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(1, "p1")
	svc := &fakeWords{category: "food"}

	expectRoomUpdate(mock) // finish, no next challenge

	outcome, err := ResolveCooperationTimeout(s, svc, room, "p1")
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Lives)
	assert.True(t, outcome.GameOver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeoutLivesRunDown(t *testing.T) {
	s, mock := newMockStore(t)
	svc := &fakeWords{category: "food"}

	actor := "p1"
	for lives := 3; lives > 1; lives-- {
		room := coopRoom(lives, actor)
		expectRoomUpdate(mock)
		expectRoomUpdate(mock)

		outcome, err := ResolveCooperationTimeout(s, svc, room, actor)
		require.NoError(t, err)
		assert.Equal(t, lives-1, outcome.Lives)
		assert.False(t, outcome.GameOver)
		actor = outcome.NextActor
	}

	room := coopRoom(1, actor)
	expectRoomUpdate(mock)
	outcome, err := ResolveCooperationTimeout(s, svc, room, actor)
	require.NoError(t, err)
	assert.True(t, outcome.GameOver)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimeoutOutOfTurnRejected(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(3, "p2")

	_, err := ResolveCooperationTimeout(s, &fakeWords{}, room, "p1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "out-of-turn timeout must not touch the store")
}

func TestCooperationAnswerRejectedChangesNothing(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(3, "p1")
	svc := &fakeWords{valid: false}

	outcome, err := ResolveCooperationAnswer(s, svc, room, "p1", "qwzx")
	require.NoError(t, err)

	assert.True(t, outcome.Rejected)
	assert.False(t, outcome.Accepted)
	assert.Equal(t, 3, outcome.Lives)
	assert.NoError(t, mock.ExpectationsWereMet(), "rejected word must not touch the store")
}

func TestCooperationAnswerDuplicateRejected(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(3, "p1")
	room.UsedWords = []byte(`["de:hund"]`)
	svc := &fakeWords{valid: true, wordID: "de:hund"}

	outcome, err := ResolveCooperationAnswer(s, svc, room, "p1", "hund")
	require.NoError(t, err)

	assert.True(t, outcome.Rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCooperationAnswerAcceptedScoresAndPassesTurn(t *testing.T) {
	s, mock := newMockStore(t)
	room := coopRoom(3, "p1")
	room.UsedWords = []byte(`[]`)
	svc := &fakeWords{valid: true, wordID: "de:katze", category: "food"}

	expectRoomUpdate(mock) // score + used words
	expectRoomUpdate(mock) // next challenge

	outcome, err := ResolveCooperationAnswer(s, svc, room, "p1", "katze")
	require.NoError(t, err)

	assert.True(t, outcome.Accepted)
	assert.Equal(t, 1, outcome.Score)
	assert.Equal(t, "p2", outcome.NextActor)
	assert.Contains(t, string(room.UsedWords), "de:katze")
	assert.NoError(t, mock.ExpectationsWereMet())
}
