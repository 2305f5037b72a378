package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSingleHostNoPlayersIsNoop(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows(playerColumns()))
	mock.ExpectCommit()

	assert.NoError(t, s.EnsureSingleHost("R1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSingleHostAlreadyConsistentIsNoop(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows(playerColumns()).
			AddRow("p1", "R1", "ana", nil, false, 0, true, nil, now, now).
			AddRow("p2", "R1", "bob", nil, false, 0, false, nil, now, now))
	mock.ExpectCommit()

	assert.NoError(t, s.EnsureSingleHost("R1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSingleHostPromotesEarliestJoined(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows(playerColumns()).
			AddRow("p1", "R1", "ana", nil, false, 0, false, nil, now, now.Add(-time.Minute)).
			AddRow("p2", "R1", "bob", nil, false, 0, false, nil, now, now))
	mock.ExpectExec(`UPDATE "room_players"`).
		WithArgs(true, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.EnsureSingleHost("R1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSingleHostDemotesAllButEarliest(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "room_players"`).
		WillReturnRows(sqlmock.NewRows(playerColumns()).
			AddRow("p1", "R1", "ana", nil, false, 0, true, nil, now, now.Add(-time.Minute)).
			AddRow("p2", "R1", "bob", nil, false, 0, true, nil, now, now).
			AddRow("p3", "R1", "cyd", nil, false, 0, true, nil, now, now.Add(time.Minute)))
	mock.ExpectExec(`UPDATE "room_players"`).
		WithArgs(false, "p2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "room_players"`).
		WithArgs(false, "p3").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.EnsureSingleHost("R1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
