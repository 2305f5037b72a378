package utils

import (
	models "Lingo/models/postgres"
	"Lingo/services/store"
)

// CheckRoomExists fetches a room by code, (nil, nil) when absent.
func CheckRoomExists(s *store.RoomStore, roomID string) (*models.GameRoom, error) {
	return s.GetRoom(roomID)
}
