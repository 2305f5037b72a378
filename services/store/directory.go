package store

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"fmt"
	"time"
)

// DirectoryEntry is one joinable room as shown to the lobby browser.
type DirectoryEntry struct {
	RoomID      string `json:"room_id"`
	PlayerCount int    `json:"player_count"`
	Capacity    int    `json:"capacity"`
	TargetScore int    `json:"target_score"`
}

// JoinableRooms returns the rooms a new player may enter: still in lobby,
// active within the last hour, and neither empty nor full.
func (s *RoomStore) JoinableRooms() ([]DirectoryEntry, error) {
	cutoff := time.Now().Add(-game_constants.DirectoryMaxIdle)

	var rooms []models.GameRoom
	if err := s.DB.Preload("Players").
		Where("game_state = ? AND last_activity > ?", game_constants.StateLobby, cutoff).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("error listing joinable rooms: %v", err)
	}

	entries := make([]DirectoryEntry, 0, len(rooms))
	for _, room := range rooms {
		count := len(room.Players)
		if count == 0 || count >= game_constants.MaxPlayersPerRoom {
			continue
		}
		entries = append(entries, DirectoryEntry{
			RoomID:      room.ID,
			PlayerCount: count,
			Capacity:    game_constants.MaxPlayersPerRoom,
			TargetScore: room.TargetScore,
		})
	}
	return entries, nil
}

// StaleRooms returns ids of rooms the deep sweep should drop: created more
// than MaxRoomAge ago or idle for longer than MaxRoomIdle.
func (s *RoomStore) StaleRooms() ([]string, error) {
	now := time.Now()
	var ids []string
	err := s.DB.Model(&models.GameRoom{}).
		Where("created_at < ? OR last_activity < ?",
			now.Add(-game_constants.MaxRoomAge), now.Add(-game_constants.MaxRoomIdle)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("error listing stale rooms: %v", err)
	}
	return ids, nil
}
