package store

import (
	models "Lingo/models/postgres"
	game_constants "Lingo/constants/game"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// RoomStore is the single source of truth for rooms and players. Every
// multi-row mutation (player add/remove, host reassignment) runs inside one
// transaction so concurrent commands against the same room serialize here
// instead of racing in handler code.
type RoomStore struct {
	DB *gorm.DB
}

func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{DB: db}
}

// RoomOptions are the settings a room is created with.
type RoomOptions struct {
	TargetScore int
	GameMode    string
}

// CreateRoom is idempotent: if a room with the given id already exists it is
// returned unchanged. An empty id lets the model generate a fresh code.
func (s *RoomStore) CreateRoom(id string, opts RoomOptions) (*models.GameRoom, error) {
	if id != "" {
		existing, err := s.GetRoom(id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	if opts.TargetScore == 0 {
		opts.TargetScore = game_constants.DefaultTargetScore
	}
	if opts.GameMode == "" {
		opts.GameMode = game_constants.ModeNone
	}

	room := &models.GameRoom{
		ID:           id,
		GameState:    game_constants.StateLobby,
		GameMode:     opts.GameMode,
		TargetScore:  opts.TargetScore,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
	if err := s.DB.Create(room).Error; err != nil {
		return nil, fmt.Errorf("error creating room: %v", err)
	}
	return room, nil
}

// GetRoom fetches a room with its players ordered by join time. Returns
// (nil, nil) if the room does not exist.
func (s *RoomStore) GetRoom(id string) (*models.GameRoom, error) {
	var room models.GameRoom
	err := s.DB.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("room_players.created_at ASC")
	}).Where("id = ?", id).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching room %s: %v", id, err)
	}
	return &room, nil
}

// GetPlayer fetches a single player by id, (nil, nil) if absent.
func (s *RoomStore) GetPlayer(id string) (*models.RoomPlayer, error) {
	var player models.RoomPlayer
	err := s.DB.Where("id = ?", id).First(&player).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching player %s: %v", id, err)
	}
	return &player, nil
}

// AddPlayer inserts a player into a room. Returns false when the room does
// not exist or cannot be joined: only lobby rooms with free capacity accept
// players, so a started game stays locked even against racing joins. The
// first player of a room always becomes host; an explicit host request is
// honored only when the room currently has no host. Runs as one transaction
// together with the host invariant check.
func (s *RoomStore) AddPlayer(roomID string, player *models.RoomPlayer, wantHost bool) (bool, error) {
	added := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		if err := tx.Where("id = ?", roomID).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil // room absent, added stays false
			}
			return err
		}

		if room.GameState != game_constants.StateLobby {
			return nil // no late joins once the game started
		}

		var count int64
		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count >= game_constants.MaxPlayersPerRoom {
			return nil
		}

		var hosts int64
		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ? AND is_host = true", roomID).Count(&hosts).Error; err != nil {
			return err
		}

		player.RoomID = roomID
		player.IsHost = count == 0 || (wantHost && hosts == 0)
		player.LastSeen = time.Now()

		if err := tx.Create(player).Error; err != nil {
			return err
		}

		if err := ensureSingleHost(tx, roomID); err != nil {
			return err
		}

		added = true
		return tx.Model(&models.GameRoom{}).Where("id = ?", roomID).
			Update("last_activity", time.Now()).Error
	})
	if err != nil {
		return false, fmt.Errorf("error adding player to room %s: %v", roomID, err)
	}
	return added, nil
}

// UpdatePlayer applies a partial column update to one player.
func (s *RoomStore) UpdatePlayer(id string, fields map[string]interface{}) error {
	if err := s.DB.Model(&models.RoomPlayer{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("error updating player %s: %v", id, err)
	}
	return nil
}

// UpdateRoom applies a partial column update to one room.
func (s *RoomStore) UpdateRoom(id string, fields map[string]interface{}) error {
	if err := s.DB.Model(&models.GameRoom{}).Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("error updating room %s: %v", id, err)
	}
	return nil
}

// RemovalResult reports what RemovePlayer did.
type RemovalResult struct {
	RoomID    string
	WasHost   bool
	RoomEmpty bool
}

// RemovePlayer deletes a player and repairs the host invariant in the same
// transaction. If the room ends up empty it is deleted too (a room with zero
// players must not exist). Returns nil when the player is unknown.
func (s *RoomStore) RemovePlayer(id string) (*RemovalResult, error) {
	var result *RemovalResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var player models.RoomPlayer
		if err := tx.Where("id = ?", id).First(&player).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		if err := tx.Delete(&models.RoomPlayer{}, "id = ?", id).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.RoomPlayer{}).
			Where("room_id = ?", player.RoomID).Count(&remaining).Error; err != nil {
			return err
		}

		result = &RemovalResult{RoomID: player.RoomID, WasHost: player.IsHost}

		if remaining == 0 {
			result.RoomEmpty = true
			return tx.Delete(&models.GameRoom{}, "id = ?", player.RoomID).Error
		}

		return ensureSingleHost(tx, player.RoomID)
	})
	if err != nil {
		return nil, fmt.Errorf("error removing player %s: %v", id, err)
	}
	return result, nil
}

// RemoveAllPlayers empties a room and deletes it, used for evictions.
func (s *RoomStore) RemoveAllPlayers(roomID string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoomPlayer{}, "room_id = ?", roomID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GameRoom{}, "id = ?", roomID).Error
	})
	if err != nil {
		return fmt.Errorf("error emptying room %s: %v", roomID, err)
	}
	return nil
}

// DeleteRoom removes a room (players cascade).
func (s *RoomStore) DeleteRoom(id string) error {
	if err := s.DB.Delete(&models.GameRoom{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("error deleting room %s: %v", id, err)
	}
	return nil
}

// TouchActivity refreshes the persisted activity timestamp of a room and the
// last_seen of the acting player. Liveness only, never part of game logic.
func (s *RoomStore) TouchActivity(roomID, playerID string) {
	now := time.Now()
	if err := s.DB.Model(&models.GameRoom{}).Where("id = ?", roomID).
		Update("last_activity", now).Error; err != nil {
		log.Printf("[STORE] Error touching room %s activity: %v", roomID, err)
	}
	if playerID != "" {
		if err := s.DB.Model(&models.RoomPlayer{}).Where("id = ?", playerID).
			Update("last_seen", now).Error; err != nil {
			log.Printf("[STORE] Error touching player %s: %v", playerID, err)
		}
	}
}
