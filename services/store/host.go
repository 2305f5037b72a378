package store

import (
	models "Lingo/models/postgres"

	"gorm.io/gorm"
)

// ensureSingleHost restores the "exactly one host" invariant for a room. It
// must run inside the same transaction as whatever membership or host-flag
// change triggered it. Zero hosts: promote the earliest-joined player.
// Several hosts: demote everyone but the earliest-joined of them. Running it
// twice in a row is a no-op.
func ensureSingleHost(tx *gorm.DB, roomID string) error {
	var players []models.RoomPlayer
	if err := tx.Where("room_id = ?", roomID).
		Order("created_at ASC").Find(&players).Error; err != nil {
		return err
	}
	if len(players) == 0 {
		return nil
	}

	var hosts []models.RoomPlayer
	for _, p := range players {
		if p.IsHost {
			hosts = append(hosts, p)
		}
	}

	switch {
	case len(hosts) == 1:
		return nil
	case len(hosts) == 0:
		return tx.Model(&models.RoomPlayer{}).
			Where("id = ?", players[0].ID).
			Update("is_host", true).Error
	default:
		// Keep the earliest-joined host, demote the rest
		for _, h := range hosts[1:] {
			if err := tx.Model(&models.RoomPlayer{}).
				Where("id = ?", h.ID).
				Update("is_host", false).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// EnsureSingleHost runs the host invariant repair in its own transaction,
// for callers converging state outside of a membership change.
func (s *RoomStore) EnsureSingleHost(roomID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return ensureSingleHost(tx, roomID)
	})
}
