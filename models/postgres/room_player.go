package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'RoomPlayer' represents a player inside a game room. Players are ephemeral:
 * they exist only while their room does. CreatedAt doubles as the join order,
 * which is what host election keys on.
 */
type RoomPlayer struct {
	ID       string  `gorm:"primaryKey;size:50;not null"`
	RoomID   string  `gorm:"size:50;not null;index:idx_room_players_room"`
	Name     string  `gorm:"size:50;not null"`
	Language *string `gorm:"size:10"`
	Ready    bool    `gorm:"default:false"`
	Score    int     `gorm:"default:0"`
	IsHost   bool    `gorm:"default:false"`

	// Current quiz question, null outside of playing state
	CurrentQuestion datatypes.JSON `gorm:"type:jsonb"`

	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_room_players_joined"`

	GameRoom GameRoom `gorm:"foreignKey:RoomID"`
}
