package postgres

import (
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'GameRoom' defines the structure of a Lingo game room. A room owns its
 * players; deleting the room cascades over them.
 */
type GameRoom struct {
	ID           string  `gorm:"primaryKey;size:50;not null"`
	GameState    string  `gorm:"size:20;default:'lobby';index:idx_game_rooms_state"`
	GameMode     string  `gorm:"size:20;default:'none'"`
	HostLanguage *string `gorm:"size:10"`
	WinnerID     *string `gorm:"size:50"`
	TargetScore  int     `gorm:"default:100"`

	QuestionCount int `gorm:"default:0"`

	// Cooperative mode state
	CooperationLives       int            `gorm:"default:0"`
	CooperationScore       int            `gorm:"default:0"`
	UsedWords              datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CurrentChallengePlayer *string        `gorm:"size:50"`
	CurrentCategory        *string        `gorm:"size:50"`

	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	LastActivity time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_game_rooms_activity"`

	// Relationship with players in the room
	Players []*RoomPlayer `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Random room code generation
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateRoomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Ensure the id is truly unique. Clients may supply their own code; only
// generate one when none was given.
func (r *GameRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID != "" {
		return nil
	}
	for {
		newID := generateRoomID(6) // Example: "aB3dE9"
		var existing GameRoom
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				r.ID = newID
				return nil
			}
			return err
		}
		// Otherwise, loop again to generate a new unique ID
	}
}
