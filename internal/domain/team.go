package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team owns a roster of players and is managed by one coach
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CoachID   uuid.UUID `json:"coachId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID"`
	Coach   *Coach   `json:"-" gorm:"foreignKey:CoachID"`
}

// TableName returns the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// FindPlayer returns the roster entry with the given name
func (t *Team) FindPlayer(name string) (*Player, bool) {
	for i := range t.Players {
		if t.Players[i].Name == name {
			return &t.Players[i], true
		}
	}
	return nil, false
}

// PlayerNames returns roster names in roster order
func (t *Team) PlayerNames() []string {
	names := make([]string, len(t.Players))
	for i, p := range t.Players {
		names[i] = p.Name
	}
	return names
}
