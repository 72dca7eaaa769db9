package mapping

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TitleMapping is an operator override from a platform's raw title to a canonical game.
type TitleMapping struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Platform        string    `gorm:"size:32;not null;uniqueIndex:idx_mapping_platform_title" json:"platform"`
	OriginalTitle   string    `gorm:"size:255;not null;uniqueIndex:idx_mapping_platform_title" json:"original_title"`
	NormalizedTitle string    `gorm:"size:255;index" json:"normalized_title"`
	GameID          string    `gorm:"size:36;not null;index" json:"game_id"`
	CreatedBy       string    `gorm:"size:64" json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name.
func (TitleMapping) TableName() string {
	return "title_mappings"
}

// BeforeCreate assigns a UUID when none is set.
func (m *TitleMapping) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
