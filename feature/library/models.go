package library

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is a user's progress on a game.
type Status string

const (
	StatusOwned      Status = "owned"
	StatusPlaying    Status = "playing"
	StatusCompleted  Status = "completed"
	StatusWantToPlay Status = "want_to_play"
	StatusDropped    Status = "dropped"
	StatusBacklog    Status = "backlog"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOwned, StatusPlaying, StatusCompleted, StatusWantToPlay, StatusDropped, StatusBacklog:
		return true
	}
	return false
}

// InitialStatus is the status of a newly synced entry.
func InitialStatus(playtimeMinutes int) Status {
	if playtimeMinutes > 0 {
		return StatusPlaying
	}
	return StatusOwned
}

// Entry is one game in a user's library on one platform.
type Entry struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserID          string     `gorm:"size:64;not null;uniqueIndex:idx_library_user_game_platform" json:"user_id"`
	GameID          string     `gorm:"size:36;not null;uniqueIndex:idx_library_user_game_platform" json:"game_id"`
	Platform        string     `gorm:"size:32;not null;uniqueIndex:idx_library_user_game_platform;index" json:"platform"`
	ExternalID      string     `gorm:"size:128" json:"external_id,omitempty"`
	Status          Status     `gorm:"size:32;not null" json:"status"`
	PlaytimeMinutes int        `gorm:"not null;default:0" json:"playtime_minutes"`
	LastPlayedAt    *time.Time `json:"last_played_at,omitempty"`
	Favorite        bool       `gorm:"not null;default:false" json:"favorite"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "library_entries"
}

// BeforeCreate assigns a UUID when none is set.
func (e *Entry) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Connection links a user to a platform account and records sync health.
type Connection struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	UserID         string     `gorm:"size:64;not null;uniqueIndex:idx_connection_user_platform" json:"user_id"`
	Platform       string     `gorm:"size:32;not null;uniqueIndex:idx_connection_user_platform" json:"platform"`
	PlatformUserID string     `gorm:"size:128" json:"platform_user_id"`
	Username       string     `gorm:"size:128" json:"username,omitempty"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	LastSyncAt     *time.Time `json:"last_sync_at"`
	LastSyncError  *string    `gorm:"type:text" json:"last_sync_error"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName overrides the table name.
func (Connection) TableName() string {
	return "platform_connections"
}

// BeforeCreate assigns a UUID when none is set.
func (c *Connection) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Models lists the tables owned by this package, for migration.
func Models() []any {
	return []any{&Entry{}, &Connection{}}
}
