package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists library entries and platform connections.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ConnectInput describes a platform account to link.
type ConnectInput struct {
	UserID         string
	Platform       string
	PlatformUserID string
	Username       string
	AccessToken    string
	RefreshToken   string
}

// Connect links or relinks a platform account. Relinking reactivates the
// connection and clears the last sync error.
func (s *Store) Connect(ctx context.Context, in ConnectInput) (*Connection, error) {
	conn := &Connection{
		UserID:         in.UserID,
		Platform:       in.Platform,
		PlatformUserID: in.PlatformUserID,
		Username:       in.Username,
		AccessToken:    in.AccessToken,
		RefreshToken:   in.RefreshToken,
		IsActive:       true,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
			DoUpdates: clause.Assignments(map[string]any{
				"platform_user_id": in.PlatformUserID,
				"username":         in.Username,
				"access_token":     in.AccessToken,
				"refresh_token":    in.RefreshToken,
				"is_active":        true,
				"last_sync_error":  nil,
				"updated_at":       time.Now(),
			}),
		}).
		Create(conn).Error
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", in.Platform, err)
	}
	return s.Connection(ctx, in.UserID, in.Platform)
}

// Connection returns the user's connection for platform.
func (s *Store) Connection(ctx context.Context, userID, platform string) (*Connection, error) {
	var c Connection
	err := s.db.WithContext(ctx).Where("user_id = ? AND platform = ?", userID, platform).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	return &c, nil
}

// ActiveConnection is Connection, failing with ErrConnectionInactive for disabled links.
func (s *Store) ActiveConnection(ctx context.Context, userID, platform string) (*Connection, error) {
	c, err := s.Connection(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrConnectionInactive
	}
	return c, nil
}

// Connections lists the user's connections ordered by platform. With
// activeOnly, disabled links are skipped.
func (s *Store) Connections(ctx context.Context, userID string, activeOnly bool) ([]Connection, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []Connection
	if err := q.Order("platform ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return out, nil
}

// Disconnect removes the connection and every library entry from that platform.
func (s *Store) Disconnect(ctx context.Context, userID, platform string) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND platform = ?", userID, platform).Delete(&Connection{})
		if res.Error != nil {
			return fmt.Errorf("delete connection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotConnected
		}

		res = tx.Where("user_id = ? AND platform = ?", userID, platform).Delete(&Entry{})
		if res.Error != nil {
			return fmt.Errorf("delete library entries: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

// RecordSyncSuccess stamps the connection and clears its error.
func (s *Store) RecordSyncSuccess(ctx context.Context, userID, platform string, at time.Time) error {
	return s.recordSync(ctx, userID, platform, map[string]any{
		"last_sync_at":    at,
		"last_sync_error": nil,
	})
}

// RecordSyncFailure stores msg as the connection's last sync error.
func (s *Store) RecordSyncFailure(ctx context.Context, userID, platform string, at time.Time, msg string) error {
	return s.recordSync(ctx, userID, platform, map[string]any{
		"last_sync_at":    at,
		"last_sync_error": msg,
	})
}

func (s *Store) recordSync(ctx context.Context, userID, platform string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&Connection{}).
		Where("user_id = ? AND platform = ?", userID, platform).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("record sync status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotConnected
	}
	return nil
}

// Entries lists the user's library rows, optionally for one platform.
func (s *Store) Entries(ctx context.Context, userID, platform string) ([]Entry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if platform != "" {
		q = q.Where("platform = ?", platform)
	}
	var out []Entry
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list library entries: %w", err)
	}
	return out, nil
}

// SetFavorite flags every platform row of a game.
func (s *Store) SetFavorite(ctx context.Context, userID, gameID string, favorite bool) error {
	res := s.db.WithContext(ctx).Model(&Entry{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Update("favorite", favorite)
	if res.Error != nil {
		return fmt.Errorf("set favorite: %w", res.Error)
	}
	return nil
}
