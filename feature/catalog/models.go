package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game is the canonical catalog record every platform title resolves to.
type Game struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	CatalogID   int64          `gorm:"uniqueIndex;not null" json:"catalog_id"`
	Name        string         `gorm:"size:255;index;not null" json:"name"`
	Slug        string         `gorm:"size:255" json:"slug"`
	CoverURL    string         `gorm:"size:512" json:"cover_url,omitempty"`
	Genres      datatypes.JSON `gorm:"type:json" json:"genres" swaggertype:"array,string"`
	Platforms   datatypes.JSON `gorm:"type:json" json:"platforms" swaggertype:"array,string"`
	ReleaseDate *time.Time     `json:"release_date,omitempty"`
	Rating      float64        `json:"rating,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName overrides the table name.
func (Game) TableName() string {
	return "canonical_games"
}

// BeforeCreate assigns a UUID when none is set.
func (g *Game) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GenreList decodes Genres.
func (g *Game) GenreList() []string {
	return decodeList(g.Genres)
}

// PlatformList decodes Platforms.
func (g *Game) PlatformList() []string {
	return decodeList(g.Platforms)
}

func decodeList(raw datatypes.JSON) []string {
	var out []string
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

func encodeList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return b
}

// Entry is one result from the catalog source.
type Entry struct {
	// Query is the search title this entry answered. Empty for Get.
	Query            string     `json:"query,omitempty"`
	CatalogID        int64      `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	CoverURL         string     `json:"cover_url,omitempty"`
	Genres           []string   `json:"genres,omitempty"`
	Platforms        []string   `json:"platforms,omitempty"`
	AlternativeNames []string   `json:"alternative_names,omitempty"`
	ReleaseDate      *time.Time `json:"release_date,omitempty"`
	Rating           float64    `json:"rating,omitempty"`
}

// ToGame converts the entry into an unsaved Game.
func (e Entry) ToGame() *Game {
	return &Game{
		CatalogID:   e.CatalogID,
		Name:        e.Name,
		Slug:        e.Slug,
		CoverURL:    e.CoverURL,
		Genres:      encodeList(e.Genres),
		Platforms:   encodeList(e.Platforms),
		ReleaseDate: e.ReleaseDate,
		Rating:      e.Rating,
	}
}
