package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"library-sync/core/storage"
	"library-sync/core/utils"
)

// Field names accepted in a library export, in lookup order. Exports come
// from different store tools and name the same field differently.
var (
	idKeys         = []string{"external_id", "id", "appid", "titleId", "title_id", "product_id"}
	nameKeys       = []string{"name", "title"}
	playtimeKeys   = []string{"playtime_minutes", "playtime_forever", "minutesPlayed", "minutes_played"}
	lastPlayedKeys = []string{"last_played_at", "rtime_last_played", "lastTimePlayed", "last_played"}
)

var knownKeys = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, keys := range [][]string{idKeys, nameKeys, playtimeKeys, lastPlayedKeys, {"hidden"}} {
		for _, k := range keys {
			m[k] = struct{}{}
		}
	}
	return m
}()

// ExportAdapter reads a user's library from an export document uploaded to
// object storage at <prefix><platform>/<platform user id>.json. The document
// is either a JSON array of games or an object with a "games" array.
type ExportAdapter struct {
	platform Platform
	client   storage.Client
	bucket   string
	prefix   string
}

// NewExportAdapter creates an ExportAdapter for p.
func NewExportAdapter(p Platform, client storage.Client, bucket, prefix string) *ExportAdapter {
	return &ExportAdapter{platform: p, client: client, bucket: bucket, prefix: prefix}
}

// Platform implements Adapter.
func (a *ExportAdapter) Platform() Platform {
	return a.platform
}

// ObjectKey returns the export location for creds.
func (a *ExportAdapter) ObjectKey(creds Credentials) string {
	id := creds.PlatformUserID
	if id == "" {
		id = creds.UserID
	}
	return a.prefix + path.Join(string(a.platform), id+".json")
}

// FetchLibrary implements Adapter.
func (a *ExportAdapter) FetchLibrary(ctx context.Context, creds Credentials) ([]ExternalGameRecord, error) {
	if creds.PlatformUserID == "" && creds.UserID == "" {
		return nil, fmt.Errorf("%w: no account linked", ErrAuthExpired)
	}

	var raw json.RawMessage
	key := a.ObjectKey(creds)
	if err := storage.GetJSON(ctx, a.client, a.bucket, key, &raw); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: no library export at %s", ErrUpstreamUnavailable, key)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	items, err := decodeItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, key, err)
	}

	records := make([]ExternalGameRecord, 0, len(items))
	for _, item := range items {
		if utils.ToBool(item["hidden"]) {
			continue
		}
		rec := a.record(item)
		if strings.TrimSpace(rec.Name) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeItems(raw json.RawMessage) ([]map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Games []map[string]any `json:"games"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Games, nil
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *ExportAdapter) record(item map[string]any) ExternalGameRecord {
	rec := ExternalGameRecord{
		ExternalID:      utils.ToString(first(item, idKeys)),
		Name:            strings.TrimSpace(utils.ToString(first(item, nameKeys))),
		PlaytimeMinutes: max(utils.ToInt(first(item, playtimeKeys)), 0),
		LastPlayedAt:    utils.ToTime(first(item, lastPlayedKeys)),
		Platform:        a.platform,
	}

	for k, v := range item {
		if _, ok := knownKeys[k]; ok {
			continue
		}
		if rec.Metadata == nil {
			rec.Metadata = make(map[string]any)
		}
		rec.Metadata[k] = v
	}
	return rec
}

func first(item map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
