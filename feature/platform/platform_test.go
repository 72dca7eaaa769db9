package platform

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"library-sync/core/metrics"
	"library-sync/core/ratelimit"
	"library-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	platform Platform
	records  []ExternalGameRecord
	err      error
	calls    int
}

func (s *stubAdapter) Platform() Platform { return s.platform }

func (s *stubAdapter) FetchLibrary(context.Context, Credentials) ([]ExternalGameRecord, error) {
	s.calls++
	return s.records, s.err
}

type quotaRecorder struct {
	metrics.Nop
	denied []string
}

func (r *quotaRecorder) RecordQuotaDenied(p string) { r.denied = append(r.denied, p) }

func TestParse(t *testing.T) {
	p, err := Parse(" Steam ")
	require.NoError(t, err)
	assert.Equal(t, Steam, p)

	p, err = Parse("psn")
	require.NoError(t, err)
	assert.Equal(t, PlayStation, p)

	_, err = Parse("dreamcast")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestCapabilities(t *testing.T) {
	caps, ok := PlayStation.Capabilities()
	require.True(t, ok)
	assert.True(t, caps.Experimental)
	assert.False(t, caps.PlaytimeSupported)
	assert.NotEmpty(t, caps.Warning)

	assert.Equal(t, []Platform{Epic, Nintendo, PlayStation, Steam, Xbox}, All())
}

func TestRegistry(t *testing.T) {
	steam := &stubAdapter{platform: Steam}
	r := NewRegistry(steam)

	a, err := r.Get(Steam)
	require.NoError(t, err)
	assert.Same(t, steam, a)

	_, err = r.Get(Xbox)
	assert.ErrorIs(t, err, ErrSyncNotSupported)

	_, err = r.Get(Platform("sega"))
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	assert.Equal(t, []Platform{Steam}, r.Platforms())
}

func TestQuotaGuard(t *testing.T) {
	inner := &stubAdapter{platform: Xbox, records: []ExternalGameRecord{{Name: "Halo Infinite"}}}
	rec := &quotaRecorder{}
	g := NewQuotaGuard(inner, ratelimit.NewWindowLimiter(2, time.Hour), rec)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		records, err := g.FetchLibrary(ctx, Credentials{UserID: "u1"})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	}

	_, err := g.FetchLibrary(ctx, Credentials{UserID: "u2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	var qe *QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 0, qe.Remaining)
	assert.Equal(t, 60, qe.MinutesUntilReset)
	assert.Equal(t, Xbox, qe.Platform)
	assert.Contains(t, err.Error(), "try again in 60 minutes")

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []string{"xbox"}, rec.denied)
	assert.Equal(t, 0, g.Remaining())
}

func exportClient(key, body string) *mocks.Client {
	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "bucket", key, minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(body)), nil)
	return m
}

func TestExportAdapter_Array(t *testing.T) {
	body := `[
	  {"appid": 1245620, "name": "ELDEN RING", "playtime_forever": 600, "rtime_last_played": 1700000000, "img_icon_url": "abc"},
	  {"appid": "292030", "name": "The Witcher 3: Wild Hunt", "playtime_forever": "12.0"},
	  {"appid": 1, "name": "Hidden Thing", "hidden": true},
	  {"appid": 2, "name": "  "}
	]`
	a := NewExportAdapter(Steam, exportClient("exports/steam/7656.json", body), "bucket", "exports/")

	records, err := a.FetchLibrary(context.Background(), Credentials{UserID: "u1", PlatformUserID: "7656"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	elden := records[0]
	assert.Equal(t, "1245620", elden.ExternalID)
	assert.Equal(t, "ELDEN RING", elden.Name)
	assert.Equal(t, 600, elden.PlaytimeMinutes)
	require.NotNil(t, elden.LastPlayedAt)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), *elden.LastPlayedAt)
	assert.Equal(t, Steam, elden.Platform)
	assert.Equal(t, map[string]any{"img_icon_url": "abc"}, elden.Metadata)

	witcher := records[1]
	assert.Equal(t, "292030", witcher.ExternalID)
	assert.Equal(t, 12, witcher.PlaytimeMinutes)
	assert.Nil(t, witcher.LastPlayedAt)
	assert.Nil(t, witcher.Metadata)
}

func TestExportAdapter_WrappedDocument(t *testing.T) {
	body := `{"games": [{"titleId": "9WZD", "title": "Forza Horizon 5", "minutesPlayed": -5, "lastTimePlayed": "2024-03-01T10:00:00Z"}]}`
	a := NewExportAdapter(Xbox, exportClient("exports/xbox/u1.json", body), "bucket", "exports/")

	records, err := a.FetchLibrary(context.Background(), Credentials{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Forza Horizon 5", records[0].Name)
	assert.Equal(t, 0, records[0].PlaytimeMinutes)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), *records[0].LastPlayedAt)
}

func TestExportAdapter_Errors(t *testing.T) {
	ctx := context.Background()

	m := new(mocks.Client)
	m.On("GetObject", mock.Anything, "bucket", "exports/steam/u1.json", minio.GetObjectOptions{}).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	_, err := NewExportAdapter(Steam, m, "bucket", "exports/").FetchLibrary(ctx, Credentials{UserID: "u1"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorContains(t, err, "no library export")

	bad := NewExportAdapter(Steam, exportClient("exports/steam/u1.json", `"nope"`), "bucket", "exports/")
	_, err = bad.FetchLibrary(ctx, Credentials{UserID: "u1"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = bad.FetchLibrary(ctx, Credentials{})
	assert.ErrorIs(t, err, ErrAuthExpired)
}
