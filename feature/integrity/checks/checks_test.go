package checks

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"library-sync/core/database"
	"library-sync/core/storage"
	"library-sync/core/storage/mocks"
	"library-sync/feature/catalog"
	"library-sync/feature/mapping"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func prefix(p string) any {
	return mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == p })
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(false, nil)

		_, err := CheckStructure(context.Background(), m, "library", []string{"exports/"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(false, errors.New("dial tcp"))

		_, err := CheckStructure(context.Background(), m, "library", nil)
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("Some Missing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(true, nil)
		m.On("ListObjects", mock.Anything, "library", prefix("exports/")).Return(mocks.Objects("exports/steam/1.json"))
		m.On("ListObjects", mock.Anything, "library", prefix("reports/")).Return(mocks.Objects())
		m.On("ListObjects", mock.Anything, "library", prefix("catalog/")).Return(mocks.Objects())

		missing, err := CheckStructure(context.Background(), m, "library", []string{"exports/", "reports", "/catalog/", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"reports/", "catalog/"}, missing)
	})
}

func TestFixStructure(t *testing.T) {
	m := new(mocks.Client)
	m.On("PutObject", mock.Anything, "library", "reports/", mock.Anything, int64(0), minio.PutObjectOptions{}).
		Return(minio.UploadInfo{}, nil).Once()
	m.On("PutObject", mock.Anything, "library", "exports/", mock.Anything, int64(0), minio.PutObjectOptions{}).
		Return(minio.UploadInfo{}, errors.New("access denied")).Once()

	err := FixStructure(context.Background(), m, "library", zap.NewNop(), []string{"reports/", "exports"})
	assert.ErrorContains(t, err, "access denied")
	m.AssertExpectations(t)
}

const snapshot = `[
  {"id": 1, "name": "Elden Ring", "slug": "elden-ring"},
  {"id": 2, "name": "Hades", "slug": "hades"},
  {"id": 2, "name": "Hades II", "slug": "hades-ii"},
  {"id": 0, "name": "Broken"},
  {"id": 4, "name": ""}
]`

func TestCheckCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Snapshot", func(t *testing.T) {
		modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(true, nil)
		m.On("StatObject", mock.Anything, "library", "catalog/games.json", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Size: int64(len(snapshot)), LastModified: modified}, nil)
		m.On("GetObject", mock.Anything, "library", "catalog/games.json", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader(snapshot)), nil)

		report, err := CheckCatalog(ctx, m, "library", "catalog/games.json")
		require.NoError(t, err)
		assert.True(t, report.Present)
		assert.Equal(t, 5, report.Entries)
		assert.Equal(t, 2, report.Invalid)
		assert.Equal(t, []string{"duplicate catalog id 2"}, report.Errors)
		require.NotNil(t, report.LastModified)
		assert.True(t, modified.Equal(*report.LastModified))
	})

	t.Run("Missing Snapshot", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(true, nil)
		m.On("StatObject", mock.Anything, "library", "catalog/games.json", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, storage.ErrObjectNotFound)

		report, err := CheckCatalog(ctx, m, "library", "catalog/games.json")
		require.NoError(t, err)
		assert.False(t, report.Present)
		assert.Equal(t, []string{"catalog snapshot not found"}, report.Errors)
		m.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Corrupt Snapshot", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(true, nil)
		m.On("StatObject", mock.Anything, "library", "catalog/games.json", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Size: 3}, nil)
		m.On("GetObject", mock.Anything, "library", "catalog/games.json", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("{{{")), nil)

		report, err := CheckCatalog(ctx, m, "library", "catalog/games.json")
		require.NoError(t, err)
		assert.True(t, report.Present)
		assert.Zero(t, report.Entries)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "decode catalog/games.json")
	})

	t.Run("Stat Error", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "library").Return(true, nil)
		m.On("StatObject", mock.Anything, "library", "catalog/games.json", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, errors.New("timeout"))

		_, err := CheckCatalog(ctx, m, "library", "catalog/games.json")
		assert.ErrorContains(t, err, "timeout")
	})
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, &catalog.Game{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, database.Migrate(db, &catalog.Game{}))

	report, err := CheckSchema(db, &catalog.Game{}, &mapping.TitleMapping{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	games := report.Tables["canonical_games"]
	assert.True(t, games.Exists)
	assert.Equal(t, "ok", games.Status)
	assert.Empty(t, games.MissingColumns)

	mappings := report.Tables["title_mappings"]
	assert.False(t, mappings.Exists)
	assert.Equal(t, "error", mappings.Status)
	assert.Contains(t, mappings.MissingColumns, "original_title")
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Exec("CREATE TABLE title_mappings (id text primary key, platform text)").Error)

	report, err := CheckSchema(db, &mapping.TitleMapping{})
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["title_mappings"]
	assert.True(t, tbl.Exists)
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "game_id")
	assert.Contains(t, tbl.MissingColumns, "original_title")
	assert.NotContains(t, tbl.MissingColumns, "platform")
}

func TestCheckSchema_Matched(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, database.Migrate(db, &mapping.TitleMapping{}))

	report, err := CheckSchema(db, &mapping.TitleMapping{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.Errors)
}

func TestCheckSchema_BadModel(t *testing.T) {
	db := setupDB(t)

	report, err := CheckSchema(db, 42)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}
