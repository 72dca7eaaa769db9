package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"library-sync/core/storage"
	"library-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchBucket"}))
	assert.True(t, storage.IsNotFound(storage.ErrObjectNotFound))
	assert.False(t, storage.IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, storage.IsNotFound(errors.New("boom")))
	assert.False(t, storage.IsNotFound(nil))
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "sync").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "sync", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "sync").Return(false, nil)
		m.On("MakeBucket", ctx, "sync", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, m, "sync", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("Check fails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "sync").Return(false, errors.New("dial tcp: refused"))

		err := storage.EnsureBucket(ctx, m, "sync", "")
		assert.ErrorContains(t, err, "refused")
	})
}

func TestPutJSON(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)

	var uploaded string
	m.On("PutObject", ctx, "sync", "reports/a.json", mock.Anything, int64(11), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Run(func(args mock.Arguments) {
		b, _ := io.ReadAll(args.Get(3).(io.Reader))
		uploaded = string(b)
	}).Return(minio.UploadInfo{}, nil)

	require.NoError(t, storage.PutJSON(ctx, m, "sync", "reports/a.json", map[string]int{"added": 1}))
	assert.Equal(t, `{"added":1}`, uploaded)
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("Decodes", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "sync", "k.json", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader(`{"name":"Elden Ring"}`)), nil)

		var out struct{ Name string }
		require.NoError(t, storage.GetJSON(ctx, m, "sync", "k.json", &out))
		assert.Equal(t, "Elden Ring", out.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "sync", "k.json", minio.GetObjectOptions{}).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		var out struct{}
		err := storage.GetJSON(ctx, m, "sync", "k.json", &out)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("GetObject", ctx, "sync", "k.json", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader(`{`)), nil)

		var out struct{}
		err := storage.GetJSON(ctx, m, "sync", "k.json", &out)
		assert.ErrorContains(t, err, "decode k.json")
	})
}
