package syncer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"library-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archiver keeps sync run reports.
type Archiver interface {
	Archive(ctx context.Context, result *Result) error
	Latest(ctx context.Context, userID, platform string) (*Result, error)
}

// ErrNoReport is returned by Latest when no run has been archived.
var ErrNoReport = errors.New("no sync report")

// StorageArchiver writes one JSON report per run to object storage under
// <prefix><user>/<platform>/<finished at>.json and keeps the newest retention reports.
type StorageArchiver struct {
	client    storage.Client
	bucket    string
	prefix    string
	retention int
}

// NewStorageArchiver creates a StorageArchiver. A retention of zero keeps every report.
func NewStorageArchiver(client storage.Client, bucket, prefix string, retention int) *StorageArchiver {
	return &StorageArchiver{client: client, bucket: bucket, prefix: prefix, retention: retention}
}

func (a *StorageArchiver) dir(userID, platform string) string {
	return a.prefix + path.Join(userID, platform) + "/"
}

// Archive implements Archiver.
func (a *StorageArchiver) Archive(ctx context.Context, result *Result) error {
	key := a.dir(result.UserID, result.Platform) + result.FinishedAt.UTC().Format("20060102T150405.000000000Z") + ".json"
	if err := storage.PutJSON(ctx, a.client, a.bucket, key, result); err != nil {
		return err
	}
	if a.retention <= 0 {
		return nil
	}

	keys, err := a.list(ctx, result.UserID, result.Platform)
	if err != nil {
		return err
	}
	for len(keys) > a.retention {
		if err := a.client.RemoveObject(ctx, a.bucket, keys[0], minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("prune report %s: %w", keys[0], err)
		}
		keys = keys[1:]
	}
	return nil
}

// Latest implements Archiver.
func (a *StorageArchiver) Latest(ctx context.Context, userID, platform string) (*Result, error) {
	keys, err := a.list(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNoReport
	}

	var r Result
	if err := storage.GetJSON(ctx, a.client, a.bucket, keys[len(keys)-1], &r); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNoReport
		}
		return nil, err
	}
	return &r, nil
}

// list returns report keys oldest first. Keys embed the finish time, so
// lexical order is chronological.
func (a *StorageArchiver) list(ctx context.Context, userID, platform string) ([]string, error) {
	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: a.dir(userID, platform)}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list reports: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// nopArchiver keeps nothing.
type nopArchiver struct{}

func (nopArchiver) Archive(context.Context, *Result) error { return nil }

func (nopArchiver) Latest(context.Context, string, string) (*Result, error) {
	return nil, ErrNoReport
}
