package checks

import (
	"context"
	"fmt"
	"time"

	"library-sync/core/storage"
	"library-sync/feature/catalog"

	"github.com/minio/minio-go/v7"
)

// CatalogReport describes the catalog snapshot object.
type CatalogReport struct {
	Object       string     `json:"object"`
	Present      bool       `json:"present"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
	Entries      int        `json:"entries"`
	// Invalid counts entries without an id or a name. The sync pipeline can never match them.
	Invalid int      `json:"invalid"`
	Errors  []string `json:"errors"`
}

// CheckCatalog verifies that the catalog snapshot exists and parses.
// A missing or unreadable snapshot is reported, not returned as an error.
func CheckCatalog(ctx context.Context, client storage.Client, bucket, object string) (*CatalogReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &CatalogReport{Object: object, Errors: []string{}}

	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			report.Errors = append(report.Errors, "catalog snapshot not found")
			return report, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}
	report.Present = true
	report.Size = info.Size
	if !info.LastModified.IsZero() {
		modified := info.LastModified
		report.LastModified = &modified
	}

	var entries []catalog.Entry
	if err := storage.GetJSON(ctx, client, bucket, object, &entries); err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report, nil
	}
	report.Entries = len(entries)

	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if e.CatalogID == 0 || e.Name == "" {
			report.Invalid++
			continue
		}
		if _, dup := seen[e.CatalogID]; dup {
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate catalog id %d", e.CatalogID))
		}
		seen[e.CatalogID] = struct{}{}
	}
	return report, nil
}
