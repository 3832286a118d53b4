// Package objectstore keeps CSV exports in MinIO.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/motopecasjacare/erp/internal/domain"
)

const (
	exportPrefix    = "exports/"
	timestampLayout = "20060102T150405Z"
	csvContentType  = "text/csv; charset=utf-8"
)

// ExportStore writes and lists exports under exports/<dataset>/<timestamp>.csv
type ExportStore struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

// NewExportStore creates a new export store
func NewExportStore(client *minio.Client, bucket string, urlExpiry time.Duration) *ExportStore {
	if urlExpiry <= 0 {
		urlExpiry = time.Hour
	}
	return &ExportStore{client: client, bucket: bucket, urlExpiry: urlExpiry}
}

// ExportKey returns the object key of an export written at t
func ExportKey(dataset domain.ExportDataset, t time.Time) string {
	return exportPrefix + string(dataset) + "/" + t.UTC().Format(timestampLayout) + ".csv"
}

// datasetOf returns the dataset segment of an export key
func datasetOf(key string) string {
	rest := strings.TrimPrefix(key, exportPrefix)
	dataset, _, found := strings.Cut(rest, "/")
	if !found {
		return ""
	}
	return dataset
}

// PutExport uploads a finished CSV and returns its key
func (s *ExportStore) PutExport(ctx context.Context, dataset domain.ExportDataset, at time.Time, body []byte) (string, error) {
	key := ExportKey(dataset, at)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:        csvContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// ListExports returns the exports of a dataset, or of every dataset when
// empty, newest first, each with a presigned download URL.
func (s *ExportStore) ListExports(ctx context.Context, dataset string) ([]domain.ExportFile, error) {
	objects, err := s.list(ctx, dataset)
	if err != nil {
		return nil, err
	}

	files := make([]domain.ExportFile, 0, len(objects))
	for _, obj := range objects {
		link, err := s.client.PresignedGetObject(ctx, s.bucket, obj.Key, s.urlExpiry, url.Values{})
		if err != nil {
			return nil, fmt.Errorf("failed to presign %s: %w", obj.Key, err)
		}
		files = append(files, domain.ExportFile{
			Key:          obj.Key,
			Dataset:      datasetOf(obj.Key),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          link.String(),
		})
	}
	return files, nil
}

// Prune deletes all but the newest keep exports of a dataset and returns
// how many objects were removed.
func (s *ExportStore) Prune(ctx context.Context, dataset domain.ExportDataset, keep int) (int, error) {
	objects, err := s.list(ctx, string(dataset))
	if err != nil {
		return 0, err
	}
	if len(objects) <= keep {
		return 0, nil
	}

	removed := 0
	for _, obj := range objects[keep:] {
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
		removed++
	}
	return removed, nil
}

// Ping checks that the bucket is reachable
func (s *ExportStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func (s *ExportStore) list(ctx context.Context, dataset string) ([]minio.ObjectInfo, error) {
	prefix := exportPrefix
	if dataset != "" {
		prefix += dataset + "/"
	}

	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		objects = append(objects, obj)
	}
	sortNewestFirst(objects)
	return objects, nil
}

// sortNewestFirst orders objects by key, descending. Keys embed a sortable
// timestamp, so within a dataset this is newest first.
func sortNewestFirst(objects []minio.ObjectInfo) {
	sort.Slice(objects, func(i, j int) bool {
		ti, tj := path.Base(objects[i].Key), path.Base(objects[j].Key)
		if ti != tj {
			return ti > tj
		}
		return objects[i].Key < objects[j].Key
	})
}
