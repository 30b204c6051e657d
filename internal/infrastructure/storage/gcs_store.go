package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

var ErrNotConfigured = errors.New("gcs not configured")

// GCSStore writes uploaded assets to a bucket and returns their public URL.
// BaseURL points at a CDN in front of the bucket and may be empty.
type GCSStore struct {
	Client  *gcs.Client
	Bucket  string
	BaseURL string
}

func NewGCSStore(client *gcs.Client, bucket, baseURL string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, BaseURL: baseURL}
}

func (s *GCSStore) Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s == nil || s.Client == nil || s.Bucket == "" {
		return "", ErrNotConfigured
	}
	if err := helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r); err != nil {
		return "", err
	}
	return helpers.PublicURL(s.BaseURL, s.Bucket, objectPath), nil
}

func (s *GCSStore) Delete(ctx context.Context, objectPath string) error {
	if s == nil || s.Client == nil || s.Bucket == "" {
		return ErrNotConfigured
	}
	return helpers.DeleteObject(ctx, s.Client, s.Bucket, objectPath)
}
