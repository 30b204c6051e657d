package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a storage client. An empty credsPath uses
// Application Default Credentials.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject streams r into bucket/objectPath. Objects are immutable
// (their names carry a uuid) so they are cached for a year.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) error {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.ChunkSize = 0
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("gcs write %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", objectPath, err)
	}
	return nil
}

// DeleteObject removes bucket/objectPath. A missing object is not an error.
func DeleteObject(ctx context.Context, client *storage.Client, bucket, objectPath string) error {
	err := client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", objectPath, err)
	}
	return nil
}

// PublicURL joins objectPath onto baseURL, or onto the bucket's
// storage.googleapis.com address when baseURL is empty.
func PublicURL(baseURL, bucket, objectPath string) string {
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(objectPath, "/")
}
