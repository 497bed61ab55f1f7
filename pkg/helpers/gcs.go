package helpers

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. With an empty
// credsPath, Application Default Credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject streams r into bucket/objectPath and returns the public URL.
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, no chunking
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds a public URL for an object.
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
