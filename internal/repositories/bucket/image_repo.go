package bucket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"cloud.google.com/go/storage"
)

const defaultContentType = "image/png"

// ImageRepo uploads images into a Cloud Storage bucket
type ImageRepo struct{ bucket *storage.BucketHandle }

func NewImageRepo(bucket *storage.BucketHandle) (*ImageRepo, error) {
	if bucket == nil {
		return nil, errors.New("storage bucket not initialized")
	}
	return &ImageRepo{bucket: bucket}, nil
}

// Upload writes src to objectPath, replacing any existing object. The
// object is only committed if the whole of src was copied.
func (r *ImageRepo) Upload(ctx context.Context, objectPath string, src io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := r.bucket.Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType(objectPath)

	if _, err := io.Copy(w, src); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", objectPath, err)
	}
	return nil
}

func contentType(objectPath string) string {
	if t := mime.TypeByExtension(path.Ext(objectPath)); t != "" {
		return t
	}
	return defaultContentType
}
