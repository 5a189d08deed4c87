package bucket

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRepo_NilBucket(t *testing.T) {
	_, err := NewImageRepo(nil)
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("images/AreaVolume/Q1a.png"))
	assert.Equal(t, "image/png", contentType("images/AreaVolume/Q1a"))
}

// runs against a storage emulator when STORAGE_EMULATOR_HOST is set
func TestUpload_Emulator(t *testing.T) {
	if os.Getenv("STORAGE_EMULATOR_HOST") == "" {
		t.Skip("STORAGE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	client, err := storage.NewClient(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	name := fmt.Sprintf("publisher-test-%d", time.Now().UnixNano())
	bucket := client.Bucket(name)
	require.NoError(t, bucket.Create(ctx, "publisher-test", nil))

	repo, err := NewImageRepo(bucket)
	require.NoError(t, err)

	payload := []byte("\x89PNG\r\n\x1a\nfake")
	require.NoError(t, repo.Upload(ctx, "images/AreaVolume/Q1a.png", bytes.NewReader(payload)))

	rc, err := bucket.Object("images/AreaVolume/Q1a.png").NewReader(ctx)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "image/png", rc.Attrs.ContentType)
}
