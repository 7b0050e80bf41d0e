package storage

import (
	"alcyxob/exercise-screen/internal/config"
	"alcyxob/exercise-screen/internal/domain"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	keys    []string
	expires time.Duration
}

func (r *recordingStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	r.keys = append(r.keys, key)
	r.expires = expires
	return "https://bucket.example/" + key + "?sig=1", nil
}

func TestStaticResolver(t *testing.T) {
	ctx := context.Background()
	r := NewStaticResolver("/static/img")

	got, err := r.ResolveURL(ctx, domain.BundledImage("deadlift.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/static/img/deadlift.jpeg", got)

	got, err = r.ResolveURL(ctx, domain.RemoteImage("file:///tmp/a.png"))
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/a.png", got)

	got, err = r.ResolveURL(ctx, domain.NoImage())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.ResolveURL(ctx, domain.ImageRef{Kind: domain.ImageBundled, AssetID: "../secret"})
	assert.ErrorIs(t, err, ErrInvalidAssetID)
}

func TestBucketResolverPresignsBundledAssets(t *testing.T) {
	ctx := context.Background()
	files := &recordingStorage{}
	r := NewBucketResolver(files, "assets/", 0)

	got, err := r.ResolveURL(ctx, domain.BundledImage("hammer_curl.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/assets/hammer_curl.jpeg?sig=1", got)
	assert.Equal(t, []string{"assets/hammer_curl.jpeg"}, files.keys)
	assert.Equal(t, DefaultPresignedURLExpiry, files.expires)

	got, err = r.ResolveURL(ctx, domain.RemoteImage("content://media/1"))
	require.NoError(t, err)
	assert.Equal(t, "content://media/1", got)
	assert.Len(t, files.keys, 1)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL("", true))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://already", endpointURL("http://already", true))
}

func TestS3StoragePresignsWithoutNetwork(t *testing.T) {
	files, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
		BucketName:      "exercise-assets",
		UseSSL:          false,
	})
	require.NoError(t, err)

	raw, err := files.GeneratePresignedDownloadURL(context.Background(), "assets/bench_press.jpeg", time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/exercise-assets/assets/bench_press.jpeg"))
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}
