package storage

import (
	"alcyxob/exercise-screen/internal/domain"
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations the screen needs.
type FileStorage interface {
	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// ImageURLResolver turns an image reference into something a client can load.
// Bundled assets map to a served location, remote URIs pass through, and "no
// image" resolves to the empty string.
type ImageURLResolver interface {
	ResolveURL(ctx context.Context, ref domain.ImageRef) (string, error)
}

// Error constants for storage layer
var (
	ErrInvalidAssetID = errors.New("invalid bundled asset id")
)

// validAssetID refuses ids that could escape the asset directory or bucket prefix.
func validAssetID(id string) bool {
	return id != "" && !strings.Contains(id, "/") && !strings.Contains(id, `\`) && id != "." && id != ".."
}

// staticResolver serves bundled assets from a local route (see api.SetupRoutes).
type staticResolver struct {
	urlPrefix string
}

// NewStaticResolver resolves bundled assets to urlPrefix/<assetID>.
func NewStaticResolver(urlPrefix string) ImageURLResolver {
	if urlPrefix == "" {
		urlPrefix = "/assets"
	}
	return &staticResolver{urlPrefix: urlPrefix}
}

func (r *staticResolver) ResolveURL(_ context.Context, ref domain.ImageRef) (string, error) {
	switch ref.Kind {
	case domain.ImageBundled:
		if !validAssetID(ref.AssetID) {
			return "", ErrInvalidAssetID
		}
		return path.Join(r.urlPrefix, ref.AssetID), nil
	case domain.ImageRemote:
		return ref.URI, nil
	default:
		return "", nil
	}
}

// bucketResolver presigns bundled assets stored under a key prefix in object storage.
type bucketResolver struct {
	files     FileStorage
	keyPrefix string
	expires   time.Duration
}

// NewBucketResolver resolves bundled assets to presigned download URLs for keyPrefix+assetID.
func NewBucketResolver(files FileStorage, keyPrefix string, expires time.Duration) ImageURLResolver {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	return &bucketResolver{files: files, keyPrefix: keyPrefix, expires: expires}
}

func (r *bucketResolver) ResolveURL(ctx context.Context, ref domain.ImageRef) (string, error) {
	switch ref.Kind {
	case domain.ImageBundled:
		if !validAssetID(ref.AssetID) {
			return "", ErrInvalidAssetID
		}
		return r.files.GeneratePresignedDownloadURL(ctx, r.keyPrefix+ref.AssetID, r.expires)
	case domain.ImageRemote:
		return ref.URI, nil
	default:
		return "", nil
	}
}
