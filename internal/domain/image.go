package domain

import (
	"encoding/json"
	"fmt"
)

// ImageKind tags which variant an ImageRef holds.
type ImageKind string

const (
	ImageNone    ImageKind = ""        // No image attached
	ImageBundled ImageKind = "bundled" // Asset shipped with the app (default exercises)
	ImageRemote  ImageKind = "remote"  // URI returned by the image picker (file://, content://, https://)
)

// ImageRef is a tagged variant: None, Bundled(AssetID) or Remote(URI).
// Only the field matching Kind is meaningful.
type ImageRef struct {
	Kind    ImageKind `json:"kind,omitempty"`
	AssetID string    `json:"assetId,omitempty"`
	URI     string    `json:"uri,omitempty"`
}

// NoImage returns the empty reference.
func NoImage() ImageRef { return ImageRef{} }

// BundledImage references a bundled asset by its identifier (e.g. "bench_press.jpeg").
func BundledImage(assetID string) ImageRef {
	if assetID == "" {
		return NoImage()
	}
	return ImageRef{Kind: ImageBundled, AssetID: assetID}
}

// RemoteImage references an image by URI.
func RemoteImage(uri string) ImageRef {
	if uri == "" {
		return NoImage()
	}
	return ImageRef{Kind: ImageRemote, URI: uri}
}

// IsNone reports whether no image is referenced.
func (r ImageRef) IsNone() bool { return r.Kind == ImageNone }

// String renders the reference for logs and terminal output.
func (r ImageRef) String() string {
	switch r.Kind {
	case ImageBundled:
		return "bundled:" + r.AssetID
	case ImageRemote:
		return r.URI
	default:
		return "none"
	}
}

// UnmarshalJSON rejects unknown kinds so a malformed reference never reaches the store.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	type plain ImageRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	switch p.Kind {
	case ImageNone:
		*r = NoImage()
	case ImageBundled:
		*r = BundledImage(p.AssetID)
	case ImageRemote:
		*r = RemoteImage(p.URI)
	default:
		return fmt.Errorf("unknown image kind %q", p.Kind)
	}
	return nil
}
