// Package picker describes the on-device image picking capability the add-exercise
// form delegates to, plus a terminal implementation backed by an external command.
package picker

import (
	"context"
	"errors"
)

// MediaType restricts what the picker may return.
type MediaType string

const (
	MediaImages MediaType = "images"
)

// MaxQuality asks the picker for the original, uncompressed asset.
const MaxQuality = 1.0

// Options configure a single pick.
type Options struct {
	Mode    MediaType `json:"mode"`
	Quality float64   `json:"quality"`
}

// DefaultOptions is what the add form always requests: images only, maximum quality.
func DefaultOptions() Options {
	return Options{Mode: MediaImages, Quality: MaxQuality}
}

// Asset is one picked item.
type Asset struct {
	URI string `json:"uri"`
}

// Result mirrors the capability's answer: either cancelled, or a list of assets.
type Result struct {
	Cancelled bool    `json:"cancelled"`
	Assets    []Asset `json:"assets,omitempty"`
}

// FirstURI returns the first asset's URI. ok is false when the pick was cancelled
// or produced no usable asset.
func (r Result) FirstURI() (uri string, ok bool) {
	if r.Cancelled || len(r.Assets) == 0 || r.Assets[0].URI == "" {
		return "", false
	}
	return r.Assets[0].URI, true
}

// ImagePicker is the external capability. Implementations may block for an
// arbitrary time while the user chooses.
type ImagePicker interface {
	Pick(ctx context.Context, opts Options) (Result, error)
}

// Func adapts a plain function to ImagePicker.
type Func func(ctx context.Context, opts Options) (Result, error)

func (f Func) Pick(ctx context.Context, opts Options) (Result, error) { return f(ctx, opts) }

// --- Error Definitions ---
var (
	ErrUnavailable = errors.New("image picker is not available")
	ErrNotAnImage  = errors.New("picked file is not an image")
)

// Unavailable is used when no picker is configured; every pick fails.
var Unavailable ImagePicker = Func(func(context.Context, Options) (Result, error) {
	return Result{}, ErrUnavailable
})
