// SPDX-License-Identifier: MPL-2.0

package container

import "context"

// ImageCache answers whether an image tag exists locally. The answer is a
// point-in-time observation; it does not lock the tag or check contents.
type ImageCache struct {
	engine Engine
}

// NewImageCache creates an ImageCache backed by engine.
func NewImageCache(engine Engine) *ImageCache {
	return &ImageCache{engine: engine}
}

// Exists reports whether `image ls -q <ref>` lists at least one image. Any
// engine failure is reported as false.
func (c *ImageCache) Exists(ctx context.Context, ref string) bool {
	ids, err := c.engine.ImageIDs(ctx, ref)
	if err != nil {
		return false
	}
	return ids != ""
}
