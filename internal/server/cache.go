package server

import (
	"image"
	"sync"

	"github.com/ironsheep/contour-tools/internal/imaging"
)

// imageCache keeps decoded images by path so repeated tool calls on the same
// file skip disk I/O. Entries live for the lifetime of the server.
type imageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[string]image.Image)}
}

// Load returns the cached image for path, loading it on first use.
func (c *imageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *imageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}
