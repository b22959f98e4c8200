// Package imageres loads image resources for image-backed entities.
package imageres

import (
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/inamate/flowdraw/internal/document"
)

// Loader decodes image files and caches them by path.
//
// Loader is safe for concurrent use. Cached images stay in memory until
// Evict or Clear.
type Loader struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

func NewLoader() *Loader {
	return &Loader{images: make(map[string]image.Image)}
}

// Load returns the decoded image at path, reading it from disk on first use.
// EXIF orientation is applied.
func (l *Loader) Load(path string) (image.Image, error) {
	l.mu.RLock()
	if img, ok := l.images[path]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	l.mu.Lock()
	l.images[path] = img
	l.mu.Unlock()
	return img, nil
}

// Stat reports the pixel size of the image at path.
func (l *Loader) Stat(path string) (document.ImageInfo, error) {
	img, err := l.Load(path)
	if err != nil {
		return document.ImageInfo{}, err
	}
	b := img.Bounds()
	return document.ImageInfo{Width: b.Dx(), Height: b.Dy()}, nil
}

// Scaled returns the image stretched to exactly width x height pixels, the
// way an image entity's fit frame displays it.
func (l *Loader) Scaled(path string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame %dx%d", width, height)
	}
	img, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Evict drops one cached image.
func (l *Loader) Evict(path string) {
	l.mu.Lock()
	delete(l.images, path)
	l.mu.Unlock()
}

// Clear drops every cached image.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.images = make(map[string]image.Image)
	l.mu.Unlock()
}

// Len returns the number of cached images.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}
