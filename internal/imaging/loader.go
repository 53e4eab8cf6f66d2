package imaging

import (
	"fmt"
	"image"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of decoded images kept by NewImageCache(0).
const DefaultCacheSize = 16

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant disk reads.
//
// Images are keyed by the exact path string passed to Load. The cache holds
// at most size entries and evicts the least recently used image when full,
// so long-running batch scans do not keep every target in memory.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(0)
//	bmp, err := cache.LoadBitmap("/path/to/canvas.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	images *lru.Cache[string, image.Image]
}

// NewImageCache creates an empty cache holding up to size images. A size of
// zero or less selects DefaultCacheSize.
func NewImageCache(size int) *ImageCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for non-positive sizes.
	images, _ := lru.New[string, image.Image](size)
	return &ImageCache{images: images}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG and JPEG.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid image
func (c *ImageCache) Load(path string) (image.Image, error) {
	if img, ok := c.images.Get(path); ok {
		return img, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.images.Add(path, img)
	return img, nil
}

// LoadBitmap loads path and converts it into a Bitmap ready for scanning.
func (c *ImageCache) LoadBitmap(path string) (*Bitmap, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return NewBitmap(img), nil
}

// LoadMany loads every readable path and silently skips the rest.
//
// The returned slices are parallel: paths[i] produced bitmaps[i]. Callers
// that must not lose inputs should check PathsExist first.
func (c *ImageCache) LoadMany(paths []string) (bitmaps []*Bitmap, loaded []string) {
	for _, p := range paths {
		if !PathExists(p) {
			continue
		}
		bmp, err := c.LoadBitmap(p)
		if err != nil {
			continue
		}
		bitmaps = append(bitmaps, bmp)
		loaded = append(loaded, p)
	}
	return bitmaps, loaded
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.images.Remove(path)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.images.Purge()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	return c.images.Len()
}

// PathExists reports whether path can be stat'ed.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// PathsExist reports whether every path exists.
func PathsExist(paths []string) bool {
	for _, p := range paths {
		if !PathExists(p) {
			return false
		}
	}
	return true
}

// SaveBitmap encodes b as PNG at path.
func SaveBitmap(path string, b *Bitmap) error {
	if err := imgio.Save(path, b.Image(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
