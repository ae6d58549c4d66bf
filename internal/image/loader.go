// Package image loads images from disk or HTTP(S) for colour extraction.
package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/bstheme/internal/util/http"
)

// SupportedExtensions returns the image file extensions that can be decoded.
func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// ValidatePath checks that path is a URL or an existing, decodable image file.
// URLs are not fetched.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if httputil.IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(SupportedExtensions(), ext) {
			return fmt.Errorf("unsupported image type %q (supported: %s)", ext, strings.Join(SupportedExtensions(), ", "))
		}
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// Load decodes the image at path, which may be a local file or an HTTP(S) URL.
func Load(ctx context.Context, path string, opts httputil.FetchOptions) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if httputil.IsURL(path) {
		data, err = httputil.Fetch(ctx, path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
	} else {
		data, err = os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
		if err != nil {
			return nil, fmt.Errorf("failed to read image file: %w", err)
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// ContentSeed derives a deterministic seed from image dimensions and a grid
// sample of pixels, so the same picture always clusters the same way
// regardless of where it was loaded from.
func ContentSeed(img image.Image) uint64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy()))
	hasher.Write(dimBytes)

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	return binary.LittleEndian.Uint64(hasher.Sum(nil)[:8])
}
