// Package image provides a source that extracts dominant colours from an
// image file or HTTP(S) URL.
package image

import (
	"context"
	"fmt"
	goimage "image"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/bstheme/internal/colour"
	"github.com/jmylchreest/bstheme/internal/image"
	"github.com/jmylchreest/bstheme/internal/palette"
	"github.com/jmylchreest/bstheme/internal/source"
	"github.com/jmylchreest/bstheme/internal/util/imagecache"
	httputil "github.com/jmylchreest/bstheme/internal/util/http"
)

// MinDistance is the CIEDE2000 distance below which two extracted colours
// are treated as the same.
const MinDistance = 0.03

// SeedMode determines how the random seed for k-means clustering is generated.
type SeedMode string

const (
	// SeedModeContent derives the seed from the image pixels (default).
	SeedModeContent SeedMode = "content"
	// SeedModeManual uses --image.seed-value.
	SeedModeManual SeedMode = "manual"
	// SeedModeRandom varies on every run.
	SeedModeRandom SeedMode = "random"
)

// Source clusters an image into candidate colours.
type Source struct {
	path      string
	colours   int
	seedMode  string
	seedValue uint64
	cache     bool
	cacheDir  string
}

// New creates a new image source.
func New() *Source {
	return &Source{
		seedMode: string(SeedModeContent),
		cache:    true,
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "image"
}

// Description returns the source description.
func (s *Source) Description() string {
	return "Extract dominant colours from an image file or HTTP(S) URL"
}

// RegisterFlags registers source-specific flags.
func (s *Source) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&s.path, "image.path", "", "Path to image file or HTTP(S) URL (required)")
	flags.IntVar(&s.colours, "image.colours", 0, fmt.Sprintf("Number of colours to extract, 1-%d (default from config)", colour.MaxClusters))
	flags.StringVar(&s.seedMode, "image.seed-mode", string(SeedModeContent), "K-means seed mode: content, manual, random")
	flags.Uint64Var(&s.seedValue, "image.seed-value", 0, "K-means seed (only used with --image.seed-mode=manual)")
	flags.BoolVar(&s.cache, "image.cache", true, "cache images downloaded from URLs")
	flags.StringVar(&s.cacheDir, "image.cache-dir", "", "image cache directory (default ~/.cache/bstheme/images)")
}

// Validate checks the path, colour count and seed mode.
func (s *Source) Validate() error {
	if s.path == "" {
		return fmt.Errorf("image path or URL is required (use --image.path)")
	}
	if err := image.ValidatePath(s.path); err != nil {
		return fmt.Errorf("invalid image path or URL: %w", err)
	}
	if s.colours != 0 && (s.colours < 1 || s.colours > colour.MaxClusters) {
		return fmt.Errorf("colours must be between 1 and %d, got %d", colour.MaxClusters, s.colours)
	}
	if !slices.Contains([]SeedMode{SeedModeContent, SeedModeManual, SeedModeRandom}, SeedMode(s.seedMode)) {
		return fmt.Errorf("invalid seed mode %q (use content, manual or random)", s.seedMode)
	}
	return nil
}

// Candidates loads the image and returns its cluster colours, heaviest first.
func (s *Source) Candidates(ctx context.Context, opts source.Options) ([]string, error) {
	logger := opts.Log()
	count := s.colours
	if count == 0 {
		count = opts.ImageColours
	}

	fetch := httputil.FetchOptions{Timeout: opts.HTTPTimeout}
	path := s.path
	if s.cache && httputil.IsURL(path) {
		local, err := imagecache.Path(ctx, path, imagecache.Options{Dir: s.cacheDir, Fetch: fetch})
		if err != nil {
			return nil, err
		}
		logger.Debug("using cached image", "url", path, "path", local)
		path = local
	}

	logger.Info("loading image", "path", path)
	img, err := image.Load(ctx, path, fetch)
	if err != nil {
		return nil, err
	}

	seed := s.seed(img)
	logger.Debug("extracting colours", "count", count, "seed_mode", s.seedMode, "seed", seed)

	clusters, err := colour.NewKMeans(palette.SeededRand(seed)).Extract(img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}

	hexes := Distinct(clusters, MinDistance)
	logger.Debug("extracted colours", "clusters", len(clusters), "distinct", len(hexes))
	return palette.Normalise(hexes)
}

func (s *Source) seed(img goimage.Image) uint64 {
	switch SeedMode(s.seedMode) {
	case SeedModeManual:
		return s.seedValue
	case SeedModeRandom:
		return palette.RandomSeed()
	default:
		return image.ContentSeed(img)
	}
}

// Distinct returns the cluster colours in order, dropping any colour within
// minDistance (CIEDE2000) of one already kept.
func Distinct(clusters []colour.Cluster, minDistance float64) []string {
	kept := make([]colorful.Color, 0, len(clusters))
	hexes := make([]string, 0, len(clusters))
	for _, c := range clusters {
		col := colorful.Color{
			R: float64(c.Colour.R) / 255,
			G: float64(c.Colour.G) / 255,
			B: float64(c.Colour.B) / 255,
		}
		if slices.ContainsFunc(kept, func(k colorful.Color) bool {
			return k.DistanceCIEDE2000(col) < minDistance
		}) {
			continue
		}
		kept = append(kept, col)
		hexes = append(hexes, c.Colour.Hex())
	}
	return hexes
}
