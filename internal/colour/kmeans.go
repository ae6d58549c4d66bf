package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"sort"
)

// MaxClusters bounds the number of colours Extract will produce.
const MaxClusters = 64

// Cluster is one extracted colour and the share of sampled pixels it represents.
type Cluster struct {
	Colour RGB
	Weight float64
}

// KMeans extracts dominant colours from an image with k-means++ clustering.
// A KMeans value is not safe for concurrent use: it owns its random source.
type KMeans struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeans creates a KMeans extractor drawing initial centroids from rng.
func NewKMeans(rng *rand.Rand) *KMeans {
	return &KMeans{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
		rng:           rng,
	}
}

// Extract clusters the image into at most count colours, heaviest first.
// Images with fewer distinct colours than count return every distinct colour.
func (e *KMeans) Extract(img image.Image, count int) ([]Cluster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 || count > MaxClusters {
		return nil, fmt.Errorf("colour count must be between 1 and %d, got %d", MaxClusters, count)
	}

	points := e.sample(img)
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	unique := distinct(points)
	if len(unique) <= count {
		return weigh(points, unique), nil
	}

	centroids := e.cluster(points, count)
	return weigh(points, centroids), nil
}

// point3D represents a point in RGB space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distanceSq(o point3D) float64 {
	dr, dg, db := p.R-o.R, p.G-o.G, p.B-o.B
	return dr*dr + dg*dg + db*db
}

func (p point3D) rgb() RGB {
	return RGB{R: roundChannel(p.R), G: roundChannel(p.G), B: roundChannel(p.B)}
}

func roundChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// sample grid-samples the image down to roughly maxSamples opaque pixels.
func (e *KMeans) sample(img image.Image) []point3D {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	step := 1
	if total > e.maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(e.maxSamples))), 1)
	}

	points := make([]point3D, 0, min(total, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			points = append(points, point3D{R: float64(r >> 8), G: float64(g >> 8), B: float64(b >> 8)})
		}
	}
	return points
}

func distinct(points []point3D) []point3D {
	seen := make(map[point3D]struct{}, len(points))
	out := make([]point3D, 0)
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (e *KMeans) cluster(points []point3D, k int) []point3D {
	centroids := e.seedCentroids(points, k)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range e.maxIterations {
		changed := 0
		for i, p := range points {
			n := nearest(p, centroids)
			if assignments[i] != n {
				assignments[i] = n
				changed++
			}
		}
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recentre(points, assignments, k)
		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(next[i]))
		}
		centroids = next
		if movement/float64(k) < e.convergence {
			break
		}
	}
	return centroids
}

// seedCentroids picks initial centroids with k-means++.
func (e *KMeans) seedCentroids(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.IntN(len(points))])

	weights := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			weights[i] = p.distanceSq(centroids[nearest(p, centroids)])
			total += weights[i]
		}
		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.rng.Float64() * total
		cumulative := 0.0
		for i, w := range weights {
			cumulative += w
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}
	return centroids
}

func (e *KMeans) recentre(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[e.rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}

func nearest(p point3D, centroids []point3D) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.distanceSq(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// weigh assigns every sampled point to its nearest centre and returns the
// centres ordered by descending share, ties broken by hex for stable output.
func weigh(points, centres []point3D) []Cluster {
	counts := make([]int, len(centres))
	for _, p := range points {
		counts[nearest(p, centres)]++
	}

	clusters := make([]Cluster, 0, len(centres))
	for i, c := range centres {
		if counts[i] == 0 {
			continue
		}
		clusters = append(clusters, Cluster{
			Colour: c.rgb(),
			Weight: float64(counts[i]) / float64(len(points)),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Weight != clusters[j].Weight {
			return clusters[i].Weight > clusters[j].Weight
		}
		return clusters[i].Colour.Hex() < clusters[j].Colour.Hex()
	})
	return clusters
}
