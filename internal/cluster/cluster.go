// Package cluster groups embedding vectors into a fixed number of
// partitions. The capability is seedable so repeated runs over identical
// vectors produce identical partitions.
package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Clusterer assigns an integer label to each input vector. Labels are in
// [0, k); the returned slice is positionally aligned with the input.
type Clusterer interface {
	Partition(vectors [][]float32, k int) ([]int, error)
}

// ErrNoVectors is returned when there is nothing to cluster.
var ErrNoVectors = errors.New("no vectors to cluster")

const defaultMaxIterations = 100

// KMeans is a Lloyd's-iteration k-means Clusterer with a fixed seed.
type KMeans struct {
	Seed          int64
	MaxIterations int
}

// NewKMeans creates a seeded KMeans clusterer.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{Seed: seed, MaxIterations: defaultMaxIterations}
}

// Partition clusters the vectors into k groups. When k exceeds the number
// of vectors it is clamped, so every label still names a non-empty
// partition.
func (km *KMeans) Partition(vectors [][]float32, k int) ([]int, error) {
	n := len(vectors)
	if n == 0 {
		return nil, ErrNoVectors
	}
	if k <= 0 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if k > n {
		k = n
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	rng := rand.New(rand.NewSource(km.Seed))

	// Initialize centroids from k distinct input vectors.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = toFloat64(vectors[idx])
	}

	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	labels := make([]int, n)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if labels[i] != best || iter == 0 {
				labels[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}
		for i, v := range vectors {
			counts[labels[i]]++
			for d, x := range v {
				sums[labels[i]][d] += float64(x)
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Reseed an empty cluster from a random vector so every
				// label keeps a real partition.
				centroids[c] = toFloat64(vectors[rng.Intn(n)])
				continue
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}

		if !changed {
			break
		}
	}

	return labels, nil
}

func nearestCentroid(v []float32, centroids [][]float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for c, centroid := range centroids {
		var dist float64
		for d, x := range v {
			diff := float64(x) - centroid[d]
			dist += diff * diff
		}
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
