package vector

import (
	"math"
	"math/rand"
)

// RandomUnit draws one unit-length vector from the given source. Components
// are sampled from a standard normal so direction is uniform on the sphere.
func RandomUnit(r *rand.Rand, dims int) []float32 {
	v := make([]float32, dims)
	var norm float64
	for i := range v {
		x := r.NormFloat64()
		v[i] = float32(x)
		norm += x * x
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}

	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// DeterministicBatch produces the same vector sequence for the same seed,
// so repeated runs issue identical queries against every backend.
func DeterministicBatch(seed int64, count, dims int) [][]float32 {
	r := rand.New(rand.NewSource(seed))
	batch := make([][]float32, count)
	for i := range batch {
		batch[i] = RandomUnit(r, dims)
	}
	return batch
}
