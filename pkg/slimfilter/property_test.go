package slimfilter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// boundedFalsePositiveRate builds a filter from n random keys at the
// given fp_pow, probes it with non-member keys drawn from the same
// seeded source, and returns the observed false-positive rate.
func boundedFalsePositiveRate(t *testing.T, seed uint64, n, probes, fpPow int) float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	members := make(map[uint64]struct{}, n)
	keys := make([]uint64, 0, n)
	for len(keys) < n {
		k := rng.Uint64()
		if _, ok := members[k]; ok {
			continue
		}
		members[k] = struct{}{}
		keys = append(keys, k)
	}

	b := New(WithCapacityHint(n))
	b.AddKeys(keys)
	f, err := b.Build(fpPow)
	require.NoError(t, err)

	for _, k := range keys {
		require.Truef(t, f.Contains(k), "false negative for %d", k)
	}

	var falsePositives int
	var tried int
	for tried < probes {
		k := rng.Uint64()
		if _, ok := members[k]; ok {
			continue
		}
		tried++
		if f.Contains(k) {
			falsePositives++
		}
	}
	return float64(falsePositives) / float64(probes)
}

// No false negatives and a bounded false-positive rate across several
// independent seeds.
func TestProperty_BoundedFalsePositiveRate_AcrossSeeds(t *testing.T) {
	const fpPow = 8
	const bound = 1.0 / (1 << fpPow)
	const slack = 4.0 // small constant headroom around the nominal 2^-fp_pow bound

	seeds := []uint64{1, 2, 3, 4, 5}
	for _, seed := range seeds {
		rate := boundedFalsePositiveRate(t, seed, 20_000, 50_000, fpPow)
		assert.LessOrEqualf(t, rate, bound*slack, "seed %d: observed rate %f exceeds %d*2^-%d", seed, rate, int(slack), fpPow)
	}
}

// A build-once filter must be safe to query from many goroutines at
// once.
func TestProperty_ConcurrentReaders(t *testing.T) {
	rng := rand.New(rand.NewSource(2026))
	keys := make([]uint64, 0, 10_000)
	seen := make(map[uint64]struct{}, 10_000)
	for len(keys) < 10_000 {
		k := rng.Uint64()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	b := New()
	b.AddKeys(keys)
	f, err := b.Build(10)
	require.NoError(t, err)

	g, _ := errgroup.WithContext(context.Background())
	const readers = 32
	for r := 0; r < readers; r++ {
		r := r
		g.Go(func() error {
			for i := r; i < len(keys); i += readers {
				if !f.Contains(keys[i]) {
					return assertionError{key: keys[i]}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

type assertionError struct{ key uint64 }

func (e assertionError) Error() string {
	return "concurrent Contains returned false for an inserted key"
}
