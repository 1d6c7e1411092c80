package rand

import (
	"math/rand"
	"time"
)

// NewSource returns a generator seeded with seed. Two generators built from
// the same seed yield the same sequence.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomSeed returns a seed that differs from run to run.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

// ChoiceFrom picks required distinct values out of [0, total) using a
// partial Fisher-Yates shuffle. required is clamped to total.
func ChoiceFrom(r *rand.Rand, total int, required int) []int {
	if required > total {
		required = total
	}
	if required <= 0 {
		return []int{}
	}

	choices := make([]int, total)
	for i := range choices {
		choices[i] = i
	}
	for i := 0; i < required; i++ {
		j := i + r.Intn(total-i)
		choices[i], choices[j] = choices[j], choices[i]
	}

	return choices[:required]
}

// PairFromIndex decodes idx, a row-major index into the upper triangle of an
// n x n matrix, into the pair (u, v) with u < v.
func PairFromIndex(idx int, n int) (int, int) {
	u := 0
	row := n - 1
	for idx >= row {
		idx -= row
		u++
		row--
	}

	return u, u + 1 + idx
}
