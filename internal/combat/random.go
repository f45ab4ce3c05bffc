package combat

import (
	"fmt"
	"math/rand"
)

// CheckRandomSuccess rolls against a likelihood in [0,1].
// A likelihood of 0 never succeeds and 1 always does.
func CheckRandomSuccess(rng *rand.Rand, likelihood float64) (bool, error) {
	if likelihood < 0 || likelihood > 1 {
		return false, fmt.Errorf("%w: %v", ErrInvalidProbability, likelihood)
	}
	return likelihood > 0 && rng.Float64() <= likelihood, nil
}
