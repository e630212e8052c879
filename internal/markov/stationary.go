package markov

import (
	"fmt"
	"math"
)

// Stationary estimates the chain's stationary distribution by power
// iteration starting from the uniform distribution. Iteration stops
// when successive iterates differ by less than tol in L1 norm, and
// fails after maxIter iterations without converging.
func (c *Chain) Stationary(maxIter int, tol float64) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := len(c.States)
	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		for j := range next {
			next[j] = 0
		}
		for i, p := range pi {
			if p == 0 {
				continue
			}
			for j, q := range c.Transitions[i] {
				next[j] += p * q
			}
		}

		var diff float64
		for j := range next {
			diff += math.Abs(next[j] - pi[j])
		}
		pi, next = next, pi
		if diff < tol {
			return pi, nil
		}
	}
	return nil, fmt.Errorf("stationary distribution did not converge after %d iterations", maxIter)
}
