package standings

import (
	"math"
	"slices"
)

// Score accumulates per-match scores for one agent
type Score struct {
	N      int
	Sum    float64
	SumSq  float64 // Sum of squares for variance calculation
	Values []float64
}

// Add records one match score
func (s *Score) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the average score per match
func (s *Score) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Score) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumSq-float64(s.N)*mean*mean)/float64(s.N-1))
}

// StdDev returns the sample standard deviation
func (s *Score) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Score) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the mean
func (s *Score) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median score
func (s *Score) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
