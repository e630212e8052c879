package stats

// Histogram is a fixed-width binning of samples. Edges has one more
// element than Counts; bucket i covers [Edges[i], Edges[i+1]), except
// the final bucket, which is closed on the right so the maximum sample
// lands in it.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// NewHistogram bins samples into bins equal-width buckets spanning
// [min, max]. It returns a zero Histogram when samples is empty or
// bins is not positive.
func NewHistogram(samples []float64, bins int) Histogram {
	if bins <= 0 || len(samples) == 0 {
		return Histogram{}
	}

	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		// All samples identical; widen so the single bucket is well formed.
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	h := Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
	}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	for _, v := range samples {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}
