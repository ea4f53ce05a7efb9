// Package ranking scores ranked recommendation lists.
//
// A relevance list holds one score per ranked item, best-ranked first;
// position 0 is rank 1. Binary metrics treat any non-zero score as
// relevant, while DCG and NDCG use the scores as graded gains.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/agentstation/repurpose/pkg/errors"
)

// Errors returned for invalid metric arguments. All wrap
// errors.ErrInvalidInput.
var (
	ErrInvalidK        = fmt.Errorf("%w: k out of range", errors.ErrInvalidInput)
	ErrInvalidMethod   = fmt.Errorf("%w: method must be 0 or 1", errors.ErrInvalidInput)
	ErrShortRelevance  = fmt.Errorf("%w: relevance list shorter than k", errors.ErrInvalidInput)
	ErrTooManyRelevant = fmt.Errorf("%w: more relevant items retrieved than maxRel", errors.ErrInvalidInput)
	ErrInvalidMaxRel   = fmt.Errorf("%w: maxRel must be positive", errors.ErrInvalidInput)
	ErrEmptyRelevance  = fmt.Errorf("%w: no relevance lists", errors.ErrInvalidInput)
)

// DCG weighting schemes.
const (
	// DCGStandard weights ranks as [1, 1, 1/log2(3), 1/log2(4), ...].
	DCGStandard = 0
	// DCGShifted weights ranks as [1, 1/log2(3), 1/log2(4), ...].
	DCGShifted = 1
)

// firstRelevant returns the 0-based position of the first relevant item, or -1.
func firstRelevant(r []float64) int {
	for i, v := range r {
		if v != 0 {
			return i
		}
	}
	return -1
}

func countRelevant(r []float64) int {
	n := 0
	for _, v := range r {
		if v != 0 {
			n++
		}
	}
	return n
}

// truncate returns r[:k], or all of r when k is zero or exceeds len(r).
func truncate(r []float64, k int) []float64 {
	if k <= 0 || k > len(r) {
		return r
	}
	return r[:k]
}

// HitRateAtK returns the share of lists with a relevant item within the
// first k ranks. k must be between 1 and the length of the first list.
func HitRateAtK(rs [][]float64, k int) (float64, error) {
	if len(rs) == 0 {
		return 0, ErrEmptyRelevance
	}
	if k < 1 || k > len(rs[0]) {
		return 0, ErrInvalidK
	}
	hits := 0
	for _, r := range rs {
		if countRelevant(truncate(r, k)) > 0 {
			hits++
		}
	}
	return float64(hits) / float64(len(rs)), nil
}

// MeanRank returns the mean rank of the first relevant item. Lists with
// no relevant item contribute a rank of 0.
func MeanRank(rs [][]float64) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += firstRelevant(r) + 1
	}
	return float64(sum) / float64(len(rs))
}

// MeanReciprocalRank returns the mean of 1/rank of the first relevant
// item, counting lists without one as 0.
func MeanReciprocalRank(rs [][]float64) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rs {
		sum += reciprocalRank(r)
	}
	return sum / float64(len(rs))
}

func reciprocalRank(r []float64) float64 {
	if i := firstRelevant(r); i >= 0 {
		return 1 / float64(i+1)
	}
	return 0
}

// RPrecision returns the precision over the prefix ending at the last
// relevant item.
func RPrecision(r []float64) float64 {
	last := -1
	for i, v := range r {
		if v != 0 {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	return float64(countRelevant(r[:last+1])) / float64(last+1)
}

// PrecisionAtK returns the share of relevant items among the first k.
// k == 0 considers the whole list.
func PrecisionAtK(r []float64, k int) (float64, error) {
	if k < 0 {
		return 0, ErrInvalidK
	}
	if k > len(r) {
		return 0, ErrShortRelevance
	}
	top := truncate(r, k)
	if len(top) == 0 {
		return 0, nil
	}
	return float64(countRelevant(top)) / float64(len(top)), nil
}

// RecallAtK returns the number of relevant items among the first k
// divided by maxRel. k == 0 considers the whole list.
func RecallAtK(r []float64, maxRel, k int) (float64, error) {
	if k < 0 {
		return 0, ErrInvalidK
	}
	if maxRel <= 0 {
		return 0, ErrInvalidMaxRel
	}
	n := countRelevant(truncate(r, k))
	if n > maxRel {
		return 0, ErrTooManyRelevant
	}
	return float64(n) / float64(maxRel), nil
}

// F1AtK returns the harmonic mean of PrecisionAtK and RecallAtK, or 0
// when both are 0.
func F1AtK(r []float64, maxRel, k int) (float64, error) {
	p, err := PrecisionAtK(r, k)
	if err != nil {
		return 0, err
	}
	rec, err := RecallAtK(r, maxRel, k)
	if err != nil {
		return 0, err
	}
	if p+rec == 0 {
		return 0, nil
	}
	return 2 * p * rec / (p + rec), nil
}

// AveragePrecision returns the mean of the precision at each relevant
// position, or 0 when nothing is relevant.
func AveragePrecision(r []float64) float64 {
	sum, hits := 0.0, 0
	for i, v := range r {
		if v == 0 {
			continue
		}
		hits++
		sum += float64(hits) / float64(i+1)
	}
	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

// MeanAveragePrecision returns the mean AveragePrecision over lists.
func MeanAveragePrecision(rs [][]float64) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rs {
		sum += AveragePrecision(r)
	}
	return sum / float64(len(rs))
}

// DCGAtK returns the discounted cumulative gain of the first k items.
func DCGAtK(r []float64, k, method int) (float64, error) {
	if k < 1 {
		return 0, ErrInvalidK
	}
	if method != DCGStandard && method != DCGShifted {
		return 0, ErrInvalidMethod
	}
	top := truncate(r, k)
	if len(top) == 0 {
		return 0, nil
	}

	dcg := 0.0
	switch method {
	case DCGStandard:
		dcg = top[0]
		for i := 1; i < len(top); i++ {
			dcg += top[i] / math.Log2(float64(i+1))
		}
	case DCGShifted:
		for i, v := range top {
			dcg += v / math.Log2(float64(i+2))
		}
	}
	return dcg, nil
}

// NDCGAtK returns DCGAtK normalized by the DCG of the ideal ordering, or
// 0 when the ideal DCG is 0.
func NDCGAtK(r []float64, k, method int) (float64, error) {
	ideal := append([]float64(nil), r...)
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))

	best, err := DCGAtK(ideal, k, method)
	if err != nil {
		return 0, err
	}
	if best == 0 {
		return 0, nil
	}
	dcg, err := DCGAtK(r, k, method)
	if err != nil {
		return 0, err
	}
	return dcg / best, nil
}
