package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/ranking"
)

const eps = 1e-9

func TestMeanReciprocalRank(t *testing.T) {
	assert.InDelta(t, 0.61111111111111105, ranking.MeanReciprocalRank([][]float64{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}), eps)
	assert.InDelta(t, 0.5, ranking.MeanReciprocalRank([][]float64{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}), eps)
	assert.InDelta(t, 2.0/3, ranking.MeanReciprocalRank([][]float64{{0, 0, 0}, {1, 0, 0}, {1, 0, 0}}), eps)
	assert.Zero(t, ranking.MeanReciprocalRank(nil))
}

func TestMeanRank(t *testing.T) {
	assert.InDelta(t, 2.0, ranking.MeanRank([][]float64{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}), eps)
	assert.InDelta(t, 1.0, ranking.MeanRank([][]float64{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}), eps)
}

func TestHitRateAtK(t *testing.T) {
	rs := [][]float64{{0, 0, 1}, {0, 1, 0}, {0, 0, 0}}

	got, err := ranking.HitRateAtK(rs, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, eps)

	got, err = ranking.HitRateAtK(rs, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, got, eps)

	got, err = ranking.HitRateAtK(rs, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, got, eps)

	_, err = ranking.HitRateAtK(rs, 4)
	assert.ErrorIs(t, err, ranking.ErrInvalidK)
	_, err = ranking.HitRateAtK(rs, 0)
	assert.ErrorIs(t, err, ranking.ErrInvalidK)
	_, err = ranking.HitRateAtK(nil, 1)
	assert.True(t, errors.IsValidationError(err))
}

func TestRPrecision(t *testing.T) {
	assert.InDelta(t, 1.0/3, ranking.RPrecision([]float64{0, 0, 1}), eps)
	assert.InDelta(t, 0.5, ranking.RPrecision([]float64{0, 1, 0}), eps)
	assert.InDelta(t, 1.0, ranking.RPrecision([]float64{1, 0, 0}), eps)
	assert.Zero(t, ranking.RPrecision([]float64{0, 0}))
}

func TestPrecisionAtK(t *testing.T) {
	r := []float64{0, 0, 1}
	for k, want := range map[int]float64{1: 0, 2: 0, 3: 1.0 / 3, 0: 1.0 / 3} {
		got, err := ranking.PrecisionAtK(r, k)
		require.NoError(t, err, "k=%d", k)
		assert.InDelta(t, want, got, eps, "k=%d", k)
	}

	_, err := ranking.PrecisionAtK(r, 4)
	assert.ErrorIs(t, err, ranking.ErrShortRelevance)
	_, err = ranking.PrecisionAtK(r, -1)
	assert.ErrorIs(t, err, ranking.ErrInvalidK)
}

func TestRecallAndF1AtK(t *testing.T) {
	r := []float64{1, 0, 1, 0, 0}

	rec, err := ranking.RecallAtK(r, 4, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rec, eps)

	f1, err := ranking.F1AtK(r, 4, 3)
	require.NoError(t, err)
	// precision 2/3, recall 1/2
	assert.InDelta(t, 4.0/7, f1, eps)

	f1, err = ranking.F1AtK([]float64{0, 0, 1}, 1, 2)
	require.NoError(t, err)
	assert.Zero(t, f1)

	_, err = ranking.RecallAtK(r, 1, 0)
	assert.ErrorIs(t, err, ranking.ErrTooManyRelevant)
	_, err = ranking.RecallAtK(r, 0, 2)
	assert.ErrorIs(t, err, ranking.ErrInvalidMaxRel)
}

func TestAveragePrecision(t *testing.T) {
	r := []float64{1, 1, 0, 1, 0, 1, 0, 0, 0, 1}
	assert.InDelta(t, 0.78333333333333333, ranking.AveragePrecision(r), eps)
	assert.InDelta(t, 0.78333333333333333, ranking.MeanAveragePrecision([][]float64{r}), eps)
	assert.InDelta(t, 0.39166666666666666, ranking.MeanAveragePrecision([][]float64{r, {0}}), eps)
	assert.Zero(t, ranking.AveragePrecision([]float64{0, 0}))
}

func TestDCGAtK(t *testing.T) {
	r := []float64{3, 2, 3, 0, 0, 1, 2, 2, 3, 0}
	tests := []struct {
		k, method int
		want      float64
	}{
		{1, ranking.DCGStandard, 3.0},
		{1, ranking.DCGShifted, 3.0},
		{2, ranking.DCGStandard, 5.0},
		{2, ranking.DCGShifted, 4.2618595071429155},
		{10, ranking.DCGStandard, 9.6051177391888114},
		{11, ranking.DCGStandard, 9.6051177391888114},
	}
	for _, tt := range tests {
		got, err := ranking.DCGAtK(r, tt.k, tt.method)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, eps, "k=%d method=%d", tt.k, tt.method)
	}

	_, err := ranking.DCGAtK(r, 2, 2)
	assert.ErrorIs(t, err, ranking.ErrInvalidMethod)
	_, err = ranking.DCGAtK(r, 0, ranking.DCGStandard)
	assert.ErrorIs(t, err, ranking.ErrInvalidK)
}

func TestNDCGAtK(t *testing.T) {
	tests := []struct {
		name      string
		r         []float64
		k, method int
		want      float64
	}{
		{"first only", []float64{3, 2, 3, 0, 0, 1, 2, 2, 3, 0}, 1, ranking.DCGStandard, 1.0},
		{"standard", []float64{2, 1, 2, 0}, 4, ranking.DCGStandard, 0.9203032077642922},
		{"shifted", []float64{2, 1, 2, 0}, 4, ranking.DCGShifted, 0.96519546960144276},
		{"nothing relevant", []float64{0}, 1, ranking.DCGStandard, 0.0},
		{"k past end", []float64{1}, 2, ranking.DCGStandard, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ranking.NDCGAtK(tt.r, tt.k, tt.method)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, eps)
		})
	}
}

func TestNDCGDoesNotReorderInput(t *testing.T) {
	r := []float64{0, 1, 2}
	_, err := ranking.NDCGAtK(r, 3, ranking.DCGStandard)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, r)
}
