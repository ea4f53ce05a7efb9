package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Evaluation averages per-disease ranking metrics. Each disease with at
// least one positive association ranks every drug by predicted score.
type Evaluation struct {
	K int `json:"k" yaml:"k"`
	// Diseases is the number of diseases that were scored.
	Diseases int `json:"diseases" yaml:"diseases"`
	// Skipped counts diseases without a positive association.
	Skipped    int     `json:"skipped" yaml:"skipped"`
	HitRate    float64 `json:"hit_rate" yaml:"hit_rate"`
	MRR        float64 `json:"mrr" yaml:"mrr"`
	MeanRank   float64 `json:"mean_rank" yaml:"mean_rank"`
	MAP        float64 `json:"map" yaml:"map"`
	NDCG       float64 `json:"ndcg" yaml:"ndcg"`
	Precision  float64 `json:"precision" yaml:"precision"`
	Recall     float64 `json:"recall" yaml:"recall"`
	F1         float64 `json:"f1" yaml:"f1"`
	RPrecision float64 `json:"r_precision" yaml:"r_precision"`
}

// Evaluate scores a drug x disease prediction matrix against the known
// positive associations. The score matrix must carry the same drug rows
// and disease columns as the association matrix, in any order. Ties rank
// drugs in association-matrix order and NaN scores rank last.
func Evaluate(assoc *dataset.AssociationMatrix, scores *dataset.FeatureMatrix, k int) (*Evaluation, error) {
	if err := sameLabels(assoc, scores); err != nil {
		return nil, err
	}
	if k < 1 || k > assoc.Rows() {
		return nil, fmt.Errorf("%w: k=%d with %d drugs", ErrInvalidK, k, assoc.Rows())
	}

	// Map association rows onto score rows.
	rowPos := make([]int, assoc.Rows())
	for r, id := range assoc.RowIDs {
		rowPos[r], _ = scores.RowIndex(id)
	}

	ev := &Evaluation{K: k}
	var lists [][]float64
	var precision, recall, f1, ndcg, rprec float64

	for c, disease := range assoc.ColIDs {
		sc, _ := scores.ColIndex(disease)
		column := make([]float64, assoc.Rows())
		for r := range column {
			column[r] = scores.At(rowPos[r], sc)
		}

		relevance := make([]float64, assoc.Rows())
		positives := 0
		for i, r := range Rank(column) {
			if assoc.At(r, c) == constants.Positive {
				relevance[i] = 1
				positives++
			}
		}
		if positives == 0 {
			ev.Skipped++
			continue
		}
		lists = append(lists, relevance)

		p, err := PrecisionAtK(relevance, k)
		if err != nil {
			return nil, err
		}
		rec, err := RecallAtK(relevance, positives, k)
		if err != nil {
			return nil, err
		}
		f, err := F1AtK(relevance, positives, k)
		if err != nil {
			return nil, err
		}
		n, err := NDCGAtK(relevance, k, DCGStandard)
		if err != nil {
			return nil, err
		}
		precision += p
		recall += rec
		f1 += f
		ndcg += n
		rprec += RPrecision(relevance)
	}

	ev.Diseases = len(lists)
	if ev.Diseases == 0 {
		return nil, errors.NewValidationError("associations", 0, "no disease has a positive association")
	}

	hit, err := HitRateAtK(lists, k)
	if err != nil {
		return nil, err
	}
	d := float64(ev.Diseases)
	ev.HitRate = hit
	ev.MRR = MeanReciprocalRank(lists)
	ev.MeanRank = MeanRank(lists)
	ev.MAP = MeanAveragePrecision(lists)
	ev.Precision = precision / d
	ev.Recall = recall / d
	ev.F1 = f1 / d
	ev.NDCG = ndcg / d
	ev.RPrecision = rprec / d
	return ev, nil
}

// Rank returns item positions ordered by descending score. Ties keep
// input order and NaN scores sort last.
func Rank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := scores[order[a]], scores[order[b]]
		if math.IsNaN(y) {
			return !math.IsNaN(x)
		}
		return x > y
	})
	return order
}

func sameLabels(assoc *dataset.AssociationMatrix, scores *dataset.FeatureMatrix) error {
	if l, r := dataset.DiffIDs(assoc.RowIDs, scores.RowIDs); len(l)+len(r) > 0 {
		return &errors.MismatchError{Left: assoc.Name + " rows", Right: scores.Name + " rows", OnlyLeft: l, OnlyRight: r}
	}
	if l, r := dataset.DiffIDs(assoc.ColIDs, scores.ColIDs); len(l)+len(r) > 0 {
		return &errors.MismatchError{Left: assoc.Name + " columns", Right: scores.Name + " columns", OnlyLeft: l, OnlyRight: r}
	}
	return nil
}
