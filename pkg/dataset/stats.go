package dataset

import (
	"math"

	"github.com/agentstation/repurpose/pkg/constants"
)

// Stats summarizes a release.
type Stats struct {
	Dataset   string `json:"dataset" yaml:"dataset"`
	Version   string `json:"version" yaml:"version"`
	Drugs     int    `json:"drugs" yaml:"drugs"`
	Diseases  int    `json:"diseases" yaml:"diseases"`
	Genes     int    `json:"genes" yaml:"genes"`
	Positives int    `json:"positives" yaml:"positives"`
	Negatives int    `json:"negatives" yaml:"negatives"`
	Unknowns  int    `json:"unknowns" yaml:"unknowns"`
	// Density is the share of drug-disease pairs with a known label.
	Density float64 `json:"density" yaml:"density"`

	PositivesPerDrug    Spread `json:"positives_per_drug" yaml:"positives_per_drug"`
	PositivesPerDisease Spread `json:"positives_per_disease" yaml:"positives_per_disease"`

	DrugFeatures    FeatureStats `json:"drug_features" yaml:"drug_features"`
	DiseaseFeatures FeatureStats `json:"disease_features" yaml:"disease_features"`
}

// Spread is the min, max and mean of a per-entity count.
type Spread struct {
	Min  int     `json:"min" yaml:"min"`
	Max  int     `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// FeatureStats describes the finite values of a feature matrix.
type FeatureStats struct {
	Rows    int     `json:"rows" yaml:"rows"`
	Cols    int     `json:"cols" yaml:"cols"`
	Missing int     `json:"missing" yaml:"missing"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Mean    float64 `json:"mean" yaml:"mean"`
}

// Summarize computes Stats for a release.
func Summarize(ds *Dataset) Stats {
	a := ds.Associations
	s := Stats{
		Dataset:   ds.Manifest.Name,
		Version:   ds.Manifest.Version,
		Drugs:     a.Rows(),
		Diseases:  a.Cols(),
		Genes:     ds.DrugFeatures.Rows(),
		Positives: a.Count(constants.Positive),
		Negatives: a.Count(constants.Negative),
		Unknowns:  a.Count(constants.Unknown),
	}
	if total := len(a.Data); total > 0 {
		s.Density = float64(s.Positives+s.Negatives) / float64(total)
	}

	perDrug := make([]int, 0, a.Rows())
	for _, e := range ds.DrugEntities() {
		perDrug = append(perDrug, e.Positives)
	}
	perDisease := make([]int, 0, a.Cols())
	for _, e := range ds.DiseaseEntities() {
		perDisease = append(perDisease, e.Positives)
	}
	s.PositivesPerDrug = spread(perDrug)
	s.PositivesPerDisease = spread(perDisease)

	s.DrugFeatures = featureStats(ds.DrugFeatures)
	s.DiseaseFeatures = featureStats(ds.DiseaseFeatures)
	return s
}

func spread(counts []int) Spread {
	if len(counts) == 0 {
		return Spread{}
	}
	sp := Spread{Min: counts[0], Max: counts[0]}
	sum := 0
	for _, n := range counts {
		sp.Min = min(sp.Min, n)
		sp.Max = max(sp.Max, n)
		sum += n
	}
	sp.Mean = float64(sum) / float64(len(counts))
	return sp
}

// featureStats ignores NaN and infinite cells; with no finite cells the
// range and mean are zero.
func featureStats(m *FeatureMatrix) FeatureStats {
	fs := FeatureStats{Rows: m.Rows(), Cols: m.Cols()}
	lo, hi, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
	for _, v := range m.Data {
		if math.IsNaN(v) {
			fs.Missing++
			continue
		}
		if math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
		n++
	}
	if n > 0 {
		fs.Min, fs.Max, fs.Mean = lo, hi, sum/float64(n)
	}
	return fs
}
