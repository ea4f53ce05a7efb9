package dataset

import (
	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Association is one labeled drug-disease pair.
type Association struct {
	Drug    string `json:"drug" yaml:"drug"`
	Disease string `json:"disease" yaml:"disease"`
	Value   int8   `json:"value" yaml:"value"`
}

// Entity summarizes the known associations of one drug or disease.
type Entity struct {
	ID        string `json:"id" yaml:"id"`
	Positives int    `json:"positives" yaml:"positives"`
	Negatives int    `json:"negatives" yaml:"negatives"`
	Unknowns  int    `json:"unknowns" yaml:"unknowns"`
	// HasFeatures reports whether the entity has a feature column.
	HasFeatures bool `json:"has_features" yaml:"has_features"`
}

// DrugEntities summarizes every drug row.
func (d *Dataset) DrugEntities() []Entity {
	a := d.Associations
	out := make([]Entity, a.Rows())
	for r, id := range a.RowIDs {
		e := Entity{ID: id}
		tally(&e, a.Row(r))
		_, e.HasFeatures = d.DrugFeatures.ColIndex(id)
		out[r] = e
	}
	return out
}

// DiseaseEntities summarizes every disease column.
func (d *Dataset) DiseaseEntities() []Entity {
	a := d.Associations
	out := make([]Entity, a.Cols())
	for c, id := range a.ColIDs {
		e := Entity{ID: id}
		tally(&e, a.Col(c))
		_, e.HasFeatures = d.DiseaseFeatures.ColIndex(id)
		out[c] = e
	}
	return out
}

func tally(e *Entity, values []int8) {
	for _, v := range values {
		switch v {
		case constants.Positive:
			e.Positives++
		case constants.Negative:
			e.Negatives++
		case constants.Unknown:
			e.Unknowns++
		}
	}
}

// DrugAssociations returns the known (non-zero) associations of a drug.
func (d *Dataset) DrugAssociations(id string) ([]Association, error) {
	r, ok := d.Associations.RowIndex(id)
	if !ok {
		return nil, errors.NewNotFoundError("drug", id)
	}
	var out []Association
	for c, v := range d.Associations.Row(r) {
		if v != constants.Unknown {
			out = append(out, Association{Drug: id, Disease: d.Associations.ColIDs[c], Value: v})
		}
	}
	return out, nil
}

// DiseaseAssociations returns the known (non-zero) associations of a disease.
func (d *Dataset) DiseaseAssociations(id string) ([]Association, error) {
	c, ok := d.Associations.ColIndex(id)
	if !ok {
		return nil, errors.NewNotFoundError("disease", id)
	}
	var out []Association
	for r, drug := range d.Associations.RowIDs {
		if v := d.Associations.At(r, c); v != constants.Unknown {
			out = append(out, Association{Drug: drug, Disease: id, Value: v})
		}
	}
	return out, nil
}

// Triplets returns every association as (drug, disease, value). When
// knownOnly is set, unknown (zero) pairs are skipped.
func (d *Dataset) Triplets(knownOnly bool) []Association {
	a := d.Associations
	out := make([]Association, 0, len(a.Data))
	for r, drug := range a.RowIDs {
		for c, v := range a.Row(r) {
			if knownOnly && v == constants.Unknown {
				continue
			}
			out = append(out, Association{Drug: drug, Disease: a.ColIDs[c], Value: v})
		}
	}
	return out
}
