package dataset

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Manifest describes a dataset release: its version, the files that make
// it up, and the counts the release declares.
type Manifest struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version" json:"version"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Sources     []string `yaml:"sources,omitempty" json:"sources,omitempty"`
	Files       Files    `yaml:"files" json:"files"`
	Counts      Counts   `yaml:"counts" json:"counts"`
}

// Files names the three matrices of a release, relative to its root.
type Files struct {
	Ratings string `yaml:"ratings" json:"ratings"`
	Items   string `yaml:"items" json:"items"`
	Users   string `yaml:"users" json:"users"`
}

// Counts are the sizes a release declares for itself.
type Counts struct {
	Drugs     int `yaml:"drugs" json:"drugs"`
	Diseases  int `yaml:"diseases" json:"diseases"`
	Genes     int `yaml:"genes" json:"genes"`
	Positives int `yaml:"positives" json:"positives"`
	Negatives int `yaml:"negatives" json:"negatives"`
}

// DefaultFiles returns the standard file names of a release.
func DefaultFiles() Files {
	return Files{
		Ratings: constants.RatingsFile,
		Items:   constants.ItemsFile,
		Users:   constants.UsersFile,
	}
}

// DefaultManifest returns the manifest of the current published release.
func DefaultManifest() *Manifest {
	return &Manifest{
		Name:        constants.DatasetName,
		Version:     constants.ReleaseVersion,
		Description: "Drug-disease associations with LINCS L1000 drug signatures and CREEDS disease signatures",
		Sources:     []string{"CREEDS", "LINCS L1000"},
		Files:       DefaultFiles(),
		Counts: Counts{
			Drugs:     constants.ReleaseDrugs,
			Diseases:  constants.ReleaseDiseases,
			Genes:     constants.ReleaseGenes,
			Positives: constants.ReleasePositives,
			Negatives: constants.ReleaseNegatives,
		},
	}
}

// ParseManifest decodes a YAML manifest. Missing file names fall back to
// the standard names.
func ParseManifest(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}

	defaults := DefaultFiles()
	if m.Files.Ratings == "" {
		m.Files.Ratings = defaults.Ratings
	}
	if m.Files.Items == "" {
		m.Files.Items = defaults.Items
	}
	if m.Files.Users == "" {
		m.Files.Users = defaults.Users
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest is usable. A manifest must declare
// its counts, since the declared-counts check compares against them.
func (m *Manifest) Validate() error {
	if m.Version == "" {
		return errors.NewValidationError("version", m.Version, "manifest must declare a version")
	}
	for field, n := range map[string]int{
		"counts.drugs":     m.Counts.Drugs,
		"counts.diseases":  m.Counts.Diseases,
		"counts.genes":     m.Counts.Genes,
		"counts.positives": m.Counts.Positives,
		"counts.negatives": m.Counts.Negatives,
	} {
		if n < 0 {
			return errors.NewValidationError(field, n, fmt.Sprintf("must not be negative, got %d", n))
		}
	}
	if m.Counts == (Counts{}) {
		return errors.NewValidationError("counts", m.Counts, "manifest must declare the release counts")
	}
	return nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.MarshalWithOptions(m, yaml.Indent(2), yaml.IndentSequence(false))
}
