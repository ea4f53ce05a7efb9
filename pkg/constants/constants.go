// Package constants provides shared constants used throughout the repurpose codebase.
// This includes release metadata, file names, limits, timeouts and file
// permissions that should be consistent across the application.
package constants

import "time"

// Release constants describe the dataset release this toolkit ships defaults for.
const (
	// DatasetName is the human-readable name of the dataset.
	DatasetName = "TRANSCRIPT"

	// ReleaseVersion is the current immutable dataset release.
	ReleaseVersion = "2.0.0"

	// ReleaseDrugs is the declared number of drug rows in ratings_mat.csv.
	ReleaseDrugs = 204

	// ReleaseDiseases is the declared number of disease columns in ratings_mat.csv.
	ReleaseDiseases = 116

	// ReleaseGenes is the declared number of gene rows in items.csv and users.csv.
	ReleaseGenes = 12096

	// ReleasePositives is the declared number of cells equal to 1.
	ReleasePositives = 401

	// ReleaseNegatives is the declared number of cells equal to -1.
	ReleaseNegatives = 11
)

// File name constants for the files of a release directory.
const (
	// RatingsFile holds the drug x disease association matrix.
	RatingsFile = "ratings_mat.csv"

	// ItemsFile holds the gene x drug feature matrix.
	ItemsFile = "items.csv"

	// UsersFile holds the gene x disease feature matrix.
	UsersFile = "users.csv"

	// ManifestFile optionally describes the release and its declared counts.
	ManifestFile = "manifest.yaml"
)

// Association value constants.
const (
	// Negative marks a known negative drug-disease association.
	Negative int8 = -1

	// Unknown marks an unlabeled drug-disease pair.
	Unknown int8 = 0

	// Positive marks a known positive drug-disease association.
	Positive int8 = 1
)

// Limit constants define various limits and capacities
const (
	// MaxIssuesPerCheck caps the example identifiers reported by one validation check.
	MaxIssuesPerCheck = 20

	// CancelCheckRows is how many CSV rows a parser reads between context checks.
	CancelCheckRows = 256

	// DefaultRankCutoff is the default k for ranking metrics.
	DefaultRankCutoff = 10

	// MaxDetailsWidth truncates long details columns in table output.
	MaxDetailsWidth = 80
)

// Timeout constants define various timeout durations used in the application
const (
	// ShutdownTimeout bounds graceful shutdown after a command fails.
	ShutdownTimeout = 5 * time.Second

	// WatchDebounce coalesces bursts of file events before re-validating.
	WatchDebounce = 500 * time.Millisecond

	// SQLiteBusyTimeout is the busy_timeout pragma used for exports.
	SQLiteBusyTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
