// Package embedded bundles a miniature dataset release into the binary so
// that every command can run without a download.
package embedded

import (
	"embed"
	"io/fs"
)

// FS embeds the sample release files at build time.
//
//go:embed sample/*
var FS embed.FS

// SampleSource is the Dataset.Source recorded for the sample release.
const SampleSource = "embedded:sample"

// Sample returns the sample release rooted at its directory.
func Sample() fs.FS {
	sub, err := fs.Sub(FS, "sample")
	if err != nil {
		// fs.Sub only fails on invalid paths.
		panic(err)
	}
	return sub
}
