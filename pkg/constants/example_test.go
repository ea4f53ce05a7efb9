package constants_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/agentstation/repurpose/pkg/constants"
)

// Example demonstrates locating the files of a release directory.
func Example() {
	dir := filepath.Join("data", "TRANSCRIPT")
	for _, name := range []string{constants.RatingsFile, constants.ItemsFile, constants.UsersFile} {
		fmt.Println(filepath.ToSlash(filepath.Join(dir, name)))
	}

	// Output:
	// data/TRANSCRIPT/ratings_mat.csv
	// data/TRANSCRIPT/items.csv
	// data/TRANSCRIPT/users.csv
}

// Example_release prints the declared shape of the current release.
func Example_release() {
	fmt.Printf("%s %s: %d drugs x %d diseases, %d genes\n",
		constants.DatasetName, constants.ReleaseVersion,
		constants.ReleaseDrugs, constants.ReleaseDiseases, constants.ReleaseGenes)
	fmt.Printf("positives=%d negatives=%d\n", constants.ReleasePositives, constants.ReleaseNegatives)

	// Output:
	// TRANSCRIPT 2.0.0: 204 drugs x 116 diseases, 12096 genes
	// positives=401 negatives=11
}

// Example_shutdown demonstrates bounding shutdown with a timeout.
func Example_shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	_, ok := ctx.Deadline()
	fmt.Println("deadline set:", ok, "timeout:", constants.ShutdownTimeout)

	// Output: deadline set: true timeout: 5s
}

// Example_permissions shows the permissions used for written files.
func Example_permissions() {
	fmt.Printf("dirs %o, files %o\n", constants.DirPermissions, constants.FilePermissions)

	// Output: dirs 755, files 644
}
