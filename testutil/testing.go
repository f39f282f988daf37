package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// SkipDBEnvVar disables every test that needs a running MongoDB.
const SkipDBEnvVar = "SKIP_DB_TESTS"

// GetDirectoryOfFile returns the path to of the file that calling
// this function. Use this to ensure that references to testdata and
// other file system locations in tests are not dependent on the working
// directory of the "go test" invocation.
func GetDirectoryOfFile() string {
	_, file, _, _ := runtime.Caller(1)

	return filepath.Dir(file)
}

// RepositoryRoot returns the directory holding the module, which is where
// the templates and the public assets live.
func RepositoryRoot() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Dir(filepath.Dir(file))
}

func skipDBTests(t *testing.T) {
	if skip, _ := strconv.ParseBool(os.Getenv(SkipDBEnvVar)); skip {
		t.Skipf("%s is set, skipping test that requires a database", SkipDBEnvVar)
	}
}
