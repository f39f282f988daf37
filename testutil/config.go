package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/evergreen-ci/restapp"
	"github.com/stretchr/testify/require"
)

const (
	TestDir = "config_test"
	// TestSettings contains settings suitable for tests that need a
	// database: the test environment pointed at a local MongoDB.
	TestSettings = "restapp_settings.yml"
)

// TestConfig creates test settings from the test config file. The MONGO_*
// environment variables override the database location so that CI can
// point the tests elsewhere.
func TestConfig() *restapp.Settings {
	root := RepositoryRoot()
	settings, err := restapp.NewSettings(filepath.Join(root, TestDir, TestSettings))
	if err != nil {
		panic(err)
	}
	settings.Home = root

	if host := os.Getenv("MONGO_HOSTNAME"); host != "" {
		settings.Database.Hostname = host
	}
	if port, err := strconv.Atoi(os.Getenv("MONGO_PORT")); err == nil {
		settings.Database.Port = port
	}

	if err = settings.Validate(); err != nil {
		panic(err)
	}

	return settings
}

// NewDBEnvironment builds an environment from TestConfig and skips the
// test when the database cannot be reached. The environment is closed
// when the test finishes.
func NewDBEnvironment(ctx context.Context, t *testing.T) restapp.Environment {
	skipDBTests(t)

	env, err := restapp.NewEnvironment(ctx, TestConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = env.Close(closeCtx)
	})

	if !env.Connected() {
		t.Skipf("no database reachable at %s", env.Settings().Database.RedactedURL())
	}

	return env
}
