package mock

import (
	"context"
	"sync"

	"github.com/evergreen-ci/restapp"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// this is just a hack to ensure that compile breaks clearly if the
// mock implementation diverges from the interface
var _ restapp.Environment = &Environment{}

// Environment is an environment without a database client. It reports
// whatever connection state IsConnected holds, so callers see a store
// that is unreachable unless a test says otherwise.
type Environment struct {
	RestappSettings *restapp.Settings
	IsConnected     bool
	MongoClient     *mongo.Client

	mu      sync.Mutex
	closers map[string]func(context.Context) error
	Closed  []string
}

// Configure validates the given settings, or the defaults when none are
// given, and stores them on the environment.
func (e *Environment) Configure(settings *restapp.Settings) error {
	if settings == nil {
		settings = restapp.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return errors.Wrap(err, "validating settings")
	}

	e.RestappSettings = settings
	return nil
}

func (e *Environment) Settings() *restapp.Settings { return e.RestappSettings }
func (e *Environment) Client() *mongo.Client       { return e.MongoClient }
func (e *Environment) Connected() bool             { return e.IsConnected }

func (e *Environment) DB() *mongo.Database {
	if e.MongoClient == nil || e.RestappSettings == nil {
		return nil
	}
	return e.MongoClient.Database(e.RestappSettings.Database.DB)
}

func (e *Environment) RegisterCloser(name string, closer func(context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closers == nil {
		e.closers = map[string]func(context.Context) error{}
	}
	e.closers[name] = closer
}

func (e *Environment) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	catcher := grip.NewBasicCatcher()
	for name, closer := range e.closers {
		e.Closed = append(e.Closed, name)
		if closer != nil {
			catcher.Wrapf(closer(ctx), "running closer '%s'", name)
		}
	}
	e.closers = nil
	e.IsConnected = false

	return catcher.Resolve()
}
