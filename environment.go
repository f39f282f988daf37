package restapp

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Environment provides application-level services (the settings and the
// database connection). One Environment is created per process at
// startup and passed explicitly to everything that needs the store.
type Environment interface {
	// Returns the settings object. The settings object is not
	// necessarily safe for concurrent modification.
	Settings() *Settings

	Client() *mongo.Client
	DB() *mongo.Database

	// Connected reports whether the most recent signal from the
	// database deployment said it was reachable. Requests that arrive
	// while this is false fail without touching the store.
	Connected() bool

	// RegisterCloser adds a function object to an internal
	// tracker to be called by the Close method before process
	// termination. The ID is used in reporting, but must be
	// unique or a new closer could overwrite an existing closer.
	RegisterCloser(string, func(context.Context) error)
	// Close calls all registered closers in the environment.
	Close(context.Context) error
}

// NewEnvironment validates the settings and constructs an Environment
// with a client for the configured database.
//
// The database does not need to be reachable for NewEnvironment to
// succeed: the initial ping failure is logged, Connected reports false,
// and the driver's server monitor flips the state once the deployment
// answers. Only configuration errors are returned.
func NewEnvironment(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("settings must not be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	e := &envState{
		settings: settings,
		closers:  map[string]func(context.Context) error{},
	}

	if err := e.initDB(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring db")
	}

	return e, nil
}

type envState struct {
	settings  *Settings
	client    *mongo.Client
	connected atomic.Bool
	mu        sync.RWMutex
	closers   map[string]func(context.Context) error
}

func (e *envState) initDB(ctx context.Context) error {
	settings := e.settings.Database

	opts := options.Client().
		ApplyURI(settings.URL()).
		SetAppName(AppName).
		SetConnectTimeout(settings.ConnectTimeout()).
		SetServerSelectionTimeout(settings.ConnectTimeout()).
		SetServerMonitor(e.serverMonitor()).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "constructing database client")
	}

	e.mu.Lock()
	e.client = client
	e.mu.Unlock()

	e.RegisterCloser("database", func(ctx context.Context) error {
		e.connected.Store(false)
		return errors.Wrap(client.Disconnect(ctx), "disconnecting from the database")
	})

	pingCtx, cancel := context.WithTimeout(ctx, settings.ConnectTimeout())
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		grip.Error(message.WrapError(err, message.Fields{
			"message": "database connection error",
			"url":     settings.RedactedURL(),
		}))
		return nil
	}
	e.setConnected(true, nil)

	return nil
}

// serverMonitor translates the driver's heartbeat events into the
// environment's connection state.
func (e *envState) serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(*event.ServerHeartbeatSucceededEvent) {
			e.setConnected(true, nil)
		},
		ServerHeartbeatFailed: func(evt *event.ServerHeartbeatFailedEvent) {
			e.setConnected(false, evt.Failure)
		},
	}
}

// setConnected records the connection state, logging only transitions.
func (e *envState) setConnected(state bool, cause error) {
	if prev := e.connected.Swap(state); prev == state {
		return
	}

	if state {
		grip.Notice(message.Fields{
			"message": "MongoDB connection opened",
			"url":     e.settings.Database.RedactedURL(),
		})
		return
	}

	grip.Error(message.WrapError(cause, message.Fields{
		"message": "database connection error",
		"url":     e.settings.Database.RedactedURL(),
	}))
}

func (e *envState) Settings() *Settings { return e.settings }

func (e *envState) Connected() bool { return e.connected.Load() }

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.client == nil {
		return nil
	}
	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) RegisterCloser(name string, closer func(context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, exists := e.closers[name]
	grip.WarningWhen(exists, message.Fields{
		"message": "replacing registered closer",
		"closer":  name,
		"cause":   "programmer error",
	})

	e.closers[name] = closer
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	catcher := grip.NewBasicCatcher()
	for name, closer := range e.closers {
		if closer == nil {
			continue
		}

		grip.Info(message.Fields{
			"message": "calling closer",
			"closer":  name,
		})
		catcher.Wrapf(closer(ctx), "running closer '%s'", name)
	}
	e.closers = map[string]func(context.Context) error{}

	return catcher.Resolve()
}
