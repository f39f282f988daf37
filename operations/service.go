package operations

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evergreen-ci/restapp"
	"github.com/evergreen-ci/restapp/service"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run restapp services",
		Subcommands: []cli.Command{
			startWebService(),
		},
	}
}

func startWebService() cli.Command {
	return cli.Command{
		Name:   "web",
		Usage:  "start the blog and user REST service",
		Flags:  serviceConfigFlags(),
		Before: mergeBeforeFuncs(requireFileExists(confFlagName)),
		Action: func(c *cli.Context) error {
			settings, err := settingsFromFlags(c)
			if err != nil {
				return errors.WithStack(err)
			}
			if err = applyLogLevel(settings); err != nil {
				return errors.WithStack(err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go listenForShutdownSignal(cancel)

			env, err := restapp.NewEnvironment(ctx, settings)
			if err != nil {
				return errors.Wrap(err, "configuring application environment")
			}
			defer recovery.LogStackTraceAndContinue("restapp web service")

			handler, err := service.GetRouter(env)
			if err != nil {
				return errors.Wrap(err, "building web service router")
			}

			srv := service.GetServer(fmt.Sprintf(":%d", settings.Port), handler)

			grip.Notice(message.Fields{
				"message":  "starting web service",
				"port":     settings.Port,
				"env":      settings.Environment,
				"database": settings.Database.RedactedURL(),
			})

			return errors.WithStack(runServer(ctx, env, srv))
		},
	}
}

// runServer serves until the context is canceled, then stops accepting
// connections, waits for in-flight requests and closes the environment.
func runServer(ctx context.Context, env restapp.Environment, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "running web service")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		grip.Info("shutting down web service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		catcher := grip.NewBasicCatcher()
		catcher.Wrap(srv.Shutdown(shutdownCtx), "shutting down web service")
		catcher.Wrap(env.Close(shutdownCtx), "closing environment")
		return catcher.Resolve()
	})

	return g.Wait()
}

func listenForShutdownSignal(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, os.Interrupt)
	sig := <-sigChan
	grip.Infof("received %s, terminating web service", sig)
	cancel()
}
