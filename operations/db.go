package operations

import (
	"context"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"github.com/evergreen-ci/restapp"
	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/model/user"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func DB() cli.Command {
	return cli.Command{
		Name:  "db",
		Usage: "inspect the backing database",
		Subcommands: []cli.Command{
			dbStatus(),
		},
	}
}

func dbStatus() cli.Command {
	return cli.Command{
		Name:   "status",
		Usage:  "print the connection and document counts for every collection",
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

			ctx, cancel := context.WithTimeout(context.Background(), settings.Database.ConnectTimeout()+5*time.Second)
			defer cancel()

			env, err := restapp.NewEnvironment(ctx, settings)
			if err != nil {
				return errors.Wrap(err, "configuring application environment")
			}
			defer func() {
				grip.Warning(errors.Wrap(env.Close(ctx), "closing environment"))
			}()

			return errors.WithStack(printDBStatus(ctx, c.App.Writer, env))
		},
	}
}

type collectionCounter struct {
	name  string
	count func(context.Context, restapp.Environment) (int, error)
}

var statusCollections = []collectionCounter{
	{
		name: blog.Collection,
		count: func(ctx context.Context, env restapp.Environment) (int, error) {
			return blog.Count(ctx, env.DB())
		},
	},
	{
		name: user.Collection,
		count: func(ctx context.Context, env restapp.Environment) (int, error) {
			return user.Count(ctx, env.DB())
		},
	},
}

// printDBStatus writes the connection summary and the per collection
// document counts. Counts are skipped when the database is unreachable.
func printDBStatus(ctx context.Context, w io.Writer, env restapp.Environment) error {
	t := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	t.AddHeader("Setting", "Value")
	t.AddLine("url", env.Settings().Database.RedactedURL())
	t.AddLine("connected", env.Connected())
	if !env.Connected() || env.DB() == nil {
		t.Print()
		return nil
	}

	catcher := grip.NewBasicCatcher()
	for _, coll := range statusCollections {
		n, err := coll.count(ctx, env)
		if err != nil {
			catcher.Wrapf(err, "counting documents in '%s'", coll.name)
			t.AddLine(coll.name, "unknown")
			continue
		}
		t.AddLine(coll.name, humanize.Comma(int64(n)))
	}
	t.Print()

	return catcher.Resolve()
}
