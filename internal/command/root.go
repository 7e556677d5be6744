package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/cseprobe/internal/config"
	"github.com/bornholm/cseprobe/internal/logx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// Main runs the application. Failures are reported as text and the
// process always exits with status 0.
func Main(name string, version string, usage string, action cli.ActionFunc) {
	app := NewApp(name, version, usage, action)

	// Errors are already reported by the app ExitErrHandler
	_ = app.Run(os.Args)
}

func NewApp(name string, version string, usage string, action cli.ActionFunc) *cli.App {
	app := &cli.App{
		Name:    name,
		Usage:   usage,
		Version: version,
		Action:  recoverAction(action),
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String("workdir")
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			logger := slog.New(logx.ContextHandler{
				Handler: slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{
					Level: logx.ParseLevel(ctx.String("log-level")),
				}),
			})
			slog.SetDefault(logger)

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workdir",
				Value:   "",
				EnvVars: []string{"CSEPROBE_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"CSEPROBE_DEBUG"},
				Usage:   "Enable debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"CSEPROBE_LOG_LEVEL"},
				Usage:   "Set logging level",
				Value:   "info",
			},
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		Report(ctx.App.Writer, err, ctx.Bool("debug"))
	}

	sort.Sort(cli.FlagsByName(app.Flags))

	return app
}

// Report prints a diagnostic line for err, distinguishing configuration
// errors from every other failure.
func Report(w io.Writer, err error, debug bool) {
	format := "%s: %v\n"
	if debug {
		format = "%s: %+v\n"
	}

	category := "Unexpected error"
	if errors.Is(err, config.ErrConfiguration) {
		category = "Configuration error"
	}

	fmt.Fprintf(w, format, category, err)
}

func recoverAction(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("panic: %v", r)
			}
		}()

		return action(ctx)
	}
}
