package probe

import (
	"context"
	"io"
	"log/slog"

	"github.com/bornholm/cseprobe/internal/config"
	"github.com/bornholm/cseprobe/internal/logx"
	"github.com/bornholm/cseprobe/pkg/display"
	"github.com/bornholm/cseprobe/pkg/search"
	"github.com/bornholm/cseprobe/pkg/search/google"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// The probe always issues the same query.
const (
	QueryText        = `filetype:sql "MySQL dump" (pass|password|passwd|pwd)`
	StartIndex       = search.DefaultStart
	LanguageRestrict = search.DefaultLanguage
)

func Action(funcs ...config.OptionFunc) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		conf, err := config.Load(funcs...)
		if err != nil {
			return errors.WithStack(err)
		}

		client := search.FailOpen(google.NewClient(
			conf.APIKey, conf.SearchEngineID,
			google.WithEndpoint(conf.Endpoint),
		))

		if err := Run(cliCtx.Context, cliCtx.App.Writer, client); err != nil {
			return errors.WithStack(err)
		}

		return nil
	}
}

// Run executes the fixed query with client and writes the results to w.
func Run(ctx context.Context, w io.Writer, client search.Client) error {
	query := search.Query{
		Text:     QueryText,
		Start:    StartIndex,
		Language: LanguageRestrict,
	}

	ctx = logx.WithAttrs(ctx, slog.String("query", query.Text))

	slog.InfoContext(ctx, "searching")

	results, err := client.Search(ctx, query)
	if err != nil {
		return errors.Wrap(err, "could not execute search")
	}

	slog.InfoContext(ctx, "search done", slog.Int("results", len(results)))

	if err := display.Display(w, results); err != nil {
		return errors.Wrap(err, "could not display results")
	}

	return nil
}
