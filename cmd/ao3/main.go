package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ao3/archive"
	"ao3/common"
	"ao3/config"
	"ao3/convert"
	"ao3/misc"
	"ao3/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			// we do not want any of your secrets!
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}

	if err := prepareClient(ctx, env); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// prepareClient creates the shared archive client, opening the page cache and
// authenticating when the configuration asks for it.
func prepareClient(ctx context.Context, env *state.LocalEnv) error {
	var err error

	cc := env.Cfg.Client
	if cc.Cache.Enable {
		if env.Cache, err = archive.OpenCache(cc.Cache.Path, cc.Cache.TTL.Std(), env.Log); err != nil {
			return fmt.Errorf("unable to open page cache: %w", err)
		}
	}

	env.Client, err = archive.NewClient(archive.Options{
		BaseURL:     cc.BaseURL,
		UserAgent:   cc.UserAgent,
		Retries:     cc.Retries,
		MinInterval: cc.MinInterval.Std(),
		Cache:       env.Cache,
	}, env.Log)
	if err != nil {
		return fmt.Errorf("unable to create archive client: %w", err)
	}

	if cc.Credentials.User != "" {
		if err := env.Client.Authenticate(ctx, cc.Credentials.User, string(cc.Credentials.Password)); err != nil {
			return fmt.Errorf("unable to log into the archive: %w", err)
		}
	}
	return nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Cache != nil {
		if er := env.Cache.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close page cache: %w", er))
		}
	}

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt.
	// NOTE: fetching large works may take a while, so being able to stop
	// cleanly matters here
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "fetches and renders works from the Archive of Our Own",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "fetch",
				Usage:        "Fetches work(s) and renders chapters to local files",
				OnUsageError: usageErrorHandler,
				Action:       convert.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Value: common.OutputFmtXhtml.String(),
						Usage: "output `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write rendered chapters under `DIR` (default: current directory)"},
					&cli.StringFlag{Name: "chapters", Usage: "only render chapters in `RANGE`, for example \"3\" or \"2-5\" or \"4-\""},
					&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "do not create per-work subdirectories for multichapter works"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "WORK...",
				CustomHelpTemplate: fmt.Sprintf(`%s
WORK:
    work to fetch, either a numeric work id ("12345") or a work URL
    ("https://archiveofourown.org/works/12345"); multiple works are
    processed in order and one failing work does not stop the rest
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "search",
				Usage:        "Searches works and prints matching blurbs",
				OnUsageError: usageErrorHandler,
				Action:       searchWorks,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fandom", Usage: "restrict search to `FANDOM` (may be comma-separated)"},
					&cli.StringFlag{Name: "rating", Usage: "restrict search to `RATING` (" + strings.Join(common.RatingNames(), ", ") + ")"},
					&cli.StringFlag{Name: "sort", Value: common.SortByBestMatch.String(),
						Usage: "sort `COLUMN` (" + strings.Join(common.SortByNames(), ", ") + ")"},
					&cli.BoolFlag{Name: "desc", Usage: "sort in descending order"},
					&cli.BoolFlag{Name: "complete", Usage: "only complete works"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "result `PAGE` to show"},
				},
				ArgsUsage: "QUERY",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func searchWorks(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	filter := archive.Filter{
		Query:          strings.Join(cmd.Args().Slice(), " "),
		SortDescending: cmd.Bool("desc"),
		Page:           cmd.Int("page"),
	}
	if fandoms := cmd.String("fandom"); fandoms != "" {
		filter.Fandoms = strings.Split(fandoms, ",")
	}
	if rating := cmd.String("rating"); rating != "" {
		r, err := common.ParseRating(rating)
		if err != nil {
			return fmt.Errorf("unknown rating %q: %w", rating, err)
		}
		filter.Rating = &r
	}
	if sortBy, err := common.ParseSortBy(cmd.String("sort")); err == nil {
		filter.SortBy = sortBy
	} else {
		env.Log.Warn("Unknown sort column, using best match", zap.String("sort", cmd.String("sort")))
	}
	if cmd.Bool("complete") {
		filter.Completion = common.CompletionComplete
	}

	res, err := env.Client.SearchWorks(ctx, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("%d work(s) found, page %d\n\n", res.Total, res.Page)
	for _, r := range res.Results {
		authors := make([]string, 0, len(r.Authors))
		for _, a := range r.Authors {
			authors = append(authors, a.String())
		}
		fmt.Printf("%d\t%s by %s\n", r.ID, r.Title, strings.Join(authors, ", "))
		if len(r.Fandoms) > 0 {
			fmt.Printf("\tFandoms: %s\n", strings.Join(r.Fandoms, ", "))
		}
		fmt.Printf("\t%s, %d words, %d kudos, %d hits\n", r.Language, r.Words, r.Kudos, r.Hits)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
