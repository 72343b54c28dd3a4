package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/defeedco/orbit-producthunt/pkg/config"
	"github.com/defeedco/orbit-producthunt/pkg/lib/log"
	"github.com/defeedco/orbit-producthunt/pkg/sources"
	"github.com/defeedco/orbit-producthunt/pkg/sources/producthunt"
	"github.com/defeedco/orbit-producthunt/pkg/storage/orbit"
	"github.com/defeedco/orbit-producthunt/pkg/syncer"
	"github.com/joho/godotenv"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitRejected = 2
)

const usage = `You may only run any of the following commands:
  orbit-producthunt --products --user=username
  orbit-producthunt --votes --id=projectid --hours=12
  orbit-producthunt --comments --id=projectid --hours=12

If --hours is not provided it will default to 1.
Add --every=30m to --votes or --comments to keep syncing until interrupted.
Add --dry-run to print the activities instead of submitting them.

You must also have ORBIT_WORKSPACE_ID, ORBIT_API_KEY, PRODUCT_HUNT_API_KEY & PRODUCT_HUNT_API_SECRET
environment variables set, or pass them with the matching flags.
`

type Args struct {
	Products bool
	Votes    bool
	Comments bool
	User     string
	ID       string
	Hours    float64
	Every    time.Duration
	DryRun   bool
	EnvFile  string

	Overrides config.Overrides
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	args, err := parseArgs(argv, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
		}
		fmt.Fprint(stderr, usage)
		return exitRejected
	}

	req, err := args.request()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, usage)
		return exitRejected
	}

	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load(args.EnvFile)

	cfg, err := config.Load(args.Overrides)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprint(stderr, usage)
		return exitRejected
	}

	logger, err := log.NewLogger(&cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: create logger: %v\n", err)
		return exitRejected
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	productHunt := producthunt.NewClient(&cfg.ProductHunt, logger)
	activityRepo := orbit.NewActivityRepository(&cfg.Orbit, logger)
	s := syncer.NewSyncer(logger, productHunt, syncer.NewSubmitter(logger, activityRepo))

	if args.Every > 0 {
		err := s.Watch(ctx, req, args.Every, func(result *syncer.Result, err error) {
			if err != nil {
				logger.Error().Err(err).Msg("Sync failed")
				return
			}
			printResult(stdout, result)
		})
		if err != nil {
			logger.Error().Err(err).Msg("Watch failed")
			return exitFailure
		}
		logger.Info().Msg("Shutting down...")
		return exitOK
	}

	result, err := s.Run(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Sync failed")
		return exitFailure
	}

	printResult(stdout, result)
	return exitOK
}

func parseArgs(argv []string, stderr io.Writer) (Args, error) {
	var args Args

	fs := flag.NewFlagSet("orbit-producthunt", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&args.Products, "products", false, "List the products of a user")
	fs.BoolVar(&args.Votes, "votes", false, "Sync the votes of a product")
	fs.BoolVar(&args.Comments, "comments", false, "Sync the comments of a product")
	fs.StringVar(&args.User, "user", "", "Product Hunt username or user ID (with --products)")
	fs.StringVar(&args.ID, "id", "", "Product Hunt post ID (with --votes or --comments)")
	fs.Float64Var(&args.Hours, "hours", sources.DefaultWindowHours, "Only sync activities from the last N hours")
	fs.DurationVar(&args.Every, "every", 0, "Repeat the sync at this interval until interrupted (0 = run once)")
	fs.BoolVar(&args.DryRun, "dry-run", false, "Print the activities without submitting them")
	fs.StringVar(&args.EnvFile, "env-file", ".env", "Path to .env file")
	fs.IntVar(&args.Overrides.MaxPages, "max-pages", 0, "Maximum number of non-empty pages to fetch (0 = SYNC_MAX_PAGES)")
	fs.StringVar(&args.Overrides.OrbitWorkspaceID, "orbit-workspace", "", "Orbit workspace ID (overrides ORBIT_WORKSPACE_ID)")
	fs.StringVar(&args.Overrides.OrbitAPIKey, "orbit-api-key", "", "Orbit API key (overrides ORBIT_API_KEY)")
	fs.StringVar(&args.Overrides.ProductHuntAPIKey, "producthunt-api-key", "", "Product Hunt API key (overrides PRODUCT_HUNT_API_KEY)")
	fs.StringVar(&args.Overrides.ProductHuntAPISecret, "producthunt-api-secret", "", "Product Hunt API secret (overrides PRODUCT_HUNT_API_SECRET)")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if fs.NArg() > 0 {
		return args, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return args, nil
}

// request selects exactly one workflow.
func (a Args) request() (syncer.Request, error) {
	modes := 0
	for _, set := range []bool{a.Products, a.Votes, a.Comments} {
		if set {
			modes++
		}
	}

	switch {
	case modes == 0:
		return syncer.Request{}, errors.New("no command given")
	case modes > 1:
		return syncer.Request{}, errors.New("only one of --products, --votes or --comments may be given")
	case a.Hours <= 0:
		return syncer.Request{}, fmt.Errorf("--hours must be positive, got %v", a.Hours)
	case a.Every < 0:
		return syncer.Request{}, fmt.Errorf("--every must not be negative, got %v", a.Every)
	}

	if a.Products {
		if a.User == "" {
			return syncer.Request{}, errors.New("--products requires --user")
		}
		if a.Every > 0 {
			return syncer.Request{}, errors.New("--every cannot be used with --products")
		}
		return syncer.Request{Workflow: syncer.WorkflowProducts, UserID: a.User}, nil
	}

	if a.ID == "" {
		return syncer.Request{}, errors.New("--votes and --comments require --id")
	}

	workflow := syncer.WorkflowVotes
	if a.Comments {
		workflow = syncer.WorkflowComments
	}

	return syncer.Request{
		Workflow:  workflow,
		ProductID: a.ID,
		Hours:     a.Hours,
		DryRun:    a.DryRun,
	}, nil
}

func printResult(w io.Writer, result *syncer.Result) {
	switch {
	case result.Workflow == syncer.WorkflowProducts:
		for _, p := range result.Products {
			fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
		}
	case result.DryRun:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result.Records)
	default:
		fmt.Fprintln(w, result.Stats.String())
	}
}
