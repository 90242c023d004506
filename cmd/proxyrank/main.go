package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"proxyrank/internal/config"
	"proxyrank/internal/database"
	"proxyrank/internal/logger"
	"proxyrank/pkg/checker"
	"proxyrank/pkg/geo"
	"proxyrank/pkg/manager"
	"proxyrank/pkg/metrics"
	"proxyrank/pkg/output"
	"proxyrank/pkg/source"
)

const (
	Version = "1.0.0"
	Banner  = `
______ ______ ______ ______ ______ ______ ______ ______

  ProxyRank - concurrent proxy validator v%s

______ ______ ______ ______ ______ ______ ______ ______

`
)

func main() {
	flags := pflag.NewFlagSet("proxyrank", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "Path to config file")
	genConfig := flags.Bool("gen-config", false, "Generate default config file")
	version := flags.BoolP("version", "v", false, "Show version")
	showRun := flags.String("show-run", "", "Print a stored run from the history database and exit")

	flags.StringP("type", "t", "", "Proxy type: http, https, socks4, socks5 (prompted when empty)")
	flags.String("target", checker.DefaultTestURL, "Echo endpoint requested through each proxy")
	flags.Duration("timeout", checker.DefaultTimeout, "Per-proxy timeout")
	flags.IntP("concurrency", "j", checker.DefaultConcurrency, "Maximum probes in flight")
	flags.StringP("input", "i", "", "File with one proxy per line (prompted when no input is given)")
	flags.String("url", "", "Remote plain-text proxy list")
	flags.StringP("output", "o", "good_proxies.json", "Output file")
	flags.StringP("name", "n", "FACEBOOK_PROXIES", "Variable name written to the output file")
	flags.Bool("history", false, "Store every result in the SQLite run history")
	flags.String("db", "./data/proxyrank.db", "Run history database path")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	flags.String("geoip-db", "", "MaxMind country database used to annotate good proxies")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	flags.Parse(os.Args[1:])

	if *version {
		fmt.Printf("ProxyRank v%s\n", Version)
		return
	}

	fmt.Fprintf(os.Stderr, Banner, Version)

	log := logger.New("main")

	if *genConfig {
		if err := config.SaveConfigTemplate("config.yaml"); err != nil {
			log.Fatal("failed to generate config", "err", err)
		}
		fmt.Println("Default config generated: config.yaml")
		return
	}

	cfg, err := config.LoadConfig(*configPath, flags)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal("failed to set log level", "err", err)
	}
	config.PrintConfig(cfg)

	if *showRun != "" {
		if err := printStoredRun(context.Background(), cfg.Database.Path, *showRun); err != nil {
			log.Fatal("failed to read run history", "err", err)
		}
		return
	}

	// Runs are not cancellable; an interrupt simply terminates the process.
	if err := run(context.Background(), cfg); err != nil {
		log.Fatal("run failed", "err", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	prompter := source.NewPrompter(os.Stdin, os.Stderr)

	proxyType, err := resolveProxyType(cfg.Checker.ProxyType, prompter)
	if err != nil {
		return err
	}

	checkerConfig := checker.CheckerConfig{
		TestURL:   cfg.Checker.TargetURL,
		Timeout:   cfg.Checker.Timeout,
		UserAgent: cfg.Checker.UserAgent,
	}
	if cfg.Geo.Database != "" {
		locator, err := geo.Open(cfg.Geo.Database)
		if err != nil {
			return err
		}
		defer locator.Close()
		checkerConfig.Locator = locator
	}

	dispatcher := checker.NewDispatcher(
		checker.NewCheckerWithConfig(checkerConfig),
		checker.DispatcherConfig{ProxyType: proxyType, Concurrency: cfg.Checker.Concurrency},
	)

	var opts []manager.Option
	if cfg.Database.Enabled {
		db, err := database.NewDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		opts = append(opts, manager.WithStore(database.NewService(db)))
	}
	if cfg.Metrics.Textfile != "" {
		opts = append(opts, manager.WithRecorder(metrics.NewRecorder(proxyType)))
	}

	mgr := manager.NewManager(buildSource(cfg, prompter), dispatcher, manager.Config{
		ProxyType:   proxyType,
		OutputPath:  cfg.Output.Path,
		Variable:    cfg.Output.Variable,
		MetricsFile: cfg.Metrics.Textfile,
	}, opts...)

	report, err := mgr.Run(ctx)
	if err != nil {
		return err
	}

	output.PrintRanked(os.Stdout, report.Ranked)
	output.PrintSummary(os.Stdout, report.Summary)
	fmt.Printf("Results saved to %s\n", cfg.Output.Path)
	if cfg.Database.Enabled {
		fmt.Printf("Run %s stored in %s (view with --show-run %s)\n", report.RunID, cfg.Database.Path, report.RunID)
	}
	return nil
}

func printStoredRun(ctx context.Context, dbPath, runID string) error {
	db, err := database.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := database.NewService(db)
	stats, err := svc.RunStats(ctx, runID)
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		return fmt.Errorf("run %s not found in %s", runID, dbPath)
	}
	rows, err := svc.GoodProxies(ctx, runID)
	if err != nil {
		return err
	}

	output.PrintStoredRun(os.Stdout, stats, rows)
	return nil
}

func resolveProxyType(configured string, prompter *source.Prompter) (checker.ProxyType, error) {
	if configured != "" {
		return checker.ParseProxyType(configured)
	}
	return prompter.ProxyType()
}

// buildSource reads the file and URL inputs when configured and falls back
// to pasted input otherwise.
func buildSource(cfg *config.Config, prompter *source.Prompter) source.Source {
	var sources []source.Source
	if cfg.Input.File != "" {
		sources = append(sources, source.NewFileSource(cfg.Input.File))
	}
	if cfg.Input.URL != "" {
		sources = append(sources, source.NewURLSource(cfg.Input.URL, source.SourceConfig{
			Timeout:   cfg.Checker.Timeout,
			UserAgent: cfg.Checker.UserAgent,
		}))
	}
	if len(sources) == 0 {
		sources = append(sources, prompter.Source())
	}
	return source.NewMulti(sources...)
}
