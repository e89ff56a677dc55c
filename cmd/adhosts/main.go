package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/adhosts"
	"github.com/bft-labs/adhosts/internal/cliconfig"
	"github.com/bft-labs/adhosts/pkg/fetch"
	"github.com/bft-labs/adhosts/pkg/log"
	"github.com/bft-labs/adhosts/plugins/configwatcher"
)

const helpBanner = `
           _ _               _
  __ _  __| | |__   ___  ___| |_ ___
 / _' |/ _' | '_ \ / _ \/ __| __/ __|
| (_| | (_| | | | | (_) \__ \ |_\__ \
 \__,_|\__,_|_| |_|\___/|___/\__|___/
`

const helpDescription = `
Compile adblock rule lists into a hosts file for DNS-level blocking.

Highlights:
  - Fetches every list concurrently; a failing list never spoils the rest.
  - Keeps only plain "||domain^" rules and validates every domain strictly.
  - Deduplicates across lists and writes the file atomically.
  - Configure via file, env (ADHOSTS_*), or flags; --watch rebuilds on config changes.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  adhosts -o /etc/dnsmasq.d/hosts.txt
  adhosts https://example.org/ads.txt file:///srv/lists/local.txt
  adhosts --config $HOME/.adhosts/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	cfg.UserAgent = "adhosts/" + getVersion()
	var cfgPath string

	root := &cobra.Command{
		Use:           "adhosts [flags] [source...]",
		Short:         "Compile adblock rule lists into a hosts file",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Positional sources behave like --source.
			if len(args) > 0 {
				if changed["source"] {
					cfg.Sources = append(cfg.Sources, args...)
				} else {
					cfg.Sources = args
				}
				changed["source"] = true
			}

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			loader := &configLoader{base: cfg, path: cfgFile, changed: changed}
			runCfg, err := loader.Load()
			if err != nil {
				return err
			}

			logger, err := log.New(log.Options{Level: runCfg.LogLevel, Format: runCfg.LogFormat})
			if err != nil {
				return err
			}
			logger.Info("configuration", log.Any("config", runCfg), log.String("config_file", cfgFile))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// One pool for every rebuild in watch mode.
			client := fetch.NewClient(fetch.DefaultClientConfig())
			defer client.CloseIdleConnections()
			r := &runner{client: client, logger: logger}

			err = r.runOnce(ctx, runCfg)
			if !runCfg.Watch {
				return err
			}
			if err != nil {
				logger.Error("build failed", log.Err(err))
			}

			return r.watch(ctx, loader)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.adhosts/config.toml)")
	root.Flags().StringSliceVar(&cfg.Sources, "source", cfg.Sources, "rule list URL (repeatable; http, https or file)")
	root.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "hosts file to write")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request HTTP timeout")
	root.Flags().IntVar(&cfg.Retries, "retries", cfg.Retries, "extra attempts for transient fetch failures")
	root.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "maximum simultaneous fetches (0 = one per source)")
	root.Flags().StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header sent with every request")
	root.Flags().StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write prometheus textfile metrics to this path")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "rebuild whenever the config file changes")

	if err := root.Execute(); err != nil {
		logger, lerr := log.New(log.Options{})
		if lerr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.Error("adhosts", log.Err(err))
		os.Exit(1)
	}
}

// configLoader re-reads file and environment on top of the flag values so
// a reload sees exactly what a fresh start would.
type configLoader struct {
	base    cliconfig.Config
	path    string
	changed map[string]bool
}

func (l *configLoader) Load() (cliconfig.Config, error) {
	cfg := l.base
	cfg.Sources = append([]string(nil), l.base.Sources...)

	if l.path != "" && cliconfig.FileExists(l.path) {
		fc, err := cliconfig.LoadFileConfig(l.path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&cfg, fc, l.changed); err != nil {
			return cfg, err
		}
	}

	// Apply environment variables (ADHOSTS_*)
	// These override file config but are overridden by flags (checked via changed map)
	if err := cliconfig.ApplyEnvConfig(&cfg, l.changed); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runner performs builds with a client shared across runs.
type runner struct {
	client *http.Client
	logger log.Logger
}

func (r *runner) runOnce(ctx context.Context, cfg cliconfig.Config) error {
	logger := r.logger
	summary, err := adhosts.Run(ctx, cfg.Library(),
		adhosts.WithLogger(logger),
		adhosts.WithHTTPClient(r.client),
	)
	if err != nil {
		return err
	}

	res := summary.Result
	switch {
	case summary.NoData:
		logger.Warn("no domains collected, output not written",
			log.Int("sources", len(res.Sources)),
			log.Int("failed", res.Failed()),
		)
	case summary.Written:
		logger.Info("done",
			log.String("output", cfg.Output),
			log.Int("unique_raw", res.UniqueRaw),
			log.Int("unique_converted", res.UniqueConverted),
			log.Int("failed_sources", res.Failed()),
		)
	}
	return nil
}

func (r *runner) watch(ctx context.Context, loader *configLoader) error {
	logger := r.logger
	if loader.path == "" {
		return fmt.Errorf("watch: no config file path")
	}

	w := configwatcher.New(loader.path, func(ctx context.Context) {
		cfg, err := loader.Load()
		if err != nil {
			logger.Error("reload failed, keeping previous output", log.Err(err))
			return
		}
		if err := r.runOnce(ctx, cfg); err != nil {
			logger.Error("build failed", log.Err(err))
		}
	}, configwatcher.DefaultConfig(), configwatcher.WithLogger(logger))

	if err := w.Run(ctx); err != nil {
		return err
	}
	logger.Info("received signal, stopping...")
	return nil
}
