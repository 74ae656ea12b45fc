package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/buildconsts/internal/config"
	"git.home.luguber.info/inful/buildconsts/internal/constants"
	"git.home.luguber.info/inful/buildconsts/internal/foundation"
	"git.home.luguber.info/inful/buildconsts/internal/version"
	"git.home.luguber.info/inful/buildconsts/internal/watch"
)

type resolveFlags struct {
	BuildRoot         string `short:"b" help:"Build root directory" default:"."`
	PackagePath       string `help:"Package subdirectory for monorepo builds"`
	Mode              string `help:"Execution mode ('buildbot' means remote, anything else is local)" default:"cli"`
	FunctionsDist     string `help:"Functions bundling output directory"`
	EdgeFunctionsDist string `help:"Edge functions bundling output directory"`
	CacheDir          string `help:"Cache directory override"`
	SiteID            string `help:"Site identifier"`
	APIHost           string `help:"API host" env:"NETLIFY_API_HOST"`
	APIToken          string `help:"API token" env:"NETLIFY_API_TOKEN"`
}

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"netlify.toml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Resolve struct {
		resolveFlags
		Format string `short:"f" help:"Output format" enum:"yaml,json,env" default:"yaml"`
	} `cmd:"" help:"Resolve the build constants once and print them"`

	Watch struct {
		resolveFlags
	} `cmd:"" help:"Re-resolve the build constants whenever the configuration file changes"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "resolve":
		if err := runResolve(CLI.Config, CLI.Resolve.resolveFlags, CLI.Resolve.Format); err != nil {
			slog.Error("Resolve failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(CLI.Config, CLI.Watch.resolveFlags); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("buildconsts %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

// loadConfig loads the configuration file, treating a missing file as an
// empty configuration: every constant it would feed simply stays unset.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Configuration file not found, continuing without it", "config_path", configPath)
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// newResolver builds the resolver from CLI flags.
func newResolver(configPath string, flags resolveFlags) (*constants.Resolver, error) {
	buildRoot, err := filepath.Abs(flags.BuildRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve build root: %w", err)
	}

	input := constants.MergeInput{
		ConfigPath:           configPath,
		BuildRoot:            buildRoot,
		PackagePath:          flags.PackagePath,
		FunctionsDistDir:     flags.FunctionsDist,
		EdgeFunctionsDistDir: flags.EdgeFunctionsDist,
		CacheDir:             flags.CacheDir,
		SiteID:               flags.SiteID,
		APIHost:              foundation.FromNonEmpty(flags.APIHost),
		APIToken:             foundation.FromNonEmpty(flags.APIToken),
		Mode:                 flags.Mode,
	}
	return constants.NewResolver(input, constants.ResolverOptions{}), nil
}

func runResolve(configPath string, flags resolveFlags, format string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	resolver, err := newResolver(configPath, flags)
	if err != nil {
		return err
	}

	rec := resolver.Initial(context.Background(), config.NewSnapshot(cfg))
	return printRecord(rec, format)
}

func runWatch(configPath string, flags resolveFlags) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	resolver, err := newResolver(configPath, flags)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	base := resolver.Initial(ctx, config.NewSnapshot(cfg))
	logRecord(base)

	watcher, err := watch.NewWatcher(configPath, func(ctx context.Context, cfg *config.Config) {
		rec := resolver.Refresh(ctx, base, config.NewSnapshot(cfg))
		logRecord(rec)
	})
	if err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			slog.Warn("Failed to stop watcher", "error", err)
		}
	}()

	slog.Info("Watching configuration, press Ctrl+C to stop", "config_path", configPath)
	<-ctx.Done()
	return nil
}

// printRecord writes the resolved record to stdout in the chosen format.
func printRecord(rec constants.Record, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(rec.Map(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		fmt.Println(string(out))
	case "env":
		env := rec.Env()
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, env[k])
		}
	default:
		out, err := yaml.Marshal(rec.Map())
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		fmt.Print(string(out))
	}
	return nil
}

// logRecord reports the resolved constants through the structured logger.
func logRecord(rec constants.Record) {
	args := make([]any, 0, 2*len(rec.Map()))
	env := rec.Env()
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, env[k])
	}
	slog.Info("Constants resolved", args...)
}
