package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/i18n"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Site configuration file path" default:"site.yaml"`
	Locales string `short:"l" help:"Locale configuration file path" default:"locales.yaml"`
	EnvFile string `help:"Env file loaded before the configuration" default:".env"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output      string `short:"o" help:"Output directory override"`
		MetricsFile string `help:"Write build metrics in Prometheus text format to this file"`
	} `cmd:"" help:"Build the site into the output directory"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Discover struct{} `cmd:"" help:"List discovered content files without building"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg, locales, err := loadConfiguration()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if CLI.Build.Output != "" {
			cfg.Paths.Output = CLI.Build.Output
		}
		if err := runBuild(cfg, locales, CLI.Build.MetricsFile); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	case "discover":
		cfg, _, err := loadConfiguration()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runDiscover(cfg); err != nil {
			slog.Error("Discover failed", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func loadConfiguration() (*config.Config, *i18n.Service, error) {
	config.LoadEnvFile(CLI.EnvFile)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, nil, err
	}
	locales, err := i18n.Load(CLI.Locales)
	if err != nil {
		return nil, nil, err
	}
	return cfg, locales, nil
}

func runBuild(cfg *config.Config, locales *i18n.Service, metricsFile string) error {
	var recorder metrics.Recorder
	var registry *prom.Registry
	if metricsFile != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	builder := site.New(cfg, locales, recorder)
	if err := builder.Build(); err != nil {
		return err
	}

	if metricsFile != "" {
		if err := writeMetrics(registry, metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func writeMetrics(registry *prom.Registry, path string) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}

func runDiscover(cfg *config.Config) error {
	store, err := content.Load(cfg.Paths.Content, content.Options{
		DefaultImage: cfg.SEO.DefaultImage,
	})
	if err != nil {
		return err
	}

	eligible := 0
	for _, file := range store.Files() {
		state := "skipped"
		if file.Eligible() {
			state = "ok"
			eligible++
		}
		fmt.Printf("%-8s %-40s template=%s slug=%s\n", state, file.SourcePath, file.Front.Template, file.Front.Slug)
	}
	fmt.Printf("\n%d files, %d eligible\n", store.Count(), eligible)
	return nil
}
