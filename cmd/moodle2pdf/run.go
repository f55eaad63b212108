package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	moodle2pdf "github.com/alnah/moodle2pdf"
	"github.com/alnah/moodle2pdf/internal/config"
	"github.com/alnah/moodle2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no directive file specified")
	ErrTooManyArgs = errors.New("expected exactly one directive file")
)

// runExport loads configuration, parses the directive file and replays it.
// Per-attempt failures are reported in the stats, not as an error.
func runExport(ctx context.Context, positionalArgs []string, flags *cliFlags, env *Environment) error {
	inputPath, err := resolveInputPath(positionalArgs)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if flags.common.verbose {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w%s", err, configHint(err, configName))
		}
	}

	// CLI wins over env, env over file
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	newBrowser := env.NewBrowser
	if newBrowser == nil {
		newBrowser, err = moodle2pdf.FactoryFor(strings.ToLower(cfg.Browser.Engine))
		if err != nil {
			return err
		}
	}

	directives, err := moodle2pdf.ParseFile(inputPath, moodle2pdf.ParseOptions{
		CommentMarker: cfg.Directives.CommentMarker,
		Ignore:        append([]string{}, cfg.Directives.Ignore...),
	})
	if err != nil {
		return err
	}

	exporter := moodle2pdf.NewExporter(
		moodle2pdf.WithWorkers(cfg.Workers),
		moodle2pdf.WithOutputDir(cfg.Output.Dir),
		moodle2pdf.WithCookieName(cfg.Session.CookieName),
		moodle2pdf.WithTimeout(timeout),
		moodle2pdf.WithReport(cfg.Report.Path, reportFormat(cfg)),
		moodle2pdf.WithValidation(cfg.Output.Validate),
		moodle2pdf.WithLaunchOptions(moodle2pdf.LaunchOptions{
			Bin:       cfg.Browser.Bin,
			NoSandbox: !cfg.Browser.Sandbox,
			Stealth:   cfg.Browser.Stealth,
		}),
		moodle2pdf.WithBrowserFactory(newBrowser),
		moodle2pdf.WithOutput(env.Stdout, env.Stderr),
		moodle2pdf.WithQuiet(flags.common.quiet),
		moodle2pdf.WithVerbose(flags.common.verbose),
		moodle2pdf.WithClock(env.Now),
	)

	res, err := exporter.Execute(ctx, directives)
	if err != nil {
		return fmt.Errorf("%w%s", err, exportHint(err, cfg))
	}

	if !flags.common.quiet {
		res.Stats.WriteSummary(env.Stdout)
		if cfg.Report.Path != "" && res.ReportErr == nil {
			fmt.Fprintf(env.Stdout, "stats have been exported to %s\n", cfg.Report.Path)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export interrupted: %w", err)
	}
	return nil
}

// resolveInputPath returns the single directive file argument.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w, got %d", ErrTooManyArgs, len(args))
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.validate {
		cfg.Output.Validate = true
	}

	// Report flags; an explicit empty --stats disables the report
	if flags.report.pathSet {
		cfg.Report.Path = flags.report.path
	}
	if flags.report.formatSet {
		cfg.Report.Format = flags.report.format
	}

	// Browser flags
	if flags.browser.engine != "" {
		cfg.Browser.Engine = flags.browser.engine
	}
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.sandbox {
		cfg.Browser.Sandbox = true
	}
	if flags.browser.stealth {
		cfg.Browser.Stealth = true
	}
}

// reportFormat normalizes the configured report format.
func reportFormat(cfg *config.Config) string {
	if cfg.Report.Format == "" {
		return moodle2pdf.ReportJSON
	}
	return strings.ToLower(cfg.Report.Format)
}

// configHint returns a hint for config loading errors.
func configHint(err error, name string) string {
	if errors.Is(err, config.ErrConfigNotFound) {
		return hints.ForConfigNotFound(config.SearchPaths(name))
	}
	return ""
}

// exportHint returns a hint for fatal Execute errors.
func exportHint(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, moodle2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, moodle2pdf.ErrMissingCookie):
		return hints.ForMissingCookie(cfg.Session.CookieName)
	case errors.Is(err, moodle2pdf.ErrSequence):
		return hints.ForSequence()
	case errors.Is(err, moodle2pdf.ErrOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
