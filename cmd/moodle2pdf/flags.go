package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that control output and configuration lookup.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags holds headless browser flags.
type browserFlags struct {
	engine  string
	bin     string
	sandbox bool
	stealth bool
}

// reportFlags holds stats report flags.
type reportFlags struct {
	path      string
	format    string
	pathSet   bool // --stats given, even as ""
	formatSet bool
}

// cliFlags holds every flag of the moodle2pdf command.
type cliFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	validate   bool
	browser    browserFlags
	report     reportFlags
	doctor     bool
	json       bool
	completion string
	version    bool
	help       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pool size, browser lifecycle and ignored directives")
}

// addBrowserFlags adds headless browser flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.engine, "engine", "", "browser engine: rod, chromedp")
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium binary path")
	fs.BoolVar(&f.sandbox, "sandbox", false, "keep the Chrome sandbox enabled")
	fs.BoolVar(&f.stealth, "stealth", false, "mask headless fingerprints (rod only)")
}

// addReportFlags adds stats report flags to a FlagSet.
func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.path, "stats", "", "stats report path (\"\" = no report)")
	fs.StringVar(&f.format, "stats-format", "", "stats report format: json, yaml")
}

// newFlagSet builds the FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("moodle2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&f.output, "output", "o", "", "root output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel exports (0 = 2 x CPUs)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-attempt timeout (e.g., 90s, 2m)")
	fs.BoolVar(&f.validate, "validate", false, "check each PDF before writing it")

	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	addReportFlags(fs, &f.report)

	fs.BoolVar(&f.doctor, "doctor", false, "check system configuration and exit")
	fs.BoolVar(&f.json, "json", false, "JSON output (with --doctor)")
	fs.StringVar(&f.completion, "completion", "", "print shell completion script: bash, zsh, fish, powershell")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	// Usage is printed by runMain, after the error.
	fs.Usage = func() {}
	return fs
}

// parseFlags parses command-line arguments (without the program name)
// and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.report.pathSet = fs.Changed("stats")
	f.report.formatSet = fs.Changed("stats-format")

	return f, fs.Args(), nil
}
