package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: moodle2pdf <directive-file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay a Moodle directive file: create the quiz directory, forward the")
	fmt.Fprintln(w, "session cookie and save every quiz attempt page as a PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directive-file    Text file with zip-name, cookies and save-pdf lines")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Root output directory (default: output)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = 2 x CPUs)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-attempt timeout (e.g., 90s, 2m)")
	fmt.Fprintln(w, "      --validate            Check each PDF before writing it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stats:")
	fmt.Fprintln(w, "      --stats <path>        Report path (default: stats.json, \"\" = none)")
	fmt.Fprintln(w, "      --stats-format <s>    Report format: json, yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --engine <s>          Engine: rod, chromedp (default: rod)")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --sandbox             Keep the Chrome sandbox enabled")
	fmt.Fprintln(w, "      --stealth             Mask headless fingerprints (rod only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pool size and browser lifecycle")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "      --doctor [--json]     Check system configuration")
	fmt.Fprintln(w, "      --completion <shell>  Print completion script: bash, zsh, fish, powershell")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MOODLE2PDF_CONFIG, MOODLE2PDF_OUTPUT_DIR, MOODLE2PDF_WORKERS,")
	fmt.Fprintln(w, "  MOODLE2PDF_TIMEOUT, MOODLE2PDF_ENGINE, ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}
