package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file, optionally filtered by glob
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// completionMeta holds completion hints the FlagSet cannot express.
type completionMeta struct {
	Values   []string // enum values
	File     bool     // file completion
	FileGlob string   // comma-separated patterns
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
// Names, types and descriptions come from the FlagSet.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"engine":       {Values: []string{"rod", "chromedp"}},
	"stats-format": {Values: []string{"json", "yaml"}},
	"completion":   {Values: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}},

	// File flags
	"config":      {File: true, FileGlob: "*.yaml,*.yml"},
	"stats":       {File: true, FileGlob: "*.json,*.yaml,*.yml"},
	"browser-bin": {File: true},

	// Directory flags
	"output": {IsDir: true},
}

// completionFlags extracts flag definitions from the CLI FlagSet,
// enriched with flagCompletionMeta. The result is sorted by long name.
func completionFlags() []flagDef {
	return extractFlagsFromFlagSet(newFlagSet(&cliFlags{}))
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.File:
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// names returns the flag spellings, long first.
func (f flagDef) names() []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := completionFlags()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(flags)
	case ShellZsh:
		script = generateZsh(flags)
	case ShellFish:
		script = generateFish(flags)
	case ShellPowerShell:
		script = generatePowerShell(flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles --completion.
func runCompletion(shell string, env *Environment) int {
	if err := GenerateCompletion(env.Stdout, Shell(shell)); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printCompletionUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

// printCompletionUsage prints installation instructions.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: moodle2pdf --completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish, powershell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(moodle2pdf --completion bash)\"  # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(moodle2pdf --completion zsh)\"   # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:        moodle2pdf --completion fish > ~/.config/fish/completions/moodle2pdf.fish")
	fmt.Fprintln(w, "  PowerShell:  moodle2pdf --completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(flags []flagDef) string {
	var b strings.Builder
	var all []string

	b.WriteString("# bash completion for moodle2pdf\n")
	b.WriteString("_moodle2pdf_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"$prev\" in\n")

	for _, f := range flags {
		all = append(all, f.names()...)
		if !f.takesValue() {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", strings.Join(f.names(), "|"))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
		case flagDir:
			b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		case flagFile:
			b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("            return\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(all, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _moodle2pdf_completions moodle2pdf\n")

	return b.String()
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("#compdef moodle2pdf\n\n")
	b.WriteString("_moodle2pdf() {\n")
	b.WriteString("    _arguments -s \\\n")

	for _, f := range flags {
		desc := zshEscape(f.Desc)
		action := ""
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
		case flagDir:
			action = ":directory:_files -/"
		case flagFile:
			if f.FileGlob != "" {
				action = fmt.Sprintf(":file:_files -g \"%s\"", strings.ReplaceAll(f.FileGlob, ",", " "))
			} else {
				action = ":file:_files"
			}
		case flagString, flagInt:
			action = ":" + f.Long + ":"
		}

		if f.Short != "" {
			fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", f.Long, desc, action)
		}
	}

	b.WriteString("        '1:directive file:_files'\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _moodle2pdf moodle2pdf\n")

	return b.String()
}

// zshEscape makes s safe inside a single-quoted _arguments description.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(flags []flagDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for moodle2pdf\n")
	b.WriteString("complete -c moodle2pdf -F\n")

	for _, f := range flags {
		fmt.Fprintf(&b, "complete -c moodle2pdf -l %s", f.Long)
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		fmt.Fprintf(&b, " -d '%s'", fishEscape(f.Desc))

		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
		case flagDir:
			b.WriteString(" -x -a '(__fish_complete_directories)'")
		case flagFile:
			b.WriteString(" -r -F")
		case flagString, flagInt:
			b.WriteString(" -x")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// fishEscape makes s safe inside a single-quoted fish string.
func fishEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "'", `\'`)
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func generatePowerShell(flags []flagDef) string {
	var b strings.Builder
	var all []string
	var enums []string

	for _, f := range flags {
		for _, n := range f.names() {
			all = append(all, "'"+n+"'")
			if f.Type == flagEnum {
				values := make([]string, len(f.Values))
				for i, v := range f.Values {
					values[i] = "'" + v + "'"
				}
				enums = append(enums, fmt.Sprintf("        '%s' = @(%s)", n, strings.Join(values, ", ")))
			}
		}
	}

	b.WriteString("# PowerShell completion for moodle2pdf\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName moodle2pdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	fmt.Fprintf(&b, "    $flags = @(%s)\n", strings.Join(all, ", "))
	b.WriteString("    $values = @{\n")
	b.WriteString(strings.Join(enums, "\n"))
	b.WriteString("\n    }\n\n")
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $prev = $null\n")
	b.WriteString("    if ($wordToComplete) {\n")
	b.WriteString("        if ($elements.Count -ge 2) { $prev = $elements[-2] }\n")
	b.WriteString("    } elseif ($elements.Count -ge 1) {\n")
	b.WriteString("        $prev = $elements[-1]\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates = $flags\n")
	b.WriteString("    if ($prev -and $values.ContainsKey($prev)) { $candidates = $values[$prev] }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}
