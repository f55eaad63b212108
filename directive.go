package moodle2pdf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Directive names understood by the exporter.
const (
	DirectiveZipName  = "zip-name"
	DirectiveCookies  = "cookies"
	DirectiveSavePDF  = "save-pdf"
	DirectiveSaveText = "save-text"
)

// DefaultCommentMarker starts a comment line in a directive file.
const DefaultCommentMarker = "#"

// maxLineSize bounds a single directive line. Cookie headers are the
// longest lines in practice and rarely exceed a few kilobytes.
const maxLineSize = 1 << 20

// DirectiveKind is the closed set of directive types.
type DirectiveKind int

const (
	KindUnknown DirectiveKind = iota
	KindZipName
	KindCookies
	KindSavePDF
	KindSaveText
)

var kindNames = map[DirectiveKind]string{
	KindZipName:  DirectiveZipName,
	KindCookies:  DirectiveCookies,
	KindSavePDF:  DirectiveSavePDF,
	KindSaveText: DirectiveSaveText,
}

func (k DirectiveKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf maps a directive name to its kind.
func KindOf(name string) DirectiveKind {
	switch name {
	case DirectiveZipName:
		return KindZipName
	case DirectiveCookies:
		return KindCookies
	case DirectiveSavePDF:
		return KindSavePDF
	case DirectiveSaveText:
		return KindSaveText
	default:
		return KindUnknown
	}
}

// SuggestKind returns the known kind whose name is closest to name,
// if it is within two edits. Exact matches are not suggestions.
func SuggestKind(name string) (DirectiveKind, bool) {
	if KindOf(name) != KindUnknown {
		return KindUnknown, false
	}

	best, bestDist := KindUnknown, 3
	for _, k := range []DirectiveKind{KindZipName, KindCookies, KindSavePDF, KindSaveText} {
		if d := editDistance(name, k.String()); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best != KindUnknown
}

// Directive is one parsed instruction line.
type Directive struct {
	Name     string
	Argument string
	Kind     DirectiveKind
	Line     int // 1-based line number in the source file
}

// NewDirective builds a directive and resolves its kind from name.
func NewDirective(name, argument string) Directive {
	return Directive{Name: name, Argument: argument, Kind: KindOf(name)}
}

// ParseOptions controls directive parsing.
type ParseOptions struct {
	CommentMarker string   // empty = DefaultCommentMarker
	Ignore        []string // names dropped at parse time; nil = DefaultIgnoredDirectives
}

// DefaultIgnoredDirectives are valid Moodle export directives that this
// tool has no use for.
func DefaultIgnoredDirectives() []string {
	return []string{DirectiveSaveText}
}

// ParseFile reads and parses the directive file at path.
func ParseFile(path string, opts ParseOptions) ([]Directive, error) {
	f, err := os.Open(path) // #nosec G304 -- directive path is user-provided
	if err != nil {
		return nil, configError(fmt.Errorf("%w: %v", ErrReadDirectives, err))
	}
	defer f.Close()

	return ParseDirectives(f, opts)
}

// ParseDirectives parses directives from r, preserving their order.
// Comment lines, lines without an argument and ignored names are skipped.
func ParseDirectives(r io.Reader, opts ParseOptions) ([]Directive, error) {
	marker := opts.CommentMarker
	if marker == "" {
		marker = DefaultCommentMarker
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnoredDirectives()
	}
	ignored := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		ignored[name] = true
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var directives []Directive
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.HasPrefix(line, marker) {
			continue
		}

		name, argument, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		if ignored[name] {
			continue
		}

		d := NewDirective(name, argument)
		d.Line = lineNo
		directives = append(directives, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, configError(fmt.Errorf("%w: line %d: %v", ErrReadDirectives, lineNo+1, err))
	}

	return directives, nil
}

// countKind returns how many directives have kind k.
func countKind(directives []Directive, k DirectiveKind) int {
	n := 0
	for _, d := range directives {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
