package moodle2pdf

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/moodle2pdf/internal/fileutil"
)

// Report formats.
const (
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// DefaultReportPath is where the stats report is written, relative to the
// working directory.
const DefaultReportPath = "stats.json"

// timestampLayout matches C's ctime(): "Mon Jan  2 15:04:05 2006".
const timestampLayout = time.ANSIC

// Stats describes one run.
type Stats struct {
	Supposed   int // directives after parsing
	Executed   int
	Ignored    int
	FilesSaved int
	FileErrors int
	Start      time.Time
	End        time.Time // zero until the run completes
}

// tally adds export outcomes to the file counters.
func (s *Stats) tally(results []ExportResult) {
	for _, r := range results {
		if r.OK() {
			s.FilesSaved++
		} else {
			s.FileErrors++
		}
	}
}

// statsDoc is the persisted shape of Stats.
type statsDoc struct {
	Supposed   int     `json:"supposed" yaml:"supposed"`
	Executed   int     `json:"executed" yaml:"executed"`
	Ignored    int     `json:"ignored" yaml:"ignored"`
	FilesSaved int     `json:"file saved" yaml:"file saved"`
	FileErrors int     `json:"file errors" yaml:"file errors"`
	Start      string  `json:"start" yaml:"start"`
	End        *string `json:"end" yaml:"end"`
}

// reportDoc is the top-level report: the quiz name and its stats.
type reportDoc struct {
	Name  *string  `json:"name" yaml:"name"`
	Stats statsDoc `json:"stats" yaml:"stats"`
}

func (s Stats) doc() statsDoc {
	d := statsDoc{
		Supposed:   s.Supposed,
		Executed:   s.Executed,
		Ignored:    s.Ignored,
		FilesSaved: s.FilesSaved,
		FileErrors: s.FileErrors,
		Start:      s.Start.Format(timestampLayout),
	}
	if !s.End.IsZero() {
		end := s.End.Format(timestampLayout)
		d.End = &end
	}
	return d
}

// MarshalReport encodes name and stats in the given format.
// A nil name is encoded as null.
func MarshalReport(format string, name *string, s Stats) ([]byte, error) {
	doc := reportDoc{Name: name, Stats: s.doc()}

	switch format {
	case "", ReportJSON:
		return json.Marshal(doc)
	case ReportYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s, %s)", ErrInvalidReportFormat, format, ReportJSON, ReportYAML)
	}
}

// WriteReport persists the report at path, replacing any previous one.
// Every failure wraps ErrReport.
func WriteReport(path, format string, name *string, s Stats) error {
	data, err := MarshalReport(format, name, s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReport, err)
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrReport, err)
	}
	return nil
}

// WriteSummary prints a human-readable summary of s to w.
func (s Stats) WriteSummary(w io.Writer) {
	doc := s.doc()
	end := "-"
	if doc.End != nil {
		end = *doc.End
	}

	fmt.Fprintln(w, "commands executed with the following stats:")
	fmt.Fprintf(w, "  supposed:    %d\n", s.Supposed)
	fmt.Fprintf(w, "  executed:    %d\n", s.Executed)
	fmt.Fprintf(w, "  ignored:     %d\n", s.Ignored)
	fmt.Fprintf(w, "  file saved:  %d\n", s.FilesSaved)
	fmt.Fprintf(w, "  file errors: %d\n", s.FileErrors)
	fmt.Fprintf(w, "  start:       %s\n", doc.Start)
	fmt.Fprintf(w, "  end:         %s\n", end)
}
