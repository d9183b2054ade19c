package output

import (
	"time"

	"github.com/masmgr/logbound-go/internal/target"
	"github.com/masmgr/logbound-go/internal/transform"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
	_ ReportWriter = (*CSVWriter)(nil)
	_ ReportWriter = (*MarkdownWriter)(nil)
	_ ReportWriter = (*CIWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// Direction names the operation a report describes.
type Direction string

const (
	DirectionForward   Direction = "forward"
	DirectionInverse   Direction = "inverse"
	DirectionRoundTrip Direction = "roundtrip"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// Item is one transformed value.
type Item struct {
	Index    int
	Source   string
	Input    float64
	Output   float64
	Restored *float64 // Inverse(Output); round-trip reports only
	State    transform.ClampState
}

// TransformReport holds the results of one transform run.
type TransformReport struct {
	Direction   Direction
	Sources     []string
	MinBound    float64
	MaxBound    float64
	GeneratedAt time.Time
	Items       []Item
	Stats       transform.Stats
	Check       *target.InverseCheck
}

// ReportWriter writes transform reports.
type ReportWriter interface {
	Write(report *TransformReport, options OutputOptions) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatCSV:
		return &CSVWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatCI:
		return &CIWriter{}
	default:
		return &ConsoleWriter{}
	}
}
