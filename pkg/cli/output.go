package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nomagicln/genx/pkg/corpus"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format is an output format for rendered samples.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

// Formats returns the supported output format names.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format '%s' (use table, json or yaml)", s)
	}
}

// SampleSet is a batch of values drawn from one generator.
type SampleSet struct {
	Generator string `json:"generator" yaml:"generator"`
	Seed      int64  `json:"seed" yaml:"seed"`
	Values    []any  `json:"values" yaml:"values"`
}

// Renderer writes samples and corpus records in the chosen format.
type Renderer struct {
	out    io.Writer
	format Format
	styled bool
}

// NewRenderer creates a renderer. Table headers are styled only when out is a terminal.
func NewRenderer(out io.Writer, format Format) *Renderer {
	return &Renderer{
		out:    out,
		format: format,
		styled: isTerminal(out),
	}
}

// Samples renders a sample set.
func (r *Renderer) Samples(set SampleSet) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(set)
	case FormatYAML:
		return r.writeYAML(set)
	}

	fmt.Fprintf(r.out, "%s (seed %d)\n", r.header(set.Generator), set.Seed)
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, r.header("#")+"\t"+r.header("VALUE"))
	for i, v := range set.Values {
		fmt.Fprintf(w, "%d\t%s\n", i+1, display(v))
	}
	return w.Flush()
}

// Records renders corpus records.
func (r *Renderer) Records(records []corpus.Record) error {
	switch r.format {
	case FormatJSON:
		return r.writeJSON(records)
	case FormatYAML:
		return r.writeYAML(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(r.out, "No samples recorded.")
		return nil
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join([]string{
		r.header("ID"), r.header("GENERATOR"), r.header("SEED"), r.header("CREATED"), r.header("VALUE"),
	}, "\t"))
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			rec.ID, rec.Generator, rec.Seed, rec.CreatedAt.Format(time.RFC3339), rec.Value)
	}
	return w.Flush()
}

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) writeYAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) header(s string) string {
	if !r.styled {
		return s
	}
	return headerStyle.Render(s)
}

// display formats a value for the table view. Slices and maps are shown as JSON.
func display(v any) string {
	switch v.(type) {
	case string, fmt.Stringer:
		return fmt.Sprint(v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
