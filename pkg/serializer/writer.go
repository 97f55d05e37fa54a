package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format identifies an output serialization format.
type Format string

const (
	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
	// FormatTable outputs a flattened two-column text table.
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported
// formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	}
	return true
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Serializer writes structured data to an output destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers holding a resource that must be
// released after the last Serialize call.
type Closer interface {
	Close() error
}

// Writer serializes data to an io.Writer in a chosen format. Unknown
// formats fall back to JSON rather than erroring per call.
type Writer struct {
	format Format
	out    io.Writer
	file   *os.File
}

// NewWriter creates a Writer targeting out.
func NewWriter(format Format, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a Writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a writer for the given output path. An
// empty path or the special path "-" targets stdout. The caller should
// Close the returned serializer when it implements Closer.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	w := NewWriter(format, f)
	w.file = f
	return w, nil
}

// Serialize writes data in the writer's format.
func (w *Writer) Serialize(_ context.Context, data any) error {
	switch w.format {
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = w.out.Write(out)
		return err
	case FormatTable:
		return w.writeTable(data)
	default:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(out))
		return err
	}
}

// Close releases the underlying file, if any. Safe to call multiple
// times and safe on stdout writers.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	f := w.file
	w.file = nil
	return f.Close()
}

// writeTable renders data as a flattened FIELD/VALUE table. The data is
// round-tripped through JSON so any serializable value flattens the
// same way it would appear in JSON output.
func (w *Writer) writeTable(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to flatten data: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to flatten data: %w", err)
	}

	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	rows := 0
	flatten("", generic, func(path, value string) {
		rows++
		fmt.Fprintf(tw, "%s\t%s\n", path, value)
	})
	if rows == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	return tw.Flush()
}

// flatten walks maps and slices emitting dotted/indexed leaf paths.
func flatten(prefix string, v any, emit func(path, value string)) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			flatten(path, t[k], emit)
		}
	case []any:
		for i, e := range t {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), e, emit)
		}
	default:
		if prefix == "" {
			prefix = "."
		}
		emit(prefix, fmt.Sprint(t))
	}
}
