package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/model"
)

// JSONWriter outputs pages in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it is sufficient for our needs and the model types
// already carry json tags.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the page result in JSON format.
func (w *JSONWriter) Write(result *model.PageResult) (int, error) {
	return w.writeJSON(result)
}

// WriteComparison outputs the comparison in JSON format.
func (w *JSONWriter) WriteComparison(c *Comparison) (int, error) {
	return w.writeJSON(c)
}

// WriteValue outputs any JSON-encodable value with the writer's settings.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	return w.writeJSON(v)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// PageDocument is a page result with output metadata.
//
// Design decision: We wrap the result rather than adding fields to
// model.PageResult so output-specific data (version, JSON-LD) does not
// pollute the core data structure.
type PageDocument struct {
	// Version is the brokerseo version that generated this document.
	Version string `json:"version"`

	// Page is the full page result.
	Page *model.PageResult `json:"page"`

	// StructuredData holds the schema.org JSON-LD documents for the page.
	StructuredData []any `json:"structuredData"`
}

// NewPageDocument creates a PageDocument with structured data for baseURL.
func NewPageDocument(result *model.PageResult, version, baseURL string) *PageDocument {
	return &PageDocument{
		Version:        version,
		Page:           result,
		StructuredData: content.StructuredData(result, baseURL),
	}
}

// FullJSONWriter outputs complete page documents with metadata.
type FullJSONWriter struct {
	*JSONWriter

	// version is the brokerseo version string.
	version string

	// baseURL is used for structured data URLs.
	baseURL string
}

// NewFullJSONWriter creates a writer for complete page documents.
func NewFullJSONWriter(output io.Writer, version, baseURL string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
		baseURL:    baseURL,
	}
}

// Write outputs the page wrapped with metadata and structured data.
func (w *FullJSONWriter) Write(result *model.PageResult) (int, error) {
	return w.writeJSON(NewPageDocument(result, w.version, w.baseURL))
}
