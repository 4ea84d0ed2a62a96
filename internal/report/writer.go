package report

import (
	"io"

	"github.com/nao1215/brokerseo/internal/model"
)

// Writer defines the interface for report output.
// Implementations write rendered pages and comparisons in various formats.
type Writer interface {
	// Write outputs one rendered page.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.PageResult) (int, error)

	// WriteComparison outputs a side-by-side view of selected brokers.
	WriteComparison(c *Comparison) (int, error)
}

// Comparison is the resolved comparison selection.
type Comparison struct {
	// Brokers are the selected brokers in selection order.
	Brokers []model.Broker `json:"brokers"`

	// Missing lists selected ids that are no longer in the catalog.
	Missing []string `json:"missing,omitempty"`

	// Max is the selection capacity.
	Max int `json:"max"`
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write pages, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the page to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.PageResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteComparison outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteComparison(c *Comparison) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteComparison(c)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
