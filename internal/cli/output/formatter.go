package output

import (
	"fmt"
	"io"
	"strings"
)

// Format names an output encoding accepted by --output.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes data to w in one encoding.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(w io.Writer, data any) error

// Format calls f(w, data).
func (f FormatterFunc) Format(w io.Writer, data any) error { return f(w, data) }

var encoders = map[Format]Formatter{
	FormatJSON: FormatterFunc(EncodeJSON),
	FormatYAML: FormatterFunc(EncodeYAML),
}

// ParseFormat normalizes s. The empty string selects the table.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f == FormatTable {
		return FormatTable, nil
	}
	if _, ok := encoders[f]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// NewFormatter returns the formatter for f; anything unknown gets a table.
func NewFormatter(f Format) Formatter {
	if enc, ok := encoders[f]; ok {
		return enc
	}
	return &TableFormatter{}
}
