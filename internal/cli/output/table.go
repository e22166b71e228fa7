package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"
)

// Tabler is implemented by values that lay themselves out as a table.
type Tabler interface {
	Table() *Table
}

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders a *Table, a Tabler, or a struct as FIELD/VALUE rows.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch v := data.(type) {
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Tabler:
		return v.Table().RenderWithOptions(w, f.NoHeaders)
	}

	table, err := structToTable(data)
	if err != nil {
		return EncodeJSON(w, data)
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

func structToTable(data any) (*Table, error) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return &Table{}, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported type: %s", v.Kind())
	}

	table := &Table{Headers: []string{"FIELD", "VALUE"}}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("table") == "-" {
			continue
		}
		table.AddRow(fieldName(field), FormatValue(v.Field(i).Interface()))
	}
	return table, nil
}

// fieldName prefers the json tag so table and JSON output agree.
func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// FormatValue renders a single cell.
func FormatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case time.Time:
		if v.IsZero() {
			return "-"
		}
		return v.Local().Format("2006-01-02 15:04:05")
	case time.Duration:
		return v.String()
	case bool:
		if v {
			return "yes"
		}
		return "no"
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "-"
		}
		return FormatValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", rv.Len())
	case reflect.Map:
		if rv.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", rv.Len())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", rv.Float())
	default:
		return fmt.Sprint(val)
	}
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
