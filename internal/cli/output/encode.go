package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes data as two-space indented JSON.
func EncodeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// EncodeYAML writes data as YAML. Field names follow the yaml tags.
func EncodeYAML(w io.Writer, data any) (err error) {
	enc := yaml.NewEncoder(w)
	defer func() {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}()
	enc.SetIndent(2)
	return enc.Encode(data)
}
