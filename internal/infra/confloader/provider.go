package confloader

import (
	"errors"
	"strings"
)

// ErrReadBytesNotSupported is what overrides returns from ReadBytes; koanf
// falls back to Read when the parser is nil.
var ErrReadBytesNotSupported = errors.New("confloader: overrides have no byte form")

// overrides is a koanf provider over dotted keys such as
// "server.http.addr". Blank strings are dropped so an unset flag never
// hides a value from the file or the environment.
type overrides map[string]any

func (o overrides) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (o overrides) Read() (map[string]any, error) {
	tree := make(map[string]any)
	for key, v := range o {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		node := tree
		path := strings.Split(key, ".")
		for _, seg := range path[:len(path)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[path[len(path)-1]] = v
	}
	return tree, nil
}
