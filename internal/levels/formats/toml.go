package formats

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ParseTOML parses a TOML layout pack. TOML files always use the
// [[layouts]] table array.
func ParseTOML(data []byte) (Pack, error) {
	var p Pack
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return Pack{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Pack{}, fmt.Errorf("toml: unknown key %s", undecoded[0])
	}
	if len(p.Layouts) == 0 {
		return Pack{}, fmt.Errorf("toml: no layouts")
	}
	return p, nil
}

// MarshalTOML encodes a pack as TOML.
func MarshalTOML(p Pack) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("toml encode: %w", err)
	}
	return buf.Bytes(), nil
}
