package documents

import (
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/blueprint/pkg/errors"
)

// Parse decodes a document body. JSON and YAML are both accepted; JSON is a
// YAML subset, so a single decoder covers every supported extension. The
// returned map is nil when the input is empty.
func Parse(name string, data []byte) (map[string]any, error) {
	var body map[string]any
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, errors.WrapParse(Format(name), name, err)
	}
	return body, nil
}

// Format reports the wire format implied by a file name's extension,
// defaulting to "json".
func Format(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
