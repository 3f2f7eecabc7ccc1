package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalIndented renders the schema as UTF-8 JSON with 2-space indentation.
// HTML escaping is disabled so non-ASCII characters and URLs survive intact.
func MarshalIndented(schema map[string]any) ([]byte, error) {
	return marshal(schema, "  ")
}

// MarshalMinified renders the schema as compact JSON.
func MarshalMinified(schema map[string]any) ([]byte, error) {
	return marshal(schema, "")
}

func marshal(schema map[string]any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// HTMLScriptTag wraps the schema in a <script type="application/ld+json">
// tag ready for embedding in a page head.
func HTMLScriptTag(schema map[string]any) (string, error) {
	b, err := MarshalIndented(schema)
	if err != nil {
		return "", err
	}
	return "<script type=\"application/ld+json\">\n" + string(b) + "\n</script>", nil
}
