package api

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Envelope wraps a raw JSON response body. The REST API nests its primary
// payload under a named key (`jobs`, `job`, `tasks`, `data`, ...) alongside
// pagination fields, so callers pick out what they need by path instead of
// declaring one envelope struct per endpoint.
type Envelope struct {
	body []byte
}

// Raw returns the unparsed response body.
func (e Envelope) Raw() []byte { return e.body }

// Get returns the gjson result at path.
func (e Envelope) Get(path string) gjson.Result {
	return gjson.GetBytes(e.body, path)
}

// Str returns the string value at path, or "" when absent.
func (e Envelope) Str(path string) string {
	return e.Get(path).String()
}

// Int returns the integer value at path, or 0 when absent.
func (e Envelope) Int(path string) int {
	return int(e.Get(path).Int())
}

// Has reports whether a value exists at path.
func (e Envelope) Has(path string) bool {
	return e.Get(path).Exists()
}

// Decode unmarshals the value at path into target. An empty path decodes the
// whole body. A missing path is an error so callers notice envelope drift.
func (e Envelope) Decode(path string, target any) error {
	raw := e.body
	if path != "" {
		result := e.Get(path)
		if !result.Exists() {
			return fmt.Errorf("api: response has no %q field", path)
		}
		raw = []byte(result.Raw)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("api: failed to decode response: %w", err)
	}
	return nil
}
