package codec

import "encoding/json"

// JSON is the standard-library JSON codec.
//
// Notes:
// - JSON is stable and portable across languages and Go versions.
// - Works for typical structs/maps/slices; funcs and channels are unsupported.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used by snapshots when none is configured.
var Default Codec = JSON{}
