// Package codec centralizes the text serialization of stored entries.
//
// The codec output is what the storage drivers compress and persist, so
// codec selection is a breaking-change boundary: entries written with
// one codec may not decode under another. Both built-in codecs emit
// standard JSON and are interchangeable for typical payloads.
package codec

// Codec encodes and decodes entry values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Storage configuration refers to codecs by name; unknown names are
// rejected at open time.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when configuration names none.
var Default Codec = GoJSON{}
