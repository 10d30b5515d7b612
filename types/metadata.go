package types

import (
	"fmt"
	"strconv"
)

// Metadata is the string-to-string key/value set carried by every mocked
// object, echoing what the caller supplied at create or update time.
type Metadata map[string]string

// StringifyMetadata coerces arbitrary metadata values to strings, mirroring
// the real API's metadata contract: the service stores and returns every
// value as a string regardless of the type the caller sent.
func StringifyMetadata(raw map[string]any) Metadata {
	if raw == nil {
		return Metadata{}
	}

	out := make(Metadata, len(raw))
	for k, v := range raw {
		out[k] = stringify(v)
	}

	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0" so round-trips stay stable.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Clone returns a copy of the metadata so stored entities never alias
// caller-owned maps.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}

	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
