package docstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// typedValue keeps a field's type next to its JSON encoding so times and integers survive
// a round trip through a text column.
type typedValue struct {
	T string          `json:"t"`
	V json.RawMessage `json:"v,omitempty"`
}

func encodeFields(fields Fields) (string, error) {
	out := make(map[string]typedValue, len(fields))
	for k, v := range fields {
		tv, err := encodeValue(v)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = tv
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeFields(data string) (Fields, error) {
	var raw map[string]typedValue
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, err
	}
	fields := make(Fields, len(raw))
	for k, tv := range raw {
		v, err := decodeValue(tv)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = v
	}
	return fields, nil
}

func encodeValue(v any) (typedValue, error) {
	var kind string
	var payload any
	switch tv := normalizeValue(v).(type) {
	case nil:
		return typedValue{T: "null"}, nil
	case string:
		kind, payload = "string", tv
	case int64:
		kind, payload = "int", tv
	case float64:
		kind, payload = "float", tv
	case bool:
		kind, payload = "bool", tv
	case time.Time:
		kind, payload = "time", tv.Format(time.RFC3339Nano)
	case []any:
		elems := make([]typedValue, len(tv))
		for i, e := range tv {
			enc, err := encodeValue(e)
			if err != nil {
				return typedValue{}, err
			}
			elems[i] = enc
		}
		kind, payload = "array", elems
	default:
		kind, payload = "json", tv
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return typedValue{}, err
	}
	return typedValue{T: kind, V: b}, nil
}

func decodeValue(tv typedValue) (any, error) {
	switch tv.T {
	case "null":
		return nil, nil
	case "string":
		var s string
		err := json.Unmarshal(tv.V, &s)
		return s, err
	case "int":
		var n int64
		err := json.Unmarshal(tv.V, &n)
		return n, err
	case "float":
		var f float64
		err := json.Unmarshal(tv.V, &f)
		return f, err
	case "bool":
		var b bool
		err := json.Unmarshal(tv.V, &b)
		return b, err
	case "time":
		var s string
		if err := json.Unmarshal(tv.V, &s); err != nil {
			return nil, err
		}
		return time.Parse(time.RFC3339Nano, s)
	case "array":
		var elems []typedValue
		if err := json.Unmarshal(tv.V, &elems); err != nil {
			return nil, err
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			v, err := decodeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case "json":
		var v any
		err := json.Unmarshal(tv.V, &v)
		return v, err
	}
	return nil, fmt.Errorf("unknown value type %q", tv.T)
}
