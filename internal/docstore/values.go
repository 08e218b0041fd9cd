package docstore

import (
	"reflect"
	"time"
)

// normalizeValue collapses Go's numeric and slice variety into the handful of types the
// stores keep: int64, float64, string, bool, time.Time (UTC), []any and nil.
func normalizeValue(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case int:
		return int64(tv)
	case int8:
		return int64(tv)
	case int16:
		return int64(tv)
	case int32:
		return int64(tv)
	case int64:
		return tv
	case uint:
		return int64(tv)
	case uint8:
		return int64(tv)
	case uint16:
		return int64(tv)
	case uint32:
		return int64(tv)
	case uint64:
		return int64(tv)
	case float32:
		return float64(tv)
	case float64, string, bool:
		return tv
	case time.Time:
		return tv.UTC()
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = normalizeValue(e)
		}
		return out
	case []string:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = e
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalizeValue(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// normalizeFields copies fields, normalizing every value and resolving ServerTimestamp to now.
func normalizeFields(fields Fields, now time.Time) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = now.UTC()
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

// copyFields returns a copy of fields that shares no slices with the original.
func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if arr, ok := v.([]any); ok {
			cp := make([]any, len(arr))
			copy(cp, arr)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

func toInt64(v any) (int64, bool) {
	switch tv := normalizeValue(v).(type) {
	case int64:
		return tv, true
	case float64:
		return int64(tv), true
	}
	return 0, false
}

func containsValue(arr []any, v any) bool {
	for _, e := range arr {
		if c, ok := compareValues(e, v); ok && c == 0 {
			return true
		}
	}
	return false
}

// applyOp mutates fields in place according to op. Callers hold whatever lock makes it atomic.
func applyOp(fields Fields, field string, op FieldOp) {
	switch op.Kind {
	case OpSet:
		fields[field] = normalizeValue(op.Value)
	case OpIncrement:
		delta, _ := toInt64(op.Value)
		current, _ := toInt64(fields[field])
		fields[field] = current + delta
	case OpAppendUnique:
		value := normalizeValue(op.Value)
		arr, _ := fields[field].([]any)
		if containsValue(arr, value) {
			return
		}
		next := make([]any, len(arr), len(arr)+1)
		copy(next, arr)
		fields[field] = append(next, value)
	}
}
