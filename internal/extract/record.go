package extract

import "strconv"

// Str returns the value under key as a string. Numbers are formatted;
// other types yield "".
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Bool returns the value under key as a bool, defaulting to false.
func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Int returns the value under key as an int, or def when absent or
// not numeric.
func (r Record) Int(key string, def int) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Strings coerces the value under key to a string list: a bare string
// becomes a one-element list, anything else yields an empty list.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
}

// Records returns the value under key as a list of nested records,
// skipping entries that are not objects.
func (r Record) Records(key string) []Record {
	list, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
