package schema

// pruneMap recursively removes keys whose value is an empty string, empty
// slice, empty map, or nil. Pruning runs depth-first so a nested object
// left empty after pruning is itself removed.
func pruneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if pv, keep := pruneValue(v); keep {
			out[k] = pv
		}
	}
	return out
}

func pruneValue(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if t == "" {
			return nil, false
		}
		return t, true
	case map[string]any:
		p := pruneMap(t)
		if len(p) == 0 {
			return nil, false
		}
		return p, true
	case []any:
		var out []any
		for _, item := range t {
			if pv, keep := pruneValue(item); keep {
				out = append(out, pv)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []string:
		var out []any
		for _, item := range t {
			if item != "" {
				out = append(out, item)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		// Numbers and booleans are kept as-is, including zeroes.
		return v, true
	}
}
