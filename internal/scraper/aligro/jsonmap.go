package aligro

// Safe navigation over the dynamically shaped listing JSON. Every
// lookup tolerates absent keys and mismatched types so each field
// stays independently nullable.

// digMap walks nested objects and returns the object at the end of the
// key path, or nil
func digMap(m map[string]any, keys ...string) map[string]any {
	current := m
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// digString returns the string at the end of the key path
func digString(m map[string]any, keys ...string) (string, bool) {
	parent := digMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return "", false
	}
	value, ok := parent[keys[len(keys)-1]].(string)
	return value, ok
}

// digFloat returns the number at the end of the key path
func digFloat(m map[string]any, keys ...string) (float64, bool) {
	parent := digMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return 0, false
	}
	value, ok := parent[keys[len(keys)-1]].(float64)
	return value, ok
}

// digList returns the array at the end of the key path
func digList(m map[string]any, keys ...string) []any {
	parent := digMap(m, keys[:len(keys)-1]...)
	if parent == nil {
		return nil
	}
	value, _ := parent[keys[len(keys)-1]].([]any)
	return value
}

func ptr(s string) *string {
	return &s
}
