package dto

// put adds a field to a merge payload only when the client actually sent
// it, so omitted fields survive the upsert untouched.
func put[T any](fields map[string]interface{}, key string, value *T) {
	if value != nil {
		fields[key] = *value
	}
}
