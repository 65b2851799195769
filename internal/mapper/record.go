package mapper

import "fmt"

// As extracts a typed field from a record. A missing or mistyped field is a
// defect in the mapping spec, not in the input data.
func As[T any](rec Record, key string) (T, error) {
	var zero T
	value, ok := rec[key]
	if !ok {
		return zero, fmt.Errorf("mapper: record has no field %q", key)
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("mapper: record field %q is %T, want %T", key, value, zero)
	}
	return typed, nil
}
