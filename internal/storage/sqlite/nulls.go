// ABOUTME: Helpers for binding optional fields as SQL NULLs
// ABOUTME: Empty strings and nil pointers are stored as NULL, not zero values
package sqlite

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullInt64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func intPtr(n int64, valid bool) *int {
	if !valid {
		return nil
	}
	v := int(n)
	return &v
}

func floatPtr(f float64, valid bool) *float64 {
	if !valid {
		return nil
	}
	return &f
}

func int64Ptr(n int64, valid bool) *int64 {
	if !valid {
		return nil
	}
	return &n
}
