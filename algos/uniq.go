package algos

// UniqBy drops every element whose key was already seen, keeping the first
// occurrence and the original order. The input is not modified.
func UniqBy[T any, K comparable](s []T, key func(T) K) []T {
	if len(s) == 0 {
		return nil
	}
	seen := make(map[K]bool, len(s))
	result := make([]T, 0, len(s))
	for _, v := range s {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, v)
	}
	return result
}
