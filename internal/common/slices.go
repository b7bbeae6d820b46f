package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// ConcatMap applies fn to every element of s and concatenates the results in order.
// Elements may map to zero, one or many results.
func ConcatMap[S ~[]E, E any, R any](s S, fn func(E) []R) []R {
	var out []R

	for _, e := range s {
		out = append(out, fn(e)...)
	}

	return out
}

// Partition splits s into the elements for which pred holds and those for which it does not.
// Both results keep the relative order of s.
func Partition[S ~[]E, E any](s S, pred func(E) bool) (yes, no S) {
	for _, e := range s {
		if pred(e) {
			yes = append(yes, e)
		} else {
			no = append(no, e)
		}
	}

	return yes, no
}
