package kmp

// BuildFailureFunction computes the failure function (LPS table) of pattern.
// Entry i holds the length of the longest proper prefix of pattern[:i+1] that is
// also a suffix of it. The result has the same length as pattern; an empty
// pattern yields an empty table.
//
// Time complexity: O(m). The candidate length only grows by one per step and every
// backtrack strictly shrinks it, so total backtracking is bounded by m.
func BuildFailureFunction[T comparable](pattern []T) []int {
	m := len(pattern)
	if m == 0 {
		return []int{}
	}

	lps := make([]int, m)
	length := 0 // length of the current longest prefix-suffix candidate

	for i := 1; i < m; {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
			continue
		}
		if length != 0 {
			// Retry with the next shorter candidate, without advancing i
			length = lps[length-1]
			continue
		}
		lps[i] = 0
		i++
	}

	return lps
}

// FailureFunction is BuildFailureFunction over the bytes of a string.
func FailureFunction(pattern string) []int {
	return BuildFailureFunction(stringBytes(pattern))
}
