package bench

import "strings"

// DefaultAdversarialPattern is a pattern whose every alignment against a run of
// 'A' fails on the last symbol.
var DefaultAdversarialPattern = strings.Repeat("A", 31) + "B"

// insertEvery is the spacing of pattern occurrences in generated text.
const insertEvery = 100

// GenerateText builds text of at least size bytes from "abc " filler, inserting
// pattern followed by a space each time the length reaches the next multiple of 100.
func GenerateText(size int, pattern string) string {
	var sb strings.Builder
	sb.Grow(size + len(pattern) + 4)
	next := insertEvery
	for sb.Len() < size {
		if sb.Len() >= next {
			sb.WriteString(pattern)
			sb.WriteByte(' ')
			next += insertEvery
		} else {
			sb.WriteString("abc ")
		}
	}
	return sb.String()
}

// GenerateAdversarial returns size copies of the pattern's first byte. Against a
// pattern like DefaultAdversarialPattern this forces a naive scan into
// O(n*m) comparisons while KMP stays linear.
func GenerateAdversarial(size int, pattern string) string {
	if size <= 0 || pattern == "" {
		return ""
	}
	return strings.Repeat(pattern[:1], size)
}
