package search

import "math"

// Ratio returns the normalized indel similarity of a and b in [0, 100].
// Two empty strings are identical and score 100.
func Ratio(a, b string) int {
	return roundScore(ratio([]rune(a), []rune(b)))
}

// PartialRatio returns the similarity in [0, 100] between the shorter of a and b
// and the best-aligned substring of the longer one.
//
// Every window of the longer string with the length of the shorter one is scored
// with the indel ratio, as are the windows hanging off either end (shorter prefixes
// and suffixes). The best window wins. A string contained verbatim in the other
// scores 100. An empty string scores 0 against a non-empty one.
//
// Scores are computed over runes and rounded half to even.
func PartialRatio(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 || len(s2) == 0 {
		if len(s1) == len(s2) {
			return 100
		}
		return 0
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	best := partialRatio(s1, s2)
	if len(s1) == len(s2) && best < 100 {
		best = max(best, partialRatio(s2, s1))
	}
	return roundScore(best)
}

// partialRatio slides needle across haystack; len(needle) <= len(haystack).
func partialRatio(needle, haystack []rune) float64 {
	m, n := len(needle), len(haystack)

	chars := make(map[rune]struct{}, m)
	for _, r := range needle {
		chars[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := chars[r]
		return ok
	}

	best := 0.0
	consider := func(window []rune) bool {
		if s := ratio(needle, window); s > best {
			best = s
		}
		return best == 100
	}

	// Windows hanging off the left edge. Only worth scoring when the last
	// character can take part in an alignment.
	for k := 1; k < m; k++ {
		if has(haystack[k-1]) && consider(haystack[:k]) {
			return best
		}
	}

	// Full-length windows.
	for i := 0; i <= n-m; i++ {
		if has(haystack[i]) && consider(haystack[i:i+m]) {
			return best
		}
	}

	// Windows hanging off the right edge.
	for i := n - m + 1; i < n; i++ {
		if has(haystack[i]) && consider(haystack[i:]) {
			return best
		}
	}

	return best
}

// ratio is the unrounded indel similarity: 100 * (1 - dist / (len(a)+len(b))).
func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcsLength(a, b)
	return 100 * (1 - float64(dist)/float64(total))
}

// lcsLength returns the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func roundScore(score float64) int {
	return int(math.RoundToEven(score))
}
