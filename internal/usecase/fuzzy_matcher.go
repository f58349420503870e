package usecase

import (
	"math"
	"sort"
	"strings"
)

// Ratio computes full-string similarity on a 0-100 scale from the
// normalized edit distance: 100 * (lenA + lenB - dist) / (lenA + lenB).
// Two empty strings are fully similar.
func Ratio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := levenshteinDistance(a, b)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// PartialRatio computes substring similarity: the shorter string is
// compared against every same-length window of the longer one and the
// best window ratio wins. "lavande" scores 100 against "lavande vraie".
func PartialRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}
	if len(ra) == len(rb) {
		return Ratio(string(ra), string(rb))
	}

	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		if r := Ratio(string(ra), window); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares the two strings with their tokens sorted,
// making the score independent of word order.
func TokenSortRatio(a, b string) int {
	return Ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// BestMatch finds the candidate most similar to target. Per candidate the
// full, partial and token-sort ratios are computed on lower-cased trimmed
// input and the highest of the three is kept. The best-scoring candidate
// is returned when it reaches the threshold; on ties the earliest
// candidate wins.
func BestMatch(target string, candidates []string, threshold int) (string, int, bool) {
	if target == "" || len(candidates) == 0 {
		return "", 0, false
	}

	targetClean := strings.ToLower(strings.TrimSpace(target))
	bestScore := 0
	bestCandidate := ""

	for _, candidate := range candidates {
		candidateClean := strings.ToLower(strings.TrimSpace(candidate))

		score := Ratio(targetClean, candidateClean)
		if partial := PartialRatio(targetClean, candidateClean); partial > score {
			score = partial
		}
		if tokenSort := TokenSortRatio(targetClean, candidateClean); tokenSort > score {
			score = tokenSort
		}

		if score > bestScore {
			bestScore = score
			bestCandidate = candidate
		}
	}

	if bestScore < threshold || bestCandidate == "" {
		return "", 0, false
	}
	return bestCandidate, bestScore, true
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
