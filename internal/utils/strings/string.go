package strings

func Pluralize(singular, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Closest returns the candidate with the smallest edit distance to name, or
// "" when nothing is close enough to be a plausible typo. The threshold
// scales with the name length so short names only match near-exact typos.
func Closest(name string, candidates []string) string {
	if len(name) == 0 {
		return ""
	}
	threshold := 1 + len(name)/3
	best := ""
	bestDist := threshold + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := editDistance(name, c)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	if bestDist > threshold {
		return ""
	}
	return best
}

// editDistance is the Levenshtein distance over bytes, two-row variant.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
