// Package mapping aligns the column headers of two tables.
//
// # Overview
//
// Given a template header list and a source header list, the package scores
// every header pair with a string similarity measure and computes the
// optimal one-to-one assignment with the Kuhn-Munkres algorithm. Callers
// apply a threshold to the per-pair scores to decide which assignments are
// trustworthy enough to use.
//
// The default similarity is a character-bigram edit distance, which handles
// near-identical headers such as 料金（基本） and 料金(基本) well. A custom
// Scorer can be supplied for semantic matching backed by word vectors.
package mapping

// StrSim computes the similarity of two strings on a 0 to 1 scale, where 1
// means identical.
//
// Each string is decomposed into character bigrams with ^ and $ sentinels,
// the bigram sequences are aligned by edit distance, and the score is the
// harmonic-style ratio 2*matches/(len1+len2).
func StrSim(term1, term2 string) float64 {
	u1 := bigrams(term1)
	u2 := bigrams(term2)
	if len(u1) == 0 || len(u2) == 0 {
		return 0
	}
	match := matchSeq(u1, u2, charSubCost)
	return float64(2*match) / float64(len(u1)+len(u2))
}

// WordSim computes the similarity of two word sequences on a 0 to 1 scale.
// Alignment uses the same edit distance as StrSim, but substituting one
// word for another costs (1-StrSim(w1,w2))*2, so near-identical words
// stay aligned instead of being treated as unrelated.
func WordSim(words1, words2 []string) float64 {
	if len(words1) == 0 || len(words2) == 0 {
		return 0
	}
	match := matchSeq(words1, words2, wordSubCost)
	return float64(2*match) / float64(len(words1)+len(words2))
}

// bigrams splits a string into overlapping character bigrams with ^ and $
// boundary sentinels. An empty string yields no bigrams.
func bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	out := make([]string, 0, len(runes)+1)
	out = append(out, "^"+string(runes[0]))
	for i := 1; i < len(runes); i++ {
		out = append(out, string(runes[i-1:i+1]))
	}
	out = append(out, string(runes[len(runes)-1])+"$")
	return out
}

// Alignment costs. Substitution is priced out so the alignment prefers
// insert/delete pairs, which keeps the match count meaningful.
const (
	subCost = 10.0
	delCost = 1.0
	insCost = 1.0
)

func charSubCost(string, string) float64 { return subCost }

func wordSubCost(w1, w2 string) float64 { return (1 - StrSim(w1, w2)) * 2 }

// matchSeq aligns two sequences by edit distance and counts the matched
// elements on the optimal alignment path. The substitution cost of a
// non-equal pair comes from sub.
func matchSeq(list1, list2 []string, sub func(a, b string) float64) int {
	size1 := len(list1)
	size2 := len(list2)

	m := make([][]float64, size2+1)
	for j := range m {
		m[j] = make([]float64, size1+1)
	}
	for i := 1; i <= size1; i++ {
		m[0][i] = float64(i) * delCost
	}
	for j := 1; j <= size2; j++ {
		m[j][0] = float64(j) * insCost
		for i := 1; i <= size1; i++ {
			v1 := m[j][i-1] + delCost
			v2 := m[j-1][i] + insCost
			v3 := m[j-1][i-1]
			if list1[i-1] != list2[j-1] {
				v3 += sub(list1[i-1], list2[j-1])
			}
			m[j][i] = min(v1, v2, v3)
		}
	}

	// Walk the table back and count diagonal steps that kept the cost flat;
	// those are the matched elements.
	match := 0
	i, j := size1, size2
	for i > 0 && j > 0 {
		v1 := m[j][i-1]
		v2 := m[j-1][i-1]
		v3 := m[j-1][i]
		switch {
		case v2 <= v1 && v2 <= v3:
			if m[j-1][i-1] == m[j][i] {
				match++
			}
			i--
			j--
		case v1 <= v3:
			i--
		default:
			j--
		}
	}
	return match
}
