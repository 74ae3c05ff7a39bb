package convertor

// Reorder removes one column and inserts a value, producing a new slice.
//
// delIdx is the column to remove, or -1 for none. When the removed column
// sits before the insertion point the insertion point shifts left by one,
// so positions are interpreted against the original row. A negative or
// out-of-range insertion point appends.
func Reorder(original []string, delIdx, insertIdx int, value string) []string {
	out := make([]string, 0, len(original)+1)
	out = append(out, original...)
	if delIdx >= 0 && delIdx < len(out) {
		out = append(out[:delIdx], out[delIdx+1:]...)
		if delIdx < insertIdx {
			insertIdx--
		}
	}
	if insertIdx < 0 || insertIdx > len(out) {
		return append(out, value)
	}
	out = append(out, "")
	copy(out[insertIdx+1:], out[insertIdx:])
	out[insertIdx] = value
	return out
}

// ReorderMulti removes several columns and inserts a run of values.
//
// deleteIdxs entries of -1 are skipped. The indexes must already be adjusted
// for sequential deletion (see AdjustDeleteIndexes); each entry is applied
// against the shrinking slice. The insertion point is clamped to the slice
// bounds.
func ReorderMulti(original []string, deleteIdxs []int, insertIdx int, values []string) []string {
	out := make([]string, 0, len(original)+len(values))
	out = append(out, original...)
	for _, delIdx := range deleteIdxs {
		if delIdx < 0 || delIdx >= len(out) {
			continue
		}
		out = append(out[:delIdx], out[delIdx+1:]...)
	}
	if insertIdx < 0 || insertIdx > len(out) {
		insertIdx = len(out)
	}
	result := make([]string, 0, len(out)+len(values))
	result = append(result, out[:insertIdx]...)
	result = append(result, values...)
	result = append(result, out[insertIdx:]...)
	return result
}

// AdjustDeleteIndexes rewrites a list of delete positions (taken against the
// original row, -1 for none) so they can be applied one by one, and shifts
// the insertion point left for every deletion before it.
//
// The result does not depend on the order deletions are listed in: each
// deletion decrements only the later entries that point past it.
func AdjustDeleteIndexes(oldIdxs []int, insertIdx int) ([]int, int) {
	adjusted := make([]int, len(oldIdxs))
	copy(adjusted, oldIdxs)
	for i, delIdx := range adjusted {
		if delIdx < 0 {
			continue
		}
		if delIdx < insertIdx {
			insertIdx--
		}
		for j := i + 1; j < len(adjusted); j++ {
			if adjusted[j] >= 0 && delIdx < adjusted[j] {
				adjusted[j]--
			}
		}
	}
	return adjusted, insertIdx
}
