package lint

import (
	"sort"
)

// ApplyFixes splices fixes into content. Fixes are taken in order of their
// start offset; a fix overlapping one already accepted is skipped and left
// for a later pass. It returns the new content and the number of fixes applied.
func ApplyFixes(content []byte, fixes []Fix) ([]byte, int) {
	if len(fixes) == 0 {
		return content, 0
	}

	sorted := make([]Fix, len(fixes))
	copy(sorted, fixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	accepted := make([]Fix, 0, len(sorted))
	lastEnd := -1
	for _, f := range sorted {
		if f.Start < 0 || f.End > len(content) || f.End < f.Start {
			continue
		}
		if f.Start < lastEnd {
			continue
		}
		accepted = append(accepted, f)
		lastEnd = f.End
	}

	// Apply from end to beginning so earlier offsets stay valid
	result := make([]byte, len(content))
	copy(result, content)
	for i := len(accepted) - 1; i >= 0; i-- {
		f := accepted[i]
		tail := append([]byte(f.Text), result[f.End:]...)
		result = append(result[:f.Start], tail...)
	}

	return result, len(accepted)
}
