package typo

import "sort"

// Edit is an accepted replacement with offsets absolute in the source file.
type Edit struct {
	Kind        Kind
	Start       uint32
	End         uint32 // exclusive
	Replacement string
}

// Resolve rebases candidates by baseOffset, orders them by start position,
// and drops any candidate overlapping a previously accepted one. The sweep
// is greedy earliest-first: on a collision the earlier candidate wins, and
// among candidates at the same start the one emitted first wins (stable
// sort). The losing interpretation is discarded silently.
func Resolve(candidates []Candidate, baseOffset uint32) []Edit {
	if len(candidates) == 0 {
		return nil
	}

	edits := make([]Edit, 0, len(candidates))
	for _, c := range candidates {
		edits = append(edits, Edit{
			Kind:        c.Kind,
			Start:       baseOffset + c.Start,
			End:         baseOffset + c.End,
			Replacement: c.Replacement,
		})
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Start < edits[j].Start
	})

	out := edits[:0]
	var lastEnd uint32
	for _, e := range edits {
		if len(out) > 0 && e.Start < lastEnd {
			continue
		}
		out = append(out, e)
		lastEnd = e.End
	}
	return out
}
