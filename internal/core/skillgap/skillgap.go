// Package skillgap compares the skills a project requires against the skills
// present across the engineer population.
package skillgap

type Gap struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// Compute partitions required into skills found in pool and skills absent
// from it. Order and duplicates of required are preserved; both slices are
// non-nil.
func Compute(required, pool []string) Gap {
	have := make(map[string]struct{}, len(pool))
	for _, s := range pool {
		have[s] = struct{}{}
	}

	gap := Gap{Matched: []string{}, Missing: []string{}}
	for _, s := range required {
		if _, ok := have[s]; ok {
			gap.Matched = append(gap.Matched, s)
		} else {
			gap.Missing = append(gap.Missing, s)
		}
	}
	return gap
}

// PoolSkills flattens per-engineer skill lists into one list in first-seen
// order without repeats.
func PoolSkills(skillSets ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, set := range skillSets {
		for _, s := range set {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
