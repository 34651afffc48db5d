package domain

import (
	"sort"
	"strings"
)

// Combine merges any number of comma-joined sense lists into one canonical
// string: split on commas, trim, drop empties, deduplicate (case-sensitive),
// sort lexicographically, join with ", ". Returns "" when nothing remains.
//
// The operation is commutative and idempotent, which is what makes
// concurrent merge-on-write upserts safe without locking.
func Combine(values ...string) string {
	set := make(map[string]struct{})
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			set[part] = struct{}{}
		}
	}
	if len(set) == 0 {
		return ""
	}
	parts := make([]string, 0, len(set))
	for p := range set {
		parts = append(parts, p)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// MergeSenses consolidates gateway senses for a single word. Records whose
// translation is the UndefinedTranslation sentinel carry no information and
// are dropped before the per-field Combine. An empty translation result
// means the word has no usable senses at all.
func MergeSenses(raws []RawTranslation) (translation, partOfSpeech, gender string) {
	var trs, poss, genders []string
	for _, r := range raws {
		if r.Translation == UndefinedTranslation {
			continue
		}
		trs = append(trs, r.Translation)
		poss = append(poss, r.PartOfSpeech)
		genders = append(genders, r.Gender)
	}
	return Combine(trs...), Combine(poss...), Combine(genders...)
}
