package kernel

import (
	"sort"
	"strings"

	"resto/internal/pkg/errs"
)

// ErrBranchSetIsEmpty is returned when an aggregate requires at least one branch.
var ErrBranchSetIsEmpty = errs.NewValueIsRequiredError("branch set must contain at least one branch")

// BranchSet is an immutable, normalized set of branch identifiers.
//
// Records written before branch sets were introduced carry a single scalar
// branch id; NewBranchSet accepts both shapes, so the read path always ends up
// with one canonical representation: trimmed, deduplicated, sorted.
//
// A BranchSet may be empty. Aggregates that require membership in at least one
// branch enforce that through Validate; an access scope deliberately uses the
// empty set to mean "sees nothing".
type BranchSet struct {
	ids []string
}

// NewBranchSet builds a normalized branch set from the given identifiers.
// Blank entries are dropped, duplicates collapsed, and the result sorted.
func NewBranchSet(ids ...string) BranchSet {
	seen := make(map[string]struct{}, len(ids))
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}
	sort.Strings(normalized)

	return BranchSet{ids: normalized}
}

// Validate returns ErrBranchSetIsEmpty when the set holds no branches.
func (b BranchSet) Validate() error {
	if len(b.ids) == 0 {
		return ErrBranchSetIsEmpty
	}
	return nil
}

// IDs returns a copy of the branch identifiers in sorted order.
func (b BranchSet) IDs() []string {
	out := make([]string, len(b.ids))
	copy(out, b.ids)
	return out
}

// IsEmpty reports whether the set holds no branches.
func (b BranchSet) IsEmpty() bool {
	return len(b.ids) == 0
}

// Contains reports whether the set includes the given branch id.
func (b BranchSet) Contains(id string) bool {
	for _, v := range b.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one branch.
func (b BranchSet) Intersects(other BranchSet) bool {
	for _, v := range b.ids {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

// IsEqual reports whether both sets hold exactly the same branches.
func (b BranchSet) IsEqual(other BranchSet) bool {
	if len(b.ids) != len(other.ids) {
		return false
	}
	for i, v := range b.ids {
		if other.ids[i] != v {
			return false
		}
	}
	return true
}
