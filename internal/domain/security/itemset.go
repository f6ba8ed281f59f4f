package security

import (
	"github.com/gatesec/backend/internal/domain/shared"
)

// ItemSet is the ordered, de-duplicated set of subject IDs covered by a
// single ledger record. Order of first appearance is preserved so the
// stored ID list lines up with the stored name list.
type ItemSet []int64

// NewItemSet builds an item set from raw IDs, dropping duplicates while
// keeping first-appearance order. An empty input is rejected.
func NewItemSet(ids []int64) (ItemSet, error) {
	if len(ids) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "At least one item is required")
	}

	seen := make(map[int64]struct{}, len(ids))
	set := make(ItemSet, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, shared.NewDomainError("INVALID_ITEMS", "Item IDs must be positive")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		set = append(set, id)
	}
	return set, nil
}

// Contains reports whether the set holds the given ID
func (s ItemSet) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Overlaps reports whether the two sets share at least one ID
func (s ItemSet) Overlaps(other ItemSet) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	index := make(map[int64]struct{}, len(s))
	for _, v := range s {
		index[v] = struct{}{}
	}
	for _, v := range other {
		if _, ok := index[v]; ok {
			return true
		}
	}
	return false
}

// Equals reports whether both sets hold the same IDs in the same order
func (s ItemSet) Equals(other ItemSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i, v := range s {
		if v != other[i] {
			return false
		}
	}
	return true
}
