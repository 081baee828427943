package coupon

// CategorySet records which coupon claimed each category.
type CategorySet interface {
	// Claim assigns category to coupon. If the category was already claimed
	// it returns the earlier owner and false, leaving the set unchanged.
	Claim(category string, coupon int) (owner int, ok bool)

	// Contains checks if a category has been claimed.
	Contains(category string) bool

	// Size returns the number of claimed categories.
	Size() int
}

// mapCategorySet implements CategorySet using a map for O(1) lookups.
type mapCategorySet struct {
	owners map[string]int
}

// NewCategorySet creates a new map-based category set.
func NewCategorySet(capacity int) CategorySet {
	return &mapCategorySet{
		owners: make(map[string]int, capacity),
	}
}

// Claim assigns category to coupon unless another coupon got there first.
func (s *mapCategorySet) Claim(category string, coupon int) (int, bool) {
	if owner, exists := s.owners[category]; exists {
		return owner, false
	}
	s.owners[category] = coupon
	return coupon, true
}

// Contains checks if a category has been claimed.
func (s *mapCategorySet) Contains(category string) bool {
	_, exists := s.owners[category]
	return exists
}

// Size returns the number of claimed categories.
func (s *mapCategorySet) Size() int {
	return len(s.owners)
}
