package community

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("community not found")

// CategoryAll is the sentinel category that matches every community.
const CategoryAll = "all"

// DefaultCategories is used when COMMUNITY_CATEGORIES is not configured.
// The taxonomy is configuration data, not a closed Go enum.
var DefaultCategories = []string{"emotion", "lifestyle", "work", "health", "hobby"}

type Community struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Category      string
	Tags          []string
	MemberCount   int
	ActiveMembers int
	TodayPosts    int
	WeeklyGrowth  int
	IsPrivate     bool
	OwnerID       uuid.UUID

	// Derived per-request relative to the current user.
	IsJoined bool
	IsOwner  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CategorySet map[string]struct{}

func NewCategorySet(names []string) CategorySet {
	s := make(CategorySet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

func (s CategorySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
