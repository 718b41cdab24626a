package matching

import (
	"math"
	"sort"
	"strings"

	"diary-rooms/internal/domain/community"
)

// StrongMatchThreshold is the score above which callers surface a
// "strong match" badge. It belongs to the contract with the presentation
// layer, not to the scoring itself.
const StrongMatchThreshold = 60

type Ranked struct {
	community.Community
	MatchScore int
}

// Score returns the tag overlap between a community and a user as an
// integer percentage in [0,100]. The denominator is max(|A|,|B|), not the
// union size: with partially overlapping sets of different sizes this
// ranks differently from a Jaccard index, and that ordering is the
// contract.
func Score(communityTags, userTags []string) int {
	a := toSet(communityTags)
	b := toSet(userTags)

	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	if denom == 0 {
		return 0
	}

	common := 0
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}

	return int(math.Round(100 * float64(common) / float64(denom)))
}

// Recommend attaches a match score to every community in the catalog and
// orders the result by score, highest first. Ties keep the catalog's
// relative order. A limit <= 0 means unbounded.
func Recommend(catalog []community.Community, userTags []string, limit int) []Ranked {
	out := make([]Ranked, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, Ranked{Community: c, MatchScore: Score(c.Tags, userTags)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Trending orders not-yet-joined communities by weekly growth, member
// count breaking ties. A limit <= 0 means unbounded.
func Trending(catalog []community.Community, limit int) []community.Community {
	out := make([]community.Community, 0, len(catalog))
	for _, c := range catalog {
		if c.IsJoined {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WeeklyGrowth != out[j].WeeklyGrowth {
			return out[i].WeeklyGrowth > out[j].WeeklyGrowth
		}
		return out[i].MemberCount > out[j].MemberCount
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Filter keeps communities matching both the category constraint and the
// free-text query. The "all" sentinel and categories outside the known
// taxonomy match everything. An empty query with category "all" is the
// identity filter.
func Filter(catalog []community.Community, category, query string, known community.CategorySet) []community.Community {
	byCategory := category != "" && category != community.CategoryAll && known.Contains(category)
	query = strings.ToLower(strings.TrimSpace(query))

	if !byCategory && query == "" {
		return catalog
	}

	out := make([]community.Community, 0, len(catalog))
	for _, c := range catalog {
		if byCategory && c.Category != category {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesQuery(c community.Community, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func toSet(tags []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		s[t] = struct{}{}
	}
	return s
}
