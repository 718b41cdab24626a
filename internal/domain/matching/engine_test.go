package matching

import (
	"testing"

	"diary-rooms/internal/domain/community"

	"github.com/google/uuid"
)

func TestScore_Bounds(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
	}{
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}},
		{"identical", []string{"a", "b"}, []string{"a", "b"}},
		{"subset", []string{"a", "b", "c", "d", "e"}, []string{"a"}},
		{"empty community", nil, []string{"a", "b"}},
		{"empty user", []string{"a", "b"}, nil},
		{"duplicates", []string{"a", "a", "b"}, []string{"a", "a"}},
	}
	for _, tc := range cases {
		got := Score(tc.a, tc.b)
		if got < 0 || got > 100 {
			t.Errorf("%s: score %d out of [0,100]", tc.name, got)
		}
	}
}

func TestScore_ZeroGuard(t *testing.T) {
	if got := Score(nil, nil); got != 0 {
		t.Fatalf("expected 0 for two empty tag sets, got %d", got)
	}
	if got := Score([]string{}, []string{}); got != 0 {
		t.Fatalf("expected 0 for two empty tag sets, got %d", got)
	}
}

func TestScore_MaxDenominator(t *testing.T) {
	// round(100 * 1/3) with |A|=3, |B|=1.
	if got := Score([]string{"a", "b", "c"}, []string{"a"}); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	// Symmetric in arguments: denominator is the larger set either way.
	if got := Score([]string{"a"}, []string{"a", "b", "c"}); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestScore_ExactMatch(t *testing.T) {
	if got := Score([]string{"a", "b"}, []string{"b", "a"}); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScore_IgnoresDuplicatesAndBlanks(t *testing.T) {
	if got := Score([]string{"a", "a", "", "b"}, []string{"a", " "}); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func room(name string, tags []string) community.Community {
	return community.Community{ID: uuid.New(), Name: name, Tags: tags}
}

func TestRecommend_SortedDescending(t *testing.T) {
	catalog := []community.Community{
		room("one", []string{"a", "b", "c", "d", "e"}), // 20
		room("two", []string{"a"}),                     // 100
		room("three", []string{"a", "b", "c"}),         // 33
		room("four", []string{"x", "y"}),               // 0
		room("five", []string{"a", "b"}),               // 50
	}

	got := Recommend(catalog, []string{"a"}, 0)
	if len(got) != 5 {
		t.Fatalf("expected 5 results, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].MatchScore > got[i-1].MatchScore {
			t.Fatalf("not descending at %d: %d > %d", i, got[i].MatchScore, got[i-1].MatchScore)
		}
	}
	if got[0].Name != "two" || got[0].MatchScore != 100 {
		t.Fatalf("expected 'two' first with 100, got %s/%d", got[0].Name, got[0].MatchScore)
	}
}

func TestRecommend_TiesKeepCatalogOrder(t *testing.T) {
	catalog := []community.Community{
		room("first", []string{"a", "x"}),  // 50
		room("second", []string{"a", "y"}), // 50
		room("third", []string{"a"}),       // 100
	}

	got := Recommend(catalog, []string{"a"}, 0)
	if got[0].Name != "third" {
		t.Fatalf("expected 'third' first, got %s", got[0].Name)
	}
	if got[1].Name != "first" || got[2].Name != "second" {
		t.Fatalf("tied rooms reordered: %s, %s", got[1].Name, got[2].Name)
	}
}

func TestRecommend_Limit(t *testing.T) {
	catalog := make([]community.Community, 0, 6)
	for i := 0; i < 6; i++ {
		catalog = append(catalog, room("r", []string{"a"}))
	}
	if got := Recommend(catalog, []string{"a"}, 4); len(got) != 4 {
		t.Fatalf("expected 4, got %d", len(got))
	}
}

func TestTrending_ExcludesJoinedAndSortsByGrowth(t *testing.T) {
	joined := room("joined", nil)
	joined.IsJoined = true
	joined.WeeklyGrowth = 99

	a := room("a", nil)
	a.WeeklyGrowth = 5
	a.MemberCount = 10
	b := room("b", nil)
	b.WeeklyGrowth = 20
	b.MemberCount = 5

	got := Trending([]community.Community{joined, a, b}, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, c := range got {
		if c.IsJoined {
			t.Fatalf("joined room %q leaked into trending", c.Name)
		}
	}
	if got[0].Name != "b" || got[1].Name != "a" {
		t.Fatalf("expected b before a, got %s, %s", got[0].Name, got[1].Name)
	}
}

func TestTrending_MemberCountBreaksTies(t *testing.T) {
	a := room("small", nil)
	a.WeeklyGrowth = 10
	a.MemberCount = 3
	b := room("big", nil)
	b.WeeklyGrowth = 10
	b.MemberCount = 30

	got := Trending([]community.Community{a, b}, 0)
	if got[0].Name != "big" {
		t.Fatalf("expected 'big' first on member-count tiebreak, got %s", got[0].Name)
	}
}

func testCategories() community.CategorySet {
	return community.NewCategorySet(community.DefaultCategories)
}

func TestFilter_Identity(t *testing.T) {
	catalog := []community.Community{room("x", nil), room("y", nil), room("z", nil)}
	got := Filter(catalog, community.CategoryAll, "", testCategories())
	if len(got) != len(catalog) {
		t.Fatalf("identity filter changed length: %d", len(got))
	}
	for i := range got {
		if got[i].ID != catalog[i].ID {
			t.Fatalf("identity filter changed order at %d", i)
		}
	}
}

func TestFilter_CaseInsensitiveQuery(t *testing.T) {
	catalog := []community.Community{
		{Name: "Healthy Life", Description: "daily habits"},
		{Name: "Work Diary", Description: "office life"},
		{Name: "Hobby Corner", Tags: []string{"Drawing", "health-walks"}},
	}

	got := Filter(catalog, community.CategoryAll, "health", testCategories())
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Healthy Life" || got[1].Name != "Hobby Corner" {
		t.Fatalf("unexpected matches: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	catalog := []community.Community{
		{Name: "a", Category: "health"},
		{Name: "b", Category: "hobby"},
	}

	got := Filter(catalog, "health", "", testCategories())
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("expected only 'a', got %d results", len(got))
	}
}

func TestFilter_UnknownCategoryMatchesEverything(t *testing.T) {
	catalog := []community.Community{
		{Name: "a", Category: "health"},
		{Name: "b", Category: "hobby"},
	}

	got := Filter(catalog, "astrology", "", testCategories())
	if len(got) != 2 {
		t.Fatalf("unknown category should be a no-op filter, got %d results", len(got))
	}
}

func TestFilter_ConstraintsAreANDed(t *testing.T) {
	catalog := []community.Community{
		{Name: "Morning Pages", Category: "health"},
		{Name: "Morning Run", Category: "hobby"},
	}

	got := Filter(catalog, "hobby", "morning", testCategories())
	if len(got) != 1 || got[0].Name != "Morning Run" {
		t.Fatalf("expected only 'Morning Run', got %d results", len(got))
	}
}

func TestRecommendAndTrending_EndToEnd(t *testing.T) {
	one := room("one", []string{"a", "b", "c"})
	one.MemberCount = 10
	one.WeeklyGrowth = 5
	two := room("two", []string{"a"})
	two.MemberCount = 5
	two.WeeklyGrowth = 20

	catalog := []community.Community{one, two}

	recs := Recommend(catalog, []string{"a"}, 0)
	if recs[0].ID != two.ID || recs[0].MatchScore != 100 {
		t.Fatalf("expected room two first with 100, got %s/%d", recs[0].Name, recs[0].MatchScore)
	}
	if recs[1].ID != one.ID || recs[1].MatchScore != 33 {
		t.Fatalf("expected room one second with 33, got %s/%d", recs[1].Name, recs[1].MatchScore)
	}

	trend := Trending(catalog, 0)
	if trend[0].ID != two.ID {
		t.Fatalf("expected room two to trend first, got %s", trend[0].Name)
	}
}
