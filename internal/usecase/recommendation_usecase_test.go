package usecase

import (
	"context"
	"testing"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/domain/user"

	"github.com/google/uuid"
)

type staticCatalog []community.Community

func (s staticCatalog) ListDefault(context.Context, uuid.UUID) ([]community.Community, error) {
	return s, nil
}

func newTestUser(tags ...string) (*mockUserRepo, uuid.UUID) {
	id := uuid.New()
	return &mockUserRepo{users: map[uuid.UUID]user.User{
		id: {ID: id, Email: "a@b.c", Tags: tags},
	}}, id
}

func TestRecommended_OrdersByScoreAndLimits(t *testing.T) {
	users, userID := newTestUser("anxiety", "journaling", "sleep")

	catalog := staticCatalog{
		{ID: uuid.New(), Name: "low", Tags: []string{"cooking", "travel", "gardening"}},
		{ID: uuid.New(), Name: "high", Tags: []string{"anxiety", "journaling", "sleep"}},
		{ID: uuid.New(), Name: "mid", Tags: []string{"anxiety", "journaling", "fitness"}},
	}

	uc := NewRecommendationUsecase(catalog, users, community.DefaultCategories, 2, 6)

	got, err := uc.Recommended(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit 2, got %d", len(got))
	}
	if got[0].Name != "high" || got[1].Name != "mid" {
		t.Fatalf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].MatchScore != 100 || got[1].MatchScore != 67 {
		t.Fatalf("unexpected scores: %d, %d", got[0].MatchScore, got[1].MatchScore)
	}
}

func TestRecommended_NoTagsScoresZero(t *testing.T) {
	users, userID := newTestUser()

	catalog := staticCatalog{
		{ID: uuid.New(), Name: "a", Tags: []string{"anxiety"}},
		{ID: uuid.New(), Name: "b", Tags: []string{"sleep"}},
	}

	uc := NewRecommendationUsecase(catalog, users, community.DefaultCategories, 0, 0)

	got, err := uc.Recommended(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// Zero scores keep catalog order.
	if got[0].Name != "a" || got[0].MatchScore != 0 || got[1].MatchScore != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestRecommended_UnknownUser(t *testing.T) {
	users := &mockUserRepo{users: map[uuid.UUID]user.User{}}
	uc := NewRecommendationUsecase(staticCatalog{}, users, community.DefaultCategories, 4, 6)

	if _, err := uc.Recommended(context.Background(), uuid.New()); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTrending_ExcludesJoined(t *testing.T) {
	users, userID := newTestUser()

	catalog := staticCatalog{
		{ID: uuid.New(), Name: "joined", WeeklyGrowth: 99, IsJoined: true},
		{ID: uuid.New(), Name: "slow", WeeklyGrowth: 1},
		{ID: uuid.New(), Name: "fast", WeeklyGrowth: 10},
	}

	uc := NewRecommendationUsecase(catalog, users, community.DefaultCategories, 4, 6)

	got, err := uc.Trending(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected joined room excluded, got %d items", len(got))
	}
	if got[0].Name != "fast" || got[1].Name != "slow" {
		t.Fatalf("unexpected order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestSearch_FiltersAndScores(t *testing.T) {
	users, userID := newTestUser("sleep")

	catalog := staticCatalog{
		{ID: uuid.New(), Name: "Night Owls", Category: "health", Tags: []string{"sleep"}},
		{ID: uuid.New(), Name: "Desk Life", Category: "work", Tags: []string{"sleep"}},
		{ID: uuid.New(), Name: "Dream Diary", Category: "health", Tags: []string{"dreams"}},
	}

	uc := NewRecommendationUsecase(catalog, users, community.DefaultCategories, 4, 6)

	got, err := uc.Search(context.Background(), userID, "health", "night")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Night Owls" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got[0].MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", got[0].MatchScore)
	}
}

func TestSearch_UnknownCategoryMatchesEverything(t *testing.T) {
	users, userID := newTestUser()

	catalog := staticCatalog{
		{ID: uuid.New(), Name: "a", Category: "health"},
		{ID: uuid.New(), Name: "b", Category: "work"},
	}

	uc := NewRecommendationUsecase(catalog, users, community.DefaultCategories, 4, 6)

	got, err := uc.Search(context.Background(), userID, "no-such-category", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unknown category must not filter, got %d items", len(got))
	}
}
