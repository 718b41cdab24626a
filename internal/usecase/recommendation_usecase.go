package usecase

import (
	"context"
	"errors"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/domain/matching"
	"diary-rooms/internal/domain/user"

	"github.com/google/uuid"
)

// CatalogProvider yields the per-user catalog the ranking views are
// computed over. The community usecase satisfies it, cache included.
type CatalogProvider interface {
	ListDefault(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
}

type RecommendationUsecase interface {
	Recommended(ctx context.Context, userID uuid.UUID) ([]matching.Ranked, error)
	Trending(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
	Search(ctx context.Context, userID uuid.UUID, category, query string) ([]matching.Ranked, error)
}

type Recommendation struct {
	catalog    CatalogProvider
	users      user.Repository
	categories community.CategorySet

	recommendedLimit int
	trendingLimit    int
}

func NewRecommendationUsecase(catalog CatalogProvider, users user.Repository, categories []string, recommendedLimit, trendingLimit int) *Recommendation {
	return &Recommendation{
		catalog:          catalog,
		users:            users,
		categories:       community.NewCategorySet(categories),
		recommendedLimit: recommendedLimit,
		trendingLimit:    trendingLimit,
	}
}

// Recommended ranks the catalog against the caller's interest tags. A
// user with no tags still gets a stable list, every entry scored zero.
func (u *Recommendation) Recommended(ctx context.Context, userID uuid.UUID) ([]matching.Ranked, error) {
	tags, err := u.userTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := u.catalog.ListDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	return matching.Recommend(catalog, tags, u.recommendedLimit), nil
}

func (u *Recommendation) Trending(ctx context.Context, userID uuid.UUID) ([]community.Community, error) {
	catalog, err := u.catalog.ListDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return matching.Trending(catalog, u.trendingLimit), nil
}

// Search filters by category and free text, then scores the survivors
// so the client can show match badges in search results too.
func (u *Recommendation) Search(ctx context.Context, userID uuid.UUID, category, query string) ([]matching.Ranked, error) {
	tags, err := u.userTags(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := u.catalog.ListDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := matching.Filter(catalog, category, query, u.categories)

	out := make([]matching.Ranked, 0, len(filtered))
	for _, c := range filtered {
		out = append(out, matching.Ranked{Community: c, MatchScore: matching.Score(c.Tags, tags)})
	}
	return out, nil
}

func (u *Recommendation) userTags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}
	return usr.Tags, nil
}
