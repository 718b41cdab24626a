package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/repository"

	"github.com/google/uuid"
)

const (
	catalogKeyPrefix  = "communities:catalog:"
	fallbackKeyPrefix = "communities:fallback:"

	// Stale copies outlive fresh ones by design; they are only served
	// when the database is unreachable.
	fallbackTTL = 24 * time.Hour
)

type CommunityUsecase interface {
	ListDefault(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
	ListJoined(ctx context.Context, userID uuid.UUID) ([]community.Community, error)
	Get(ctx context.Context, id, userID uuid.UUID) (community.Community, error)
	Create(ctx context.Context, in CreateCommunityInput) (community.Community, error)
}

type CreateCommunityInput struct {
	Name        string
	Description string
	Category    string
	Tags        []string
	IsPrivate   bool
	OwnerID     uuid.UUID
}

type Community struct {
	repo       repository.CommunityRepository
	cache      CatalogCache
	categories community.CategorySet
	logger     *log.Logger
}

func NewCommunityUsecase(repo repository.CommunityRepository, cache CatalogCache, categories []string, logger *log.Logger) *Community {
	return &Community{
		repo:       repo,
		cache:      cache,
		categories: community.NewCategorySet(categories),
		logger:     logger,
	}
}

// ListDefault serves the public catalog cache-aside. A database failure
// falls back to the last known good copy before surfacing the error.
func (u *Community) ListDefault(ctx context.Context, userID uuid.UUID) ([]community.Community, error) {
	key := catalogKeyPrefix + userID.String()

	var cached []community.Community
	if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	catalog, err := u.repo.ListDefault(ctx, userID)
	if err != nil {
		var stale []community.Community
		if found, cacheErr := u.cache.GetJSON(ctx, fallbackKeyPrefix+userID.String(), &stale); cacheErr == nil && found {
			if u.logger != nil {
				u.logger.Printf("[Community] serving stale catalog for user=%s: %v", userID, err)
			}
			return stale, nil
		}
		return nil, ErrInternal
	}

	if err := u.cache.SetJSON(ctx, key, catalog, 0); err == nil {
		_ = u.cache.SetJSON(ctx, fallbackKeyPrefix+userID.String(), catalog, fallbackTTL)
	}

	return catalog, nil
}

func (u *Community) ListJoined(ctx context.Context, userID uuid.UUID) ([]community.Community, error) {
	out, err := u.repo.ListJoined(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Community) Get(ctx context.Context, id, userID uuid.UUID) (community.Community, error) {
	c, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, community.ErrNotFound) {
			return community.Community{}, community.ErrNotFound
		}
		return community.Community{}, ErrInternal
	}
	return c, nil
}

func (u *Community) Create(ctx context.Context, in CreateCommunityInput) (community.Community, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" || in.OwnerID == uuid.Nil {
		return community.Community{}, ErrInvalidInput
	}
	if in.Category == "" || in.Category == community.CategoryAll || !u.categories.Contains(in.Category) {
		return community.Community{}, ErrInvalidInput
	}

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	created, err := u.repo.Create(ctx, community.Community{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Tags:        tags,
		IsPrivate:   in.IsPrivate,
		OwnerID:     in.OwnerID,
	})
	if err != nil {
		return community.Community{}, ErrInternal
	}

	_ = u.cache.InvalidateCatalog(ctx)

	return created, nil
}
