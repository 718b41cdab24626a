package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"diary-rooms/internal/domain/user"
)

// MaxTags caps the interest tags kept on a profile. The matcher gets
// noisy beyond a handful of tags, so the API refuses more.
const MaxTags = 10

var (
	ErrInvalidTags = errors.New("invalid tags")
	ErrInternal    = errors.New("internal error")
)

type Profile struct {
	User               user.User
	JoinedCommunityIDs []uuid.UUID
}

// MembershipReader is the slice of the community repository the profile
// needs.
type MembershipReader interface {
	JoinedCommunityIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Service struct {
	users       user.Repository
	memberships MembershipReader
}

func NewService(users user.Repository, memberships MembershipReader) *Service {
	return &Service{users: users, memberships: memberships}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	u.PasswordHash = ""

	joined, err := s.memberships.JoinedCommunityIDs(ctx, userID)
	if err != nil {
		return Profile{}, ErrInternal
	}

	return Profile{User: u, JoinedCommunityIDs: joined}, nil
}

func (s *Service) UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) (Profile, error) {
	cleaned, err := NormalizeTags(tags)
	if err != nil {
		return Profile{}, err
	}

	if err := s.users.UpdateTags(ctx, userID, cleaned); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	return s.GetProfile(ctx, userID)
}

// NormalizeTags trims, lowercases and dedupes while keeping first-seen
// order, then enforces the MaxTags cap.
func NormalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return nil, ErrInvalidTags
	}
	return out, nil
}
