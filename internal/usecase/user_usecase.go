package usecase

import (
	"context"

	"diary-rooms/internal/domain/user"
	ucuser "diary-rooms/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error)
	UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) (ucuser.Profile, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository, memberships ucuser.MembershipReader) *User {
	return &User{svc: ucuser.NewService(users, memberships)}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *User) UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) (ucuser.Profile, error) {
	return u.svc.UpdateTags(ctx, userID, tags)
}
