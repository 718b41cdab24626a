package dto

import (
	"time"

	"github.com/google/uuid"

	"diary-rooms/internal/domain/user"
	ucuser "diary-rooms/internal/usecase/user"
)

type AuthUserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`
	Role     string    `json:"role"`
	Tags     []string  `json:"tags"`
}

func NewAuthUserResponse(u user.User) AuthUserResponse {
	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}
	return AuthUserResponse{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Role: u.Role, Tags: tags}
}

type UserProfileResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Email              string      `json:"email"`
	Nickname           string      `json:"nickname"`
	Role               string      `json:"role"`
	Tags               []string    `json:"tags"`
	JoinedCommunityIDs []uuid.UUID `json:"joinedCommunities"`
	CreatedAt          time.Time   `json:"createdAt"`
}

func NewUserProfileResponse(p ucuser.Profile) UserProfileResponse {
	tags := p.User.Tags
	if tags == nil {
		tags = []string{}
	}
	joined := p.JoinedCommunityIDs
	if joined == nil {
		joined = []uuid.UUID{}
	}
	return UserProfileResponse{
		ID:                 p.User.ID,
		Email:              p.User.Email,
		Nickname:           p.User.Nickname,
		Role:               p.User.Role,
		Tags:               tags,
		JoinedCommunityIDs: joined,
		CreatedAt:          p.User.CreatedAt,
	}
}
