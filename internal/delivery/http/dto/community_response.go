package dto

import (
	"time"

	"github.com/google/uuid"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/domain/matching"
)

type CommunityResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	MemberCount   int       `json:"memberCount"`
	ActiveMembers int       `json:"activeMembers"`
	TodayPosts    int       `json:"todayPosts"`
	WeeklyGrowth  int       `json:"weeklyGrowth"`
	IsPrivate     bool      `json:"isPrivate"`
	IsJoined      bool      `json:"isJoined"`
	IsOwner       bool      `json:"isOwner"`
	MatchScore    *int      `json:"matchScore,omitempty"`
	StrongMatch   bool      `json:"strongMatch,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewCommunityResponse(c community.Community) CommunityResponse {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return CommunityResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		Tags:          tags,
		MemberCount:   c.MemberCount,
		ActiveMembers: c.ActiveMembers,
		TodayPosts:    c.TodayPosts,
		WeeklyGrowth:  c.WeeklyGrowth,
		IsPrivate:     c.IsPrivate,
		IsJoined:      c.IsJoined,
		IsOwner:       c.IsOwner,
		CreatedAt:     c.CreatedAt,
	}
}

func NewRankedCommunityResponse(r matching.Ranked) CommunityResponse {
	res := NewCommunityResponse(r.Community)
	score := r.MatchScore
	res.MatchScore = &score
	res.StrongMatch = score > matching.StrongMatchThreshold
	return res
}

func NewCommunityListResponse(items []community.Community) []CommunityResponse {
	out := make([]CommunityResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewCommunityResponse(c))
	}
	return out
}

func NewRankedCommunityListResponse(items []matching.Ranked) []CommunityResponse {
	out := make([]CommunityResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRankedCommunityResponse(r))
	}
	return out
}

// JoinResponse reports what a join attempt did. When a switch is parked
// behind a confirmation the same shape rides on the 409 error payload.
type JoinResponse struct {
	Joined             *uuid.UUID `json:"joined,omitempty"`
	Left               *uuid.UUID `json:"left,omitempty"`
	AlreadyMember      bool       `json:"alreadyMember,omitempty"`
	CurrentCommunityID *uuid.UUID `json:"currentCommunityId,omitempty"`
	TargetCommunityID  *uuid.UUID `json:"targetCommunityId,omitempty"`
}
