package usecase

import (
	"context"
	"errors"
	"time"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/domain/membership"
	"diary-rooms/internal/repository"

	"github.com/google/uuid"
)

// ErrConfirmationRequired signals that the caller holds another room and
// must confirm the switch before any membership row changes.
var ErrConfirmationRequired = errors.New("confirmation required")

const mutationTimeout = 10 * time.Second

const (
	ActionJoined = "joined"
	ActionLeft   = "left"
)

// MembershipNotifier fans membership changes out to connected clients.
// A nil notifier is a no-op.
type MembershipNotifier interface {
	CommunityUpdated(communityID uuid.UUID, action string)
}

type JoinOutcome struct {
	// Joined is the room held after the call.
	Joined uuid.UUID
	// Left is set when the call switched rooms.
	Left uuid.UUID
	// Current and Pending describe the parked switch when the call
	// fails with ErrConfirmationRequired.
	Current uuid.UUID
	Pending uuid.UUID

	AlreadyMember bool
}

type MembershipUsecase interface {
	Join(ctx context.Context, userID, communityID uuid.UUID, confirm bool) (JoinOutcome, error)
	Leave(ctx context.Context, userID, communityID uuid.UUID) error
}

type Membership struct {
	repo   repository.CommunityRepository
	cache  CatalogCache
	notify MembershipNotifier
}

func NewMembershipUsecase(repo repository.CommunityRepository, cache CatalogCache, notify MembershipNotifier) *Membership {
	return &Membership{repo: repo, cache: cache, notify: notify}
}

// Join applies the single-membership rule. Joining from a clean slate
// commits directly; re-joining the held room is a no-op; switching rooms
// requires confirm=true and commits the join and the leave in one
// transaction, so a failure leaves the prior membership untouched.
func (u *Membership) Join(ctx context.Context, userID, communityID uuid.UUID, confirm bool) (JoinOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, mutationTimeout)
	defer cancel()

	if _, err := u.repo.GetByID(ctx, communityID, userID); err != nil {
		if errors.Is(err, community.ErrNotFound) {
			return JoinOutcome{}, community.ErrNotFound
		}
		return JoinOutcome{}, ErrInternal
	}

	joined, err := u.repo.JoinedCommunityIDs(ctx, userID)
	if err != nil {
		return JoinOutcome{}, ErrInternal
	}
	current := uuid.Nil
	if len(joined) > 0 {
		current = joined[0]
	}

	wf := membership.NewWorkflow(current)
	switch wf.Join(communityID) {
	case membership.DecisionNoop:
		return JoinOutcome{Joined: communityID, AlreadyMember: true}, nil

	case membership.DecisionConfirm:
		if !confirm {
			return JoinOutcome{Current: current, Pending: communityID}, ErrConfirmationRequired
		}
		target, prior, err := wf.Confirm()
		if err != nil {
			return JoinOutcome{}, ErrInternal
		}
		if err := u.repo.Switch(ctx, target, prior, userID); err != nil {
			return JoinOutcome{}, u.mapMutationError(err)
		}
		wf.Committed(target)
		u.afterMutation(ctx, target, ActionJoined)
		u.afterMutation(ctx, prior, ActionLeft)
		return JoinOutcome{Joined: target, Left: prior}, nil

	default:
		if err := u.repo.Join(ctx, communityID, userID); err != nil {
			if errors.Is(err, repository.ErrAlreadyMember) {
				return JoinOutcome{Joined: communityID, AlreadyMember: true}, nil
			}
			return JoinOutcome{}, u.mapMutationError(err)
		}
		u.afterMutation(ctx, communityID, ActionJoined)
		return JoinOutcome{Joined: communityID}, nil
	}
}

func (u *Membership) Leave(ctx context.Context, userID, communityID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, mutationTimeout)
	defer cancel()

	if err := u.repo.Leave(ctx, communityID, userID); err != nil {
		if errors.Is(err, repository.ErrNotMember) {
			return repository.ErrNotMember
		}
		return u.mapMutationError(err)
	}

	u.afterMutation(ctx, communityID, ActionLeft)
	return nil
}

func (u *Membership) afterMutation(ctx context.Context, communityID uuid.UUID, action string) {
	_ = u.cache.InvalidateCatalog(ctx)
	if u.notify != nil {
		u.notify.CommunityUpdated(communityID, action)
	}
}

func (u *Membership) mapMutationError(err error) error {
	switch {
	case errors.Is(err, community.ErrNotFound):
		return community.ErrNotFound
	case errors.Is(err, repository.ErrAlreadyMember):
		return repository.ErrAlreadyMember
	case errors.Is(err, repository.ErrNotMember):
		return repository.ErrNotMember
	default:
		return ErrInternal
	}
}
