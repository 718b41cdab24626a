package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/domain/user"
	"diary-rooms/internal/repository"

	"github.com/google/uuid"
)

type mockCommunityRepo struct {
	communities map[uuid.UUID]community.Community
	joined      []uuid.UUID

	joinErr   error
	leaveErr  error
	switchErr error

	joinCalls   int
	leaveCalls  int
	switchCalls int

	lastJoin  uuid.UUID
	lastLeave uuid.UUID
}

func (m *mockCommunityRepo) ListDefault(context.Context, uuid.UUID) ([]community.Community, error) {
	out := make([]community.Community, 0, len(m.communities))
	for _, c := range m.communities {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCommunityRepo) ListJoined(context.Context, uuid.UUID) ([]community.Community, error) {
	return nil, nil
}

func (m *mockCommunityRepo) GetByID(_ context.Context, id, _ uuid.UUID) (community.Community, error) {
	c, ok := m.communities[id]
	if !ok {
		return community.Community{}, community.ErrNotFound
	}
	return c, nil
}

func (m *mockCommunityRepo) Create(_ context.Context, c community.Community) (community.Community, error) {
	return c, nil
}

func (m *mockCommunityRepo) JoinedCommunityIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.joined, nil
}

func (m *mockCommunityRepo) Join(_ context.Context, communityID, _ uuid.UUID) error {
	m.joinCalls++
	m.lastJoin = communityID
	return m.joinErr
}

func (m *mockCommunityRepo) Leave(_ context.Context, communityID, _ uuid.UUID) error {
	m.leaveCalls++
	m.lastLeave = communityID
	return m.leaveErr
}

func (m *mockCommunityRepo) Switch(_ context.Context, joinID, leaveID, _ uuid.UUID) error {
	m.switchCalls++
	if m.switchErr != nil {
		return m.switchErr
	}
	m.lastJoin = joinID
	m.lastLeave = leaveID
	return nil
}

type mockCatalogCache struct {
	store       map[string][]byte
	getErr      error
	invalidated int
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{store: make(map[string][]byte)}
}

func (m *mockCatalogCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mockCatalogCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCatalogCache) InvalidateCatalog(context.Context) error {
	m.invalidated++
	return nil
}

type mockNotifier struct {
	events []string
}

func (m *mockNotifier) CommunityUpdated(communityID uuid.UUID, action string) {
	m.events = append(m.events, action+":"+communityID.String())
}

func testCatalog(ids ...uuid.UUID) map[uuid.UUID]community.Community {
	out := make(map[uuid.UUID]community.Community, len(ids))
	for _, id := range ids {
		out[id] = community.Community{ID: id, Name: "room-" + id.String()[:8]}
	}
	return out
}

func TestMembershipJoin_Direct(t *testing.T) {
	target := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(target)}
	cache := newMockCatalogCache()
	notify := &mockNotifier{}
	uc := NewMembershipUsecase(repo, cache, notify)

	out, err := uc.Join(context.Background(), uuid.New(), target, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Joined != target {
		t.Fatalf("expected joined=%s, got %s", target, out.Joined)
	}
	if repo.joinCalls != 1 || repo.switchCalls != 0 {
		t.Fatalf("expected 1 join and 0 switch, got %d/%d", repo.joinCalls, repo.switchCalls)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected catalog invalidation, got %d", cache.invalidated)
	}
	if len(notify.events) != 1 || notify.events[0] != ActionJoined+":"+target.String() {
		t.Fatalf("unexpected notifications: %v", notify.events)
	}
}

func TestMembershipJoin_SameRoomIsNoop(t *testing.T) {
	held := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(held), joined: []uuid.UUID{held}}
	cache := newMockCatalogCache()
	uc := NewMembershipUsecase(repo, cache, nil)

	out, err := uc.Join(context.Background(), uuid.New(), held, false)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.AlreadyMember || out.Joined != held {
		t.Fatalf("expected already-member outcome, got %+v", out)
	}
	if repo.joinCalls != 0 || repo.switchCalls != 0 || repo.leaveCalls != 0 {
		t.Fatalf("no-op must not touch the repository")
	}
	if cache.invalidated != 0 {
		t.Fatalf("no-op must not invalidate the catalog")
	}
}

func TestMembershipJoin_SwitchRequiresConfirmation(t *testing.T) {
	held := uuid.New()
	target := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(held, target), joined: []uuid.UUID{held}}
	cache := newMockCatalogCache()
	notify := &mockNotifier{}
	uc := NewMembershipUsecase(repo, cache, notify)

	out, err := uc.Join(context.Background(), uuid.New(), target, false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if out.Current != held || out.Pending != target {
		t.Fatalf("expected parked switch %s -> %s, got %+v", held, target, out)
	}
	if repo.joinCalls != 0 || repo.switchCalls != 0 || repo.leaveCalls != 0 {
		t.Fatalf("pending confirmation must not mutate memberships")
	}
	if cache.invalidated != 0 || len(notify.events) != 0 {
		t.Fatalf("pending confirmation must not fan out")
	}
}

func TestMembershipJoin_ConfirmedSwitch(t *testing.T) {
	held := uuid.New()
	target := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(held, target), joined: []uuid.UUID{held}}
	cache := newMockCatalogCache()
	notify := &mockNotifier{}
	uc := NewMembershipUsecase(repo, cache, notify)

	out, err := uc.Join(context.Background(), uuid.New(), target, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Joined != target || out.Left != held {
		t.Fatalf("expected switch %s -> %s, got %+v", held, target, out)
	}
	if repo.switchCalls != 1 {
		t.Fatalf("expected one switch call, got %d", repo.switchCalls)
	}
	if repo.lastJoin != target || repo.lastLeave != held {
		t.Fatalf("switch called with wrong rooms: join=%s leave=%s", repo.lastJoin, repo.lastLeave)
	}
	if len(notify.events) != 2 {
		t.Fatalf("expected joined and left events, got %v", notify.events)
	}
}

func TestMembershipJoin_SwitchFailureKeepsPriorMembership(t *testing.T) {
	held := uuid.New()
	target := uuid.New()
	repo := &mockCommunityRepo{
		communities: testCatalog(held, target),
		joined:      []uuid.UUID{held},
		switchErr:   errors.New("db down"),
	}
	cache := newMockCatalogCache()
	notify := &mockNotifier{}
	uc := NewMembershipUsecase(repo, cache, notify)

	_, err := uc.Join(context.Background(), uuid.New(), target, true)
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if cache.invalidated != 0 || len(notify.events) != 0 {
		t.Fatalf("failed switch must not fan out")
	}
}

func TestMembershipJoin_UnknownCommunity(t *testing.T) {
	repo := &mockCommunityRepo{communities: testCatalog()}
	uc := NewMembershipUsecase(repo, newMockCatalogCache(), nil)

	_, err := uc.Join(context.Background(), uuid.New(), uuid.New(), false)
	if !errors.Is(err, community.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMembershipLeave(t *testing.T) {
	held := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(held), joined: []uuid.UUID{held}}
	cache := newMockCatalogCache()
	notify := &mockNotifier{}
	uc := NewMembershipUsecase(repo, cache, notify)

	if err := uc.Leave(context.Background(), uuid.New(), held); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.leaveCalls != 1 || repo.lastLeave != held {
		t.Fatalf("expected leave call for %s", held)
	}
	if cache.invalidated != 1 || len(notify.events) != 1 {
		t.Fatalf("expected invalidation and one event")
	}
}

func TestMembershipLeave_NotMember(t *testing.T) {
	held := uuid.New()
	repo := &mockCommunityRepo{communities: testCatalog(held), leaveErr: repository.ErrNotMember}
	uc := NewMembershipUsecase(repo, newMockCatalogCache(), nil)

	err := uc.Leave(context.Background(), uuid.New(), held)
	if !errors.Is(err, repository.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

type mockUserRepo struct {
	users map[uuid.UUID]user.User
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m *mockUserRepo) UpdateTags(context.Context, uuid.UUID, []string) error {
	return nil
}
