package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type CommunityUpdatedEvent struct {
	Type        string `json:"type"`
	CommunityID string `json:"communityId"`
	Action      string `json:"action"`
	Timestamp   string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// Notifier adapts the package-level broadcast to the usecase-facing
// interface. The zero value works; a nil hub drops events.
type Notifier struct{}

func (Notifier) CommunityUpdated(communityID uuid.UUID, action string) {
	NotifyCommunityUpdated(communityID, action)
}

func NotifyCommunityUpdated(communityID uuid.UUID, action string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if communityID == uuid.Nil || action == "" {
		return
	}

	evt := CommunityUpdatedEvent{
		Type:        "community_updated",
		CommunityID: communityID.String(),
		Action:      action,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
