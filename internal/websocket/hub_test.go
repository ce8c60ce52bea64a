package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func newTestClient(memberID uuid.UUID, buffer int) *Client {
	return &Client{
		ID:       uuid.New(),
		MemberID: memberID,
		Send:     make(chan []byte, buffer),
	}
}

func TestRegisterAndIsOnline(t *testing.T) {
	hub := NewHub()
	member := uuid.New()

	if hub.IsOnline(member) {
		t.Fatalf("member should be offline before registration")
	}

	client := newTestClient(member, 8)
	hub.registerClient(client)

	if !hub.IsOnline(member) {
		t.Fatalf("member should be online after registration")
	}
	if got := hub.ConnectionCount(member); got != 1 {
		t.Fatalf("expected 1 connection, got %d", got)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	hub := NewHub()
	member := uuid.New()
	client := newTestClient(member, 8)

	hub.registerClient(client)
	hub.registerClient(client)

	if got := hub.ConnectionCount(member); got != 1 {
		t.Fatalf("duplicate registration must not add connections, got %d", got)
	}
}

func TestUnregisterCleansUpMemberEntry(t *testing.T) {
	hub := NewHub()
	member := uuid.New()

	first := newTestClient(member, 8)
	second := newTestClient(member, 8)
	hub.registerClient(first)
	hub.registerClient(second)

	hub.unregisterClient(first)
	if !hub.IsOnline(member) {
		t.Fatalf("member must stay online while a socket remains")
	}

	hub.unregisterClient(second)
	if hub.IsOnline(member) {
		t.Fatalf("member must be offline after last socket is removed")
	}
	if got := len(hub.memberClients); got != 0 {
		t.Fatalf("empty member entries must be removed, got %d", got)
	}
}

func TestPushToMemberReachesEverySocket(t *testing.T) {
	hub := NewHub()
	member := uuid.New()

	first := newTestClient(member, 8)
	second := newTestClient(member, 8)
	hub.registerClient(first)
	hub.registerClient(second)

	payload := map[string]string{"content": "Hi! Is it available?"}
	hub.PushToMember(member, EventMessageNew, payload)

	for _, client := range []*Client{first, second} {
		select {
		case frame := <-client.Send:
			var envelope Envelope
			if err := json.Unmarshal(frame, &envelope); err != nil {
				t.Fatalf("invalid frame: %v", err)
			}
			if envelope.Type != EventMessageNew {
				t.Fatalf("expected %s, got %s", EventMessageNew, envelope.Type)
			}
			var got map[string]string
			if err := json.Unmarshal(envelope.Data, &got); err != nil {
				t.Fatalf("invalid payload: %v", err)
			}
			if got["content"] != "Hi! Is it available?" {
				t.Fatalf("payload mismatch: %q", got["content"])
			}
		default:
			t.Fatalf("client %s did not receive the event", client.ID)
		}
	}
}

func TestPushToOfflineMemberIsNoop(t *testing.T) {
	hub := NewHub()

	// Не должно ни паниковать, ни блокироваться
	hub.PushToMember(uuid.New(), EventNotificationNew, map[string]string{"x": "y"})
}

func TestPushDoesNotBlockOnSlowSocket(t *testing.T) {
	hub := NewHub()
	member := uuid.New()

	slow := newTestClient(member, 1)
	healthy := newTestClient(member, 8)
	hub.registerClient(slow)
	hub.registerClient(healthy)

	// Забиваем буфер медленного сокета
	slow.Send <- []byte("stale")

	hub.PushToMember(member, EventMessageNew, map[string]string{"content": "hello"})

	select {
	case <-healthy.Send:
	default:
		t.Fatalf("healthy socket must receive the event despite the slow one")
	}
}
