package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizePairOrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	x1, y1 := NormalizePair(a, b)
	x2, y2 := NormalizePair(b, a)

	if x1 != x2 || y1 != y2 {
		t.Fatalf("pair must normalize identically regardless of argument order")
	}
	if x1.String() > y1.String() {
		t.Fatalf("normalized pair must be ordered")
	}
}

func TestConversationParticipantHelpers(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	pa, pb := NormalizePair(a, b)

	conv := Conversation{
		ParticipantAID: pa,
		ParticipantBID: pb,
		UnreadA:        3,
		UnreadB:        7,
	}

	if !conv.HasParticipant(a) || !conv.HasParticipant(b) {
		t.Fatalf("both members must be participants")
	}
	if conv.HasParticipant(uuid.New()) {
		t.Fatalf("stranger must not be a participant")
	}

	if conv.OtherParticipant(pa) != pb {
		t.Fatalf("other participant of A must be B")
	}
	if conv.OtherParticipant(pb) != pa {
		t.Fatalf("other participant of B must be A")
	}

	if conv.UnreadFor(pa) != 3 || conv.UnreadFor(pb) != 7 {
		t.Fatalf("unread counters mixed up")
	}
	if conv.UnreadColumn(pa) != "unread_a" || conv.UnreadColumn(pb) != "unread_b" {
		t.Fatalf("unread columns mixed up")
	}
}
