package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/models"
)

func TestBuildReactionAggregateGroupsByEmoji(t *testing.T) {
	messageID := uuid.New()
	convID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	now := time.Now()
	reactions := []models.Reaction{
		{MessageID: messageID, MemberID: alice, Emoji: "👍", CreatedAt: now},
		{MessageID: messageID, MemberID: bob, Emoji: "😂", CreatedAt: now.Add(time.Second)},
	}

	aggregate := buildReactionAggregate(messageID, convID, reactions, alice)

	if len(aggregate.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(aggregate.Groups))
	}

	// Порядок групп — порядок первого появления эмодзи
	if aggregate.Groups[0].Emoji != "👍" || aggregate.Groups[1].Emoji != "😂" {
		t.Fatalf("group order mismatch: %+v", aggregate.Groups)
	}

	thumbs := aggregate.Groups[0]
	if thumbs.Count != 1 || len(thumbs.MemberIDs) != 1 || thumbs.MemberIDs[0] != alice {
		t.Fatalf("thumbs group mismatch: %+v", thumbs)
	}
	if !thumbs.Reacted {
		t.Fatalf("viewer flag must be set for alice on 👍")
	}
	if aggregate.Groups[1].Reacted {
		t.Fatalf("viewer flag must not be set for alice on 😂")
	}
}

func TestBuildReactionAggregateWithoutViewer(t *testing.T) {
	messageID := uuid.New()
	convID := uuid.New()

	reactions := []models.Reaction{
		{MessageID: messageID, MemberID: uuid.New(), Emoji: "👍"},
		{MessageID: messageID, MemberID: uuid.New(), Emoji: "👍"},
	}

	aggregate := buildReactionAggregate(messageID, convID, reactions, uuid.Nil)

	if len(aggregate.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(aggregate.Groups))
	}
	if aggregate.Groups[0].Count != 2 {
		t.Fatalf("expected count 2, got %d", aggregate.Groups[0].Count)
	}
	if aggregate.Groups[0].Reacted {
		t.Fatalf("broadcast aggregate must not carry a viewer flag")
	}
}

func TestBuildReactionAggregateEmpty(t *testing.T) {
	aggregate := buildReactionAggregate(uuid.New(), uuid.New(), nil, uuid.Nil)

	if aggregate.Groups == nil || len(aggregate.Groups) != 0 {
		t.Fatalf("empty aggregate must have an empty, non-nil group list")
	}
}
