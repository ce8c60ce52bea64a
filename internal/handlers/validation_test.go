package handlers

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/apperr"
	"github.com/thereayou/bookswap/internal/handlers/dto"
)

func validAttachment() *dto.AttachmentPayload {
	return &dto.AttachmentPayload{
		URL:  "https://cdn.example.com/photo.jpg",
		Type: "image/jpeg",
		Name: "photo.jpg",
		Size: 1024,
	}
}

func TestValidateSendRequestRequiresTarget(t *testing.T) {
	req := &dto.SendMessageRequest{Content: "hello"}

	if _, err := validateSendRequest(req); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected InvalidInput without a target, got %v", err)
	}
}

func TestValidateSendRequestTrimsContent(t *testing.T) {
	convID := uuid.New()
	req := &dto.SendMessageRequest{
		ConversationID: &convID,
		Content:        "  Hi! Is it available?  ",
	}

	content, err := validateSendRequest(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Hi! Is it available?" {
		t.Fatalf("content not trimmed: %q", content)
	}
}

func TestValidateSendRequestRejectsEmptyBody(t *testing.T) {
	convID := uuid.New()

	cases := []string{"", "   ", "\n\t"}
	for _, content := range cases {
		req := &dto.SendMessageRequest{ConversationID: &convID, Content: content}
		if _, err := validateSendRequest(req); apperr.KindOf(err) != apperr.KindInvalidInput {
			t.Fatalf("expected InvalidInput for content %q, got %v", content, err)
		}
	}
}

func TestValidateSendRequestAllowsAttachmentOnly(t *testing.T) {
	convID := uuid.New()
	req := &dto.SendMessageRequest{
		ConversationID: &convID,
		Attachment:     validAttachment(),
	}

	content, err := validateSendRequest(req)
	if err != nil {
		t.Fatalf("attachment-only message must be valid, got %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content, got %q", content)
	}
}

func TestValidateSendRequestRejectsPartialAttachment(t *testing.T) {
	convID := uuid.New()
	att := validAttachment()
	att.URL = ""

	req := &dto.SendMessageRequest{ConversationID: &convID, Attachment: att}
	if _, err := validateSendRequest(req); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected InvalidInput for partial attachment, got %v", err)
	}
}

func TestValidateSendRequestEnforcesMaxLength(t *testing.T) {
	convID := uuid.New()

	req := &dto.SendMessageRequest{
		ConversationID: &convID,
		Content:        strings.Repeat("я", maxContentLength),
	}
	if _, err := validateSendRequest(req); err != nil {
		t.Fatalf("content at the limit must pass, got %v", err)
	}

	req.Content = strings.Repeat("я", maxContentLength+1)
	if _, err := validateSendRequest(req); apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected InvalidInput above the limit, got %v", err)
	}
}
