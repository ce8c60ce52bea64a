package database

import (
	"strings"
	"testing"

	"github.com/thereayou/bookswap/internal/models"
)

func TestMessageSnippetShortContent(t *testing.T) {
	msg := &models.Message{Content: "Hi! Is it available?"}
	if got := MessageSnippet(msg); got != "Hi! Is it available?" {
		t.Fatalf("unexpected snippet: %q", got)
	}
}

func TestMessageSnippetTruncatesLongContent(t *testing.T) {
	msg := &models.Message{Content: strings.Repeat("ё", snippetLength+40)}

	got := MessageSnippet(msg)
	if len([]rune(got)) != snippetLength {
		t.Fatalf("expected %d runes, got %d", snippetLength, len([]rune(got)))
	}
}

func TestMessageSnippetFallsBackToAttachmentName(t *testing.T) {
	msg := &models.Message{
		AttachmentURL:  "https://cdn.example.com/cover.jpg",
		AttachmentName: "cover.jpg",
	}
	if got := MessageSnippet(msg); got != "cover.jpg" {
		t.Fatalf("expected attachment name fallback, got %q", got)
	}
}
