package handlers

import "testing"

func TestValidateEmojiAcceptsSingleEmoji(t *testing.T) {
	valid := []string{
		"👍",
		"❤️",     // символ + variation selector
		"👍🏽",    // тон кожи
		"👩‍💻",   // ZWJ-последовательность
		"🎉",
	}

	for _, emoji := range valid {
		if err := validateEmoji(emoji); err != nil {
			t.Fatalf("expected %q to be valid, got %v", emoji, err)
		}
	}
}

func TestValidateEmojiRejectsNonEmoji(t *testing.T) {
	invalid := []string{
		"",
		"a",
		"abc",
		"👍👍",       // две отдельные реакции
		"hello👍",
		" ",
	}

	for _, emoji := range invalid {
		if err := validateEmoji(emoji); err == nil {
			t.Fatalf("expected %q to be rejected", emoji)
		}
	}
}
