package handlers

import (
	"github.com/thereayou/bookswap/internal/apperr"
)

const maxEmojiRunes = 16

// validateEmoji принимает один видимый эмодзи, включая составные:
// ZWJ-последовательности, модификаторы тона кожи, variation selectors.
// Узкий односимвольный паттерн отбрасывал бы "👍🏽" и "👩‍💻".
func validateEmoji(emoji string) error {
	if emoji == "" {
		return apperr.InvalidInput("emoji is required")
	}

	runes := []rune(emoji)
	if len(runes) > maxEmojiRunes {
		return apperr.InvalidInput("emoji is too long")
	}

	bases := 0
	joined := false
	for _, r := range runes {
		switch {
		case r == 0x200D: // zero-width joiner
			joined = true
		case isEmojiModifier(r):
			// модификатор прилипает к предыдущей базе
		case isEmojiBase(r):
			if bases > 0 && !joined {
				return apperr.InvalidInput("reaction must be a single emoji")
			}
			bases++
			joined = false
		default:
			return apperr.InvalidInput("reaction must be an emoji")
		}
	}

	if bases == 0 {
		return apperr.InvalidInput("reaction must be an emoji")
	}

	return nil
}

func isEmojiModifier(r rune) bool {
	return (r >= 0x1F3FB && r <= 0x1F3FF) || // тон кожи
		(r >= 0xFE00 && r <= 0xFE0F) || // variation selectors
		r == 0x20E3 // combining keycap
}

func isEmojiBase(r rune) bool {
	return (r >= 0x1F000 && r <= 0x1FAFF) || // основные эмодзи-плоскости
		(r >= 0x2600 && r <= 0x27BF) || // misc symbols, dingbats
		(r >= 0x2B00 && r <= 0x2BFF) ||
		(r >= 0x2300 && r <= 0x23FF) ||
		(r >= 0x1F1E6 && r <= 0x1F1FF) // региональные индикаторы
}
