package handlers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/apperr"
	"github.com/thereayou/bookswap/internal/handlers/dto"
	"github.com/thereayou/bookswap/internal/models"
	"github.com/thereayou/bookswap/internal/websocket"
	"gorm.io/gorm"
)

// React ставит реакцию участника на сообщение. Та же реакция повторно —
// идемпотентный upsert, другой эмодзи заменяет предыдущий.
func (h *MessageHandler) React(memberID, messageID uuid.UUID, emoji string) (*dto.ReactionAggregate, error) {
	if err := validateEmoji(emoji); err != nil {
		return nil, err
	}

	conv, message, err := h.loadVisibleMessage(memberID, messageID)
	if err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		MessageID: messageID,
		MemberID:  memberID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	if err := h.db.UpsertReaction(reaction); err != nil {
		return nil, apperr.Internal("failed to save reaction", err)
	}

	return h.broadcastReactions(conv, message, memberID)
}

// Unreact снимает реакцию участника с сообщения
func (h *MessageHandler) Unreact(memberID, messageID uuid.UUID) (*dto.ReactionAggregate, error) {
	conv, message, err := h.loadVisibleMessage(memberID, messageID)
	if err != nil {
		return nil, err
	}

	if err := h.db.DeleteReaction(messageID, memberID); err != nil {
		return nil, apperr.Internal("failed to delete reaction", err)
	}

	return h.broadcastReactions(conv, message, memberID)
}

// loadVisibleMessage скрывает чужие сообщения как несуществующие
func (h *MessageHandler) loadVisibleMessage(memberID, messageID uuid.UUID) (*models.Conversation, *models.Message, error) {
	message, err := h.db.GetMessage(messageID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("message not found")
		}
		return nil, nil, apperr.Internal("failed to load message", err)
	}

	conv, err := h.db.GetConversation(message.ConversationID.String())
	if err != nil {
		return nil, nil, apperr.Internal("failed to load conversation", err)
	}

	if !conv.HasParticipant(memberID) {
		return nil, nil, apperr.NotFound("message not found")
	}

	return conv, message, nil
}

// broadcastReactions пересчитывает агрегат и рассылает его целиком обоим
// участникам. Вызывающему возвращается вариант с его viewer-флагом.
func (h *MessageHandler) broadcastReactions(conv *models.Conversation, message *models.Message, viewerID uuid.UUID) (*dto.ReactionAggregate, error) {
	reactions, err := h.db.GetMessageReactions(message.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load reactions", err)
	}

	broadcast := buildReactionAggregate(message.ID, conv.ID, reactions, uuid.Nil)
	h.hub.PushToMember(conv.ParticipantAID, websocket.EventReactionUpdate, broadcast)
	h.hub.PushToMember(conv.ParticipantBID, websocket.EventReactionUpdate, broadcast)

	return buildReactionAggregate(message.ID, conv.ID, reactions, viewerID), nil
}

// buildReactionAggregate группирует реакции по эмодзи в порядке первого
// появления. Reacted выставляется только для переданного viewer.
func buildReactionAggregate(messageID, conversationID uuid.UUID, reactions []models.Reaction, viewerID uuid.UUID) *dto.ReactionAggregate {
	aggregate := &dto.ReactionAggregate{
		MessageID:      messageID,
		ConversationID: conversationID,
		Groups:         make([]dto.ReactionGroup, 0),
	}

	index := make(map[string]int)
	for _, reaction := range reactions {
		i, ok := index[reaction.Emoji]
		if !ok {
			i = len(aggregate.Groups)
			index[reaction.Emoji] = i
			aggregate.Groups = append(aggregate.Groups, dto.ReactionGroup{
				Emoji:     reaction.Emoji,
				MemberIDs: make([]uuid.UUID, 0, 2),
			})
		}

		aggregate.Groups[i].Count++
		aggregate.Groups[i].MemberIDs = append(aggregate.Groups[i].MemberIDs, reaction.MemberID)
		if viewerID != uuid.Nil && reaction.MemberID == viewerID {
			aggregate.Groups[i].Reacted = true
		}
	}

	return aggregate
}
