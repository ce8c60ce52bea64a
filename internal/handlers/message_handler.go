package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/thereayou/bookswap/internal/apperr"
	"github.com/thereayou/bookswap/internal/database"
	"github.com/thereayou/bookswap/internal/handlers/dto"
	"github.com/thereayou/bookswap/internal/models"
	"github.com/thereayou/bookswap/internal/services"
	"github.com/thereayou/bookswap/internal/websocket"
	"gorm.io/gorm"
)

const maxContentLength = 2000

// MessageHandler — конвейер сообщений: валидация, атомарная запись,
// fan-out на живые сокеты строго после коммита
type MessageHandler struct {
	db        *database.Database
	hub       *websocket.Hub
	trust     services.TrustGate
	exchanges services.ExchangeDirectory
}

func NewMessageHandler(db *database.Database, hub *websocket.Hub, trust services.TrustGate, exchanges services.ExchangeDirectory) *MessageHandler {
	return &MessageHandler{
		db:        db,
		hub:       hub,
		trust:     trust,
		exchanges: exchanges,
	}
}

// validateSendRequest разбирает union-формат один раз на входе.
// Возвращает обрезанный content.
func validateSendRequest(req *dto.SendMessageRequest) (string, error) {
	if req.ConversationID == nil && req.ExchangeRequestID == nil {
		return "", apperr.InvalidInput("conversation_id or exchange_request_id is required")
	}

	content := strings.TrimSpace(req.Content)

	if content == "" && req.Attachment == nil {
		return "", apperr.InvalidInput("message must have content or attachment")
	}

	if utf8.RuneCountInString(content) > maxContentLength {
		return "", apperr.InvalidInput("message content exceeds 2000 characters")
	}

	if att := req.Attachment; att != nil {
		if att.URL == "" || att.Type == "" || att.Name == "" || att.Size <= 0 {
			return "", apperr.InvalidInput("attachment must have url, type, name and size")
		}
	}

	return content, nil
}

// resolveTarget находит диалог сообщения. conversation_id имеет приоритет
// над exchange_request_id.
func (h *MessageHandler) resolveTarget(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*models.Conversation, error) {
	if req.ConversationID != nil {
		conv, err := h.db.GetConversation(req.ConversationID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("conversation not found")
			}
			return nil, apperr.Internal("failed to load conversation", err)
		}
		if !conv.HasParticipant(senderID) {
			return nil, apperr.Forbidden("you are not a participant of this conversation")
		}
		return conv, nil
	}

	exchange, err := h.exchanges.GetExchange(ctx, req.ExchangeRequestID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("exchange request not found")
		}
		return nil, apperr.Internal("failed to load exchange request", err)
	}

	if !exchange.Involves(senderID) {
		return nil, apperr.Forbidden("you are not a party of this exchange request")
	}

	exchangeID := exchange.ID
	conv, err := h.db.ResolveConversation(exchange.RequesterID, exchange.OwnerID, &exchangeID)
	if err != nil {
		return nil, apperr.Internal("failed to resolve conversation", err)
	}
	return conv, nil
}

// Send проводит сообщение через весь конвейер. После коммита — best-effort
// fan-out обоим участникам (все устройства отправителя тоже получают событие).
func (h *MessageHandler) Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content, err := validateSendRequest(req)
	if err != nil {
		return nil, err
	}

	allowed, err := h.trust.MaySend(ctx, senderID)
	if err != nil {
		return nil, apperr.Internal("trust gate check failed", err)
	}
	if !allowed {
		return nil, apperr.Forbidden("sending messages is blocked by your trust score")
	}

	conv, err := h.resolveTarget(ctx, senderID, req)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		Type:           "text",
		CreatedAt:      time.Now(),
	}
	if att := req.Attachment; att != nil {
		message.AttachmentURL = att.URL
		message.AttachmentType = att.Type
		message.AttachmentName = att.Name
		message.AttachmentSize = att.Size
	}

	if err := h.db.CreateMessage(message, conv); err != nil {
		return nil, apperr.Internal("failed to save message", err)
	}

	sender, err := h.db.GetMember(senderID.String())
	if err != nil {
		log.Printf("Failed to load sender %s: %v", senderID, err)
	}

	response := buildMessageResponse(message, sender)
	h.fanOutMessage(conv, senderID, response)

	go h.db.UpdateLastSeen(senderID.String())

	return response, nil
}

// SendSystem проводит системное сообщение (событие обмена) тем же конвейером,
// что и пользовательские: тот же счетчик непрочитанных, тот же fan-out
func (h *MessageHandler) SendSystem(conv *models.Conversation, actorID uuid.UUID, content string) (*dto.MessageResponse, error) {
	message := &models.Message{
		ConversationID: conv.ID,
		SenderID:       actorID,
		Content:        content,
		Type:           "system",
		CreatedAt:      time.Now(),
	}

	if err := h.db.CreateMessage(message, conv); err != nil {
		return nil, apperr.Internal("failed to save system message", err)
	}

	response := buildMessageResponse(message, nil)
	h.fanOutMessage(conv, actorID, response)

	return response, nil
}

func (h *MessageHandler) fanOutMessage(conv *models.Conversation, senderID uuid.UUID, response *dto.MessageResponse) {
	recipientID := conv.OtherParticipant(senderID)

	h.hub.PushToMember(recipientID, websocket.EventMessageNew, response)
	h.hub.PushToMember(senderID, websocket.EventMessageNew, response)

	if fresh, err := h.db.GetConversation(conv.ID.String()); err == nil {
		convID := fresh.ID
		h.hub.PushToMember(recipientID, websocket.EventUnreadCount, dto.UnreadCountUpdate{
			ConversationID: &convID,
			Unread:         int64(fresh.UnreadFor(recipientID)),
		})
	}
}

// MarkRead помечает прочитанным весь диалог или перечисленные сообщения.
// Идемпотентна: уже прочитанные просто не попадают в квитанцию.
func (h *MessageHandler) MarkRead(memberID, conversationID uuid.UUID, messageIDs []uuid.UUID) (*dto.ReadReceipt, error) {
	conv, err := h.db.GetConversation(conversationID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("conversation not found")
		}
		return nil, apperr.Internal("failed to load conversation", err)
	}

	if !conv.HasParticipant(memberID) {
		return nil, apperr.Forbidden("you are not a participant of this conversation")
	}

	var ids []uuid.UUID
	if len(messageIDs) == 0 {
		ids, err = h.db.MarkConversationRead(conv, memberID)
	} else {
		ids, err = h.db.MarkMessagesRead(conv, memberID, messageIDs)
	}
	if err != nil {
		return nil, apperr.Internal("failed to mark messages read", err)
	}

	receipt := &dto.ReadReceipt{
		ConversationID: conv.ID,
		ReaderID:       memberID,
		MessageIDs:     ids,
	}

	if len(ids) > 0 {
		h.hub.PushToMember(conv.OtherParticipant(memberID), websocket.EventMessageRead, receipt)
	}

	if fresh, err := h.db.GetConversation(conv.ID.String()); err == nil {
		convID := fresh.ID
		h.hub.PushToMember(memberID, websocket.EventUnreadCount, dto.UnreadCountUpdate{
			ConversationID: &convID,
			Unread:         int64(fresh.UnreadFor(memberID)),
		})
	}

	return receipt, nil
}

// Delete — soft-delete своего сообщения. Повторное удаление — no-op.
func (h *MessageHandler) Delete(memberID, messageID uuid.UUID) error {
	message, err := h.db.GetMessageAny(messageID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("message not found")
		}
		return apperr.Internal("failed to load message", err)
	}

	if message.SenderID != memberID {
		return apperr.NotFound("message not found")
	}

	if message.DeletedAt.Valid {
		return nil
	}

	if err := h.db.SoftDeleteMessage(messageID.String()); err != nil {
		return apperr.Internal("failed to delete message", err)
	}

	conv, err := h.db.GetConversation(message.ConversationID.String())
	if err != nil {
		log.Printf("Failed to load conversation for deleted message %s: %v", messageID, err)
		return nil
	}

	deleted := dto.DeletedMessage{
		MessageID:      message.ID,
		ConversationID: message.ConversationID,
	}
	h.hub.PushToMember(conv.ParticipantAID, websocket.EventMessageDeleted, deleted)
	h.hub.PushToMember(conv.ParticipantBID, websocket.EventMessageDeleted, deleted)

	return nil
}

// History отдает окно истории в каноническом порядке (created_at, id).
// Воспроизведение истории дает ту же последовательность, что и live-поток.
func (h *MessageHandler) History(memberID uuid.UUID, conversationID string, limit int, beforeID *uuid.UUID) ([]dto.MessageResponse, error) {
	conv, err := h.db.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("conversation not found")
		}
		return nil, apperr.Internal("failed to load conversation", err)
	}

	if !conv.HasParticipant(memberID) {
		return nil, apperr.Forbidden("you are not a participant of this conversation")
	}

	messages, err := h.db.GetConversationMessages(conversationID, limit, beforeID)
	if err != nil {
		return nil, apperr.Internal("failed to load messages", err)
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *buildMessageResponse(&messages[i], &messages[i].Sender)
	}

	return responses, nil
}

// HandleEnvelope — входящие операции по сокету, тот же конвейер, что и REST
func (h *MessageHandler) HandleEnvelope(client *websocket.Client, envelope *websocket.Envelope) error {
	switch envelope.Type {
	case websocket.TypeSendMessage:
		var req dto.SendMessageRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			return websocket.ErrInvalidEnvelope
		}
		// Ответ придет событием message:new на все сокеты отправителя
		_, err := h.Send(context.Background(), client.MemberID, &req)
		return err

	case websocket.TypeMarkRead:
		var req dto.MarkReadRequest
		if err := json.Unmarshal(envelope.Data, &req); err != nil {
			return websocket.ErrInvalidEnvelope
		}
		if req.ConversationID == nil {
			return websocket.ErrInvalidEnvelope
		}
		_, err := h.MarkRead(client.MemberID, *req.ConversationID, req.MessageIDs)
		return err

	default:
		log.Printf("Unknown envelope type: %s", envelope.Type)
		return nil
	}
}

func buildMessageResponse(message *models.Message, sender *models.Member) *dto.MessageResponse {
	response := &dto.MessageResponse{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		Type:           message.Type,
		CreatedAt:      message.CreatedAt,
		ReadAt:         message.ReadAt,
	}

	if message.HasAttachment() {
		response.Attachment = &dto.AttachmentPayload{
			URL:  message.AttachmentURL,
			Type: message.AttachmentType,
			Name: message.AttachmentName,
			Size: message.AttachmentSize,
		}
	}

	if sender != nil && sender.ID != uuid.Nil {
		response.Sender = &dto.MemberInfo{
			ID:        sender.ID,
			Username:  sender.Username,
			AvatarURL: sender.AvatarURL,
		}
	}

	return response
}
