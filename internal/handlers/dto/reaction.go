package dto

import "github.com/google/uuid"

type ReactRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// ReactionGroup — агрегат по одному эмодзи. Reacted считается на лету
// для запросившего и не хранится.
type ReactionGroup struct {
	Emoji     string      `json:"emoji"`
	Count     int         `json:"count"`
	MemberIDs []uuid.UUID `json:"member_ids"`
	Reacted   bool        `json:"reacted"`
}

// ReactionAggregate — полное состояние реакций сообщения, рассылается
// целиком, а не дельтой, чтобы клиенты не расходились
type ReactionAggregate struct {
	MessageID      uuid.UUID       `json:"message_id"`
	ConversationID uuid.UUID       `json:"conversation_id"`
	Groups         []ReactionGroup `json:"groups"`
}
