package dto

import (
	"github.com/google/uuid"
	"time"
)

// ResolveConversationRequest — либо peer_id, либо exchange_request_id
type ResolveConversationRequest struct {
	PeerID            *uuid.UUID `json:"peer_id"`
	ExchangeRequestID *uuid.UUID `json:"exchange_request_id"`
}

// ConversationResponse — диалог глазами запросившего участника
type ConversationResponse struct {
	ID                uuid.UUID   `json:"id"`
	ExchangeRequestID *uuid.UUID  `json:"exchange_request_id,omitempty"`
	Peer              *MemberInfo `json:"peer,omitempty"`
	PeerID            uuid.UUID   `json:"peer_id"`
	LastMessage       string      `json:"last_message,omitempty"`
	LastMessageAt     *time.Time  `json:"last_message_at,omitempty"`
	Unread            int         `json:"unread"`
	CreatedAt         time.Time   `json:"created_at"`
}
