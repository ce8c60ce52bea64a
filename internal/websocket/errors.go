package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidEnvelope = errors.New("invalid envelope format")
)
