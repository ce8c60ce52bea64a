package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Максимальный размер кадра
	maxMessageSize = 64 * 1024 // 64KB
)

// Client — эфемерная пара (участник, сокет), живет только в памяти процесса
type Client struct {
	ID       uuid.UUID
	MemberID uuid.UUID
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

type InboundHandler interface {
	HandleEnvelope(client *Client, envelope *Envelope) error
}

func NewClient(hub *Hub, conn *websocket.Conn, memberID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New(),
		MemberID: memberID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}
}

// ReadPump читает кадры от клиента. Обрыв сокета сносит только
// регистрацию присутствия, запущенные durable-операции доезжают сами.
func (c *Client) ReadPump(handler InboundHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var envelope Envelope
		err := c.Conn.ReadJSON(&envelope)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		envelope.MemberID = c.MemberID

		if envelope.Type == TypePong {
			continue
		}

		if handler != nil {
			if err := handler.HandleEnvelope(c, &envelope); err != nil {
				log.Printf("Error handling %s: %v", envelope.Type, err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет кадры клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker((pongWait * 9) / 10)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendEvent(event EventType, data interface{}) error {
	envelope := Envelope{
		Type:      event,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		envelope.Data = jsonData
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	select {
	case c.Send <- frame:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendEvent(TypeError, map[string]string{
		"error": errorMsg,
	})
}
