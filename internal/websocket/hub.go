package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Hub — процесс-локальный реестр присутствия: какие сокеты принадлежат
// какому участнику. Не персистится, после рестарта собирается заново
// из переподключений. Масштабирование за пределы одного узла — через
// внешний pub/sub, это точка расширения, не часть реестра.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Сокеты по участнику (у одного участника может быть несколько устройств)
	memberClients map[uuid.UUID]map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:       make(map[uuid.UUID]*Client),
		memberClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.memberClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		return
	}

	h.clients[client.ID] = client

	if _, ok := h.memberClients[client.MemberID]; !ok {
		h.memberClients[client.MemberID] = make(map[uuid.UUID]*Client)
	}
	h.memberClients[client.MemberID][client.ID] = client

	log.Printf("Client registered: %s (Member: %s)", client.ID, client.MemberID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		// Пустую запись участника удаляем целиком, чтобы реестр не тек
		if memberClients, ok := h.memberClients[client.MemberID]; ok {
			delete(memberClients, client.ID)
			if len(memberClients) == 0 {
				delete(h.memberClients, client.MemberID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (Member: %s)", client.ID, client.MemberID)
	}
}

// IsOnline отвечает, есть ли у участника живые сокеты
func (h *Hub) IsOnline(memberID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.memberClients[memberID]) > 0
}

// PushToMember доставляет событие на каждый живой сокет участника.
// Никогда не возвращает ошибку вызывающему: его durable-запись уже
// закоммичена, сбой доставки на одном сокете не трогает остальные.
func (h *Hub) PushToMember(memberID uuid.UUID, event EventType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return
	}

	envelope := Envelope{
		Type:      event,
		MemberID:  memberID,
		Data:      data,
		Timestamp: time.Now(),
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.memberClients[memberID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- frame:
			default:
				log.Printf("Client %s send channel full, dropping %s", client.ID, event)
			}
		}
	}
}

// OnlineMembers возвращает список участников онлайн
func (h *Hub) OnlineMembers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]uuid.UUID, 0, len(h.memberClients))
	for memberID := range h.memberClients {
		members = append(members, memberID)
	}
	return members
}

// ConnectionCount возвращает число сокетов участника
func (h *Hub) ConnectionCount(memberID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.memberClients[memberID])
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	envelope := Envelope{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(envelope); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
