package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"slserver/models"
	"slserver/store"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub はルームごとの接続クライアント一覧を持ち、ストアの購読チャンネルから届く
// コミット済みドキュメントを全員に配信する。購読はルームごとに1本だけ張る。
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[*models.Client]bool
	unsubs map[string]func()
	st     *store.RoomStore
	logger *zap.Logger
}

func NewHub(st *store.RoomStore, logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*models.Client]bool),
		unsubs: make(map[string]func()),
		st:     st,
		logger: logger,
	}
}

// Join はクライアントをルームの配信対象に加える。
// そのルームの最初のクライアントなら、ストアの変更購読を開始する。
func (h *Hub) Join(ctx context.Context, client *models.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := client.RoomCode
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*models.Client]bool)
		h.unsubs[code] = h.st.Subscribe(ctx, code, func(room *models.Room) {
			h.push(code, room)
		})
	}
	h.rooms[code][client] = true
	h.logger.Info("Client joined broadcast",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", code))
}

// Leave はクライアントを配信対象から外す。最後の1人が抜けたら購読も解除する。
func (h *Hub) Leave(client *models.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	code := client.RoomCode
	clients := h.rooms[code]
	if clients == nil {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.rooms, code)
		if unsub := h.unsubs[code]; unsub != nil {
			unsub()
		}
		delete(h.unsubs, code)
	}
	h.logger.Info("Client left broadcast",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", code))
}

// SendState は1クライアントだけに現在のルーム状態を送る（接続直後の初期表示用）。
func (h *Hub) SendState(client *models.Client, room *models.Room) {
	payload, err := json.Marshal(map[string]interface{}{"type": "state", "room": room})
	if err != nil {
		h.logger.Error("Failed to encode state message", zap.Error(err))
		return
	}
	if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.logger.Error("Failed to send state", zap.Uint("UserID", client.UserID), zap.Error(err))
	}
}

// push はコミット済みの新しい状態をルーム全員に配る。roomがnilならルーム削除通知。
func (h *Hub) push(code string, room *models.Room) {
	var payload []byte
	var err error
	if room == nil {
		payload, err = json.Marshal(map[string]interface{}{"type": "roomDeleted"})
	} else {
		payload, err = json.Marshal(map[string]interface{}{"type": "state", "room": room})
	}
	if err != nil {
		h.logger.Error("Failed to encode broadcast message", zap.Error(err))
		return
	}

	h.mu.Lock()
	clients := make([]*models.Client, 0, len(h.rooms[code]))
	for client := range h.rooms[code] {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Error("Failed to push state",
				zap.Uint("UserID", client.UserID), zap.String("RoomCode", code), zap.Error(err))
		}
	}
}
