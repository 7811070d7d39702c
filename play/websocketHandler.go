package play

import (
	"context"
	"net/http"
	"time"

	"slserver/game"
	"slserver/models"
	"slserver/play/actions"
	"slserver/play/broadcast"
	"slserver/play/connection"
	"slserver/store"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gorilla/websocket"
)

// WebSocket接続へのアップグレードを行う関数。
// 接続はルーム参加（HTTP側）を済ませたプレイヤーだけに許可する。
func HandleConnections(ctx context.Context, w http.ResponseWriter, r *http.Request, db *gorm.DB, st *store.RoomStore, hub *broadcast.Hub, logger *zap.Logger, upgrader websocket.Upgrader) {
	// ユーザーコンテキストの取得
	clientContext, err := connection.FetchClientContext(r, db, logger)
	if err != nil {
		logger.Error("Error fetching client context", zap.Error(err))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	code := game.ValidateRoomCode(r.URL.Query().Get("room"))
	if code == "" {
		http.Error(w, "Invalid room code", http.StatusBadRequest)
		return
	}

	// ルームドキュメント自体が所属の正。未参加ならWebSocketは張らせない
	room, err := st.Get(ctx, code)
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	if player, _ := game.FindPlayer(room, clientContext.UserID); player == nil {
		http.Error(w, "Join the room first", http.StatusForbidden)
		return
	}

	// WebSocket接続へのアップグレードと確立
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := &models.Client{
		Conn:     conn,
		UserID:   clientContext.UserID,
		RoomCode: code,
		Name:     clientContext.Name,
	}
	logger.Info("New client connected",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", code))

	hub.Join(ctx, client)
	hub.SendState(client, room) // 接続直後に現在状態を送る

	// 乱数生成器は接続ごとに1つ（サイコロ・パワー抽選・カラーの重複時フォールバック）
	randGen := createLocalRandGenerator()

	// クライアントごとにメッセージ読み取りゴルーチンを起動
	go func() {
		defer hub.Leave(client)
		actions.HandleClient(ctx, client, st, db, randGen, logger)
	}()

	// Ping/Pongを管理するゴルーチンを起動
	go func(c *models.Client) {
		defer func() {
			c.Conn.Close()
			logger.Info("Client removed", zap.Uint("UserID", c.UserID))
		}()

		// Pongメッセージを受信したら読み取りデッドラインを更新
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.Conn.SetPongHandler(func(string) error {
			c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Error("Error sending ping", zap.Error(err))
				return
			}
		}
	}(client)
}
