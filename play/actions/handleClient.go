package actions

import (
	"context"
	"encoding/json"
	"math/rand"

	"slserver/models"
	"slserver/store"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// クライアントごとにメッセージ読み取りするゴルーチン。
// すべてのゲーム操作はここで受けてストアへの1トランザクションに変換される。
func HandleClient(ctx context.Context, client *models.Client, st *store.RoomStore, db *gorm.DB, randGen *rand.Rand, logger *zap.Logger) {
	defer client.Conn.Close()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		// 受信したメッセージをJSON形式でデコード
		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Error("Error decoding message", zap.Error(err))
			continue
		}

		msgType, _ := msg["type"].(string)
		switch msgType {
		case "roll":
			handleRoll(ctx, client, st, db, randGen, logger)
		case "placeLadderSnake":
			handlePlaceLadderSnake(ctx, client, msg, st, logger)
		case "placeBox":
			handlePlaceBox(ctx, client, msg, st, logger)
		case "deletePlacement":
			handleDeletePlacement(ctx, client, msg, st, logger)
		case "toggleReady":
			handleToggleReady(ctx, client, st, logger)
		case "usePower":
			handleUsePower(ctx, client, msg, st, logger)
		case "reaction":
			handleReaction(ctx, client, msg, st, logger)
		case "changePhase":
			handleChangePhase(ctx, client, msg, st, db, logger)
		case "startGame":
			handleStartGame(ctx, client, st, db, logger)
		case "clearAnim":
			handleClearAnim(ctx, client, msg, st, logger)
		default:
			logger.Info("Received unknown message type", zap.Any("message", msg))
		}
	}
}

// Helper function to send error message to the client via WebSocket
func sendErrorMessage(client *models.Client, errorMessage string) {
	errorResponse := map[string]string{"error": errorMessage}
	errorJSON, _ := json.Marshal(errorResponse)
	client.Conn.WriteMessage(websocket.TextMessage, errorJSON) // Ignoring error for simplicity
}

// 「あとNでゴール」のような情報メッセージをそのクライアントだけに送る
func sendInfoMessage(client *models.Client, message string) {
	infoResponse := map[string]string{"type": "info", "message": message}
	infoJSON, _ := json.Marshal(infoResponse)
	client.Conn.WriteMessage(websocket.TextMessage, infoJSON)
}

// msgからintフィールドを取り出す。JSONの数値はfloat64としてデコードされる
func intField(msg map[string]interface{}, key string) (int, bool) {
	value, ok := msg[key].(float64)
	if !ok {
		return 0, false
	}
	return int(value), true
}

func stringField(msg map[string]interface{}, key string) (string, bool) {
	value, ok := msg[key].(string)
	return value, ok
}
