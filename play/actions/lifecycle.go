package actions

import (
	"context"
	"time"

	"slserver/game"
	"slserver/models"
	"slserver/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// handleChangePhase はホスト専用のフェーズ変更（lobby→placingなど）。
func handleChangePhase(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, db *gorm.DB, logger *zap.Logger) {
	phase, ok := stringField(msg, "phase")
	if !ok {
		sendErrorMessage(client, "Invalid phase")
		return
	}

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.ChangePhase(room, client.UserID, phase)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
	updateRecordState(db, client.RoomCode, phase, logger)
	logger.Info("Phase changed",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode), zap.String("phase", phase))
}

// handleStartGame はホスト専用のゲーム開始。全員のready・設置完了が条件。
func handleStartGame(ctx context.Context, client *models.Client, st *store.RoomStore, db *gorm.DB, logger *zap.Logger) {
	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.StartGame(room, client.UserID)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
	updateRecordState(db, client.RoomCode, game.PhasePlaying, logger)
	logger.Info("Game started",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode))
}

// handleClearAnim はアニメーションロックの解除。アニメの当事者は再生完了を
// 無条件で通知でき、それ以外のクライアントは期限切れの場合だけクリアできる（冪等）。
func handleClearAnim(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	force, _ := msg["force"].(bool)

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		actorForce := force && room.Anim != nil && room.Anim.ActorID == client.UserID
		game.ClearAnim(room, time.Now(), actorForce)
		return room, nil
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
	}
}

// 台帳のゲーム状態を追従させる。失敗してもゲーム進行は止めない
func updateRecordState(db *gorm.DB, roomCode, state string, logger *zap.Logger) {
	err := db.Model(&models.RoomRecord{}).
		Where("room_code = ?", roomCode).
		Update("game_state", state).Error
	if err != nil {
		logger.Error("Failed to update room record state", zap.String("RoomCode", roomCode), zap.Error(err))
	}
}
