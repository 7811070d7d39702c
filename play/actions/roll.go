package actions

import (
	"context"
	"math/rand"
	"time"

	"slserver/game"
	"slserver/models"
	"slserver/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// handleRoll は手番プレイヤーのサイコロ処理。解決全体（パワー効果・移動・
// ボックス取得・勝利判定・手番送り）が1つの楽観的トランザクションで確定する。
func handleRoll(ctx context.Context, client *models.Client, st *store.RoomStore, db *gorm.DB, randGen *rand.Rand, logger *zap.Logger) {
	var result *game.RollResult

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		r, err := game.ApplyRoll(room, client.UserID, randGen, time.Now())
		if err != nil {
			return nil, err
		}
		result = r
		return room, nil
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		logger.Info("Roll rejected",
			zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode), zap.Error(err))
		return
	}

	logger.Info("Roll resolved",
		zap.Uint("UserID", client.UserID),
		zap.String("RoomCode", client.RoomCode),
		zap.Int("roll", result.Roll),
		zap.Ints("path", result.Path),
		zap.Bool("won", result.Won))

	if result.Note != "" {
		sendInfoMessage(client, result.Note)
	}

	if result.Won {
		finalizeRoomRecord(db, client.RoomCode, client.UserID, logger)
	}
}

// ゲーム終了時に台帳へ終了時刻と勝者を記録する
func finalizeRoomRecord(db *gorm.DB, roomCode string, winnerID uint, logger *zap.Logger) {
	err := db.Model(&models.RoomRecord{}).
		Where("room_code = ?", roomCode).
		Updates(map[string]interface{}{
			"game_state":  game.PhaseFinished,
			"finish_time": time.Now().Unix(),
			"winner_id":   winnerID,
		}).Error
	if err != nil {
		logger.Error("Failed to finalize room record", zap.String("RoomCode", roomCode), zap.Error(err))
	}
}

// gameErrorText は型付きゲームエラーをクライアント向けメッセージに変換する
func gameErrorText(err error) string {
	switch e := err.(type) {
	case *game.ValidationError:
		return e.Msg
	case *game.PreconditionError:
		return e.Msg
	default:
		return "Action failed"
	}
}
