package utils

import (
	"context"
	"time"

	"slserver/game"
	"slserver/models"
	"slserver/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CronCleaner は放置ルームの定期クリーンナップ。
// Redis側のドキュメントはTTLでも消えるが、台帳とドキュメントの両方を
// ここで揃えて片付ける。
func CronCleaner(db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	c := cron.New()

	// 24時間更新がないルームをexpiredに更新するジョブ（毎日実行）
	c.AddFunc("@daily", func() {
		logger.Info("放置ルームをexpiredに更新する処理を開始")
		expiredCodes := []string{}
		db.Model(&models.RoomRecord{}).
			Where("game_state IN ? AND updated_at <= ?",
				[]string{game.PhaseLobby, game.PhasePlacing, game.PhasePlaying},
				time.Now().Add(-24*time.Hour)).
			Pluck("room_code", &expiredCodes)

		db.Model(&models.RoomRecord{}).
			Where("room_code IN ?", expiredCodes).
			Update("game_state", "expired")

		// 対応するRedisドキュメントも削除し、残っている購読者に通知する
		ctx := context.Background()
		for _, code := range expiredCodes {
			if err := st.Delete(ctx, code); err != nil {
				logger.Error("期限切れルームのドキュメント削除に失敗しました",
					zap.String("RoomCode", code), zap.Error(err))
			}
		}
		if len(expiredCodes) > 0 {
			logger.Info("放置ルームを失効させました", zap.Int("rooms_expired", len(expiredCodes)))
		}
	})

	// expired・finished状態の台帳行を削除するジョブ（"分 時 日 月 曜日"）
	c.AddFunc("0 3 * * *", func() {
		logger.Info("終了済みルームの台帳行を削除する処理を開始")
		result := db.Where("game_state IN ? AND updated_at <= ?",
			[]string{"expired", game.PhaseFinished},
			time.Now().Add(-48*time.Hour)).
			Delete(&models.RoomRecord{})
		if result.Error != nil {
			logger.Error("台帳行の削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("台帳行の削除完了", zap.Int("rooms_deleted", int(result.RowsAffected)))
		}
	})

	c.Start()
}
