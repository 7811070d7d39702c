package screens

import (
	"net/http"
	"time"

	"slserver/game"
	"slserver/middlewares"
	"slserver/models"
	"slserver/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoomReset はホスト専用のリセットハンドラです。
// hostIdだけ引き継いだ初期lobby状態にドキュメントを差し替える。
func RoomReset(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	userID := middlewares.GetUserID(c)

	code := game.ValidateRoomCode(c.Query("room"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
		return
	}

	_, err := st.Transact(c.Request.Context(), code, func(room *models.Room) (*models.Room, error) {
		return game.ResetRoom(room, userID, time.Now())
	})
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if err := db.Model(&models.RoomRecord{}).
		Where("room_code = ?", code).
		Update("game_state", game.PhaseLobby).Error; err != nil {
		logger.Error("Failed to update room record", zap.String("RoomCode", code), zap.Error(err))
	}

	logger.Info("Room reset", zap.String("RoomCode", code), zap.Uint("UserID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Room reset"})
}

// RoomDelete はホスト専用の削除ハンドラです。ドキュメントと台帳の両方を消す。
func RoomDelete(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	userID := middlewares.GetUserID(c)

	code := game.ValidateRoomCode(c.Query("room"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
		return
	}

	room, err := st.Get(c.Request.Context(), code)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	if room.HostID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": game.ErrNotHost.Msg})
		return
	}

	if err := st.Delete(c.Request.Context(), code); err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	if err := db.Where("room_code = ?", code).Delete(&models.RoomRecord{}).Error; err != nil {
		logger.Error("Failed to delete room record", zap.String("RoomCode", code), zap.Error(err))
	}

	logger.Info("Room deleted", zap.String("RoomCode", code), zap.Uint("UserID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// RoomInfo は現在のルーム状態とパワー説明（UIツールチップ用）を返す。
func RoomInfo(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	code := game.ValidateRoomCode(c.Query("room"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
		return
	}

	room, err := st.Get(c.Request.Context(), code)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   code,
		"room":   room,
		"powers": game.PowerDescriptions,
	})
}
