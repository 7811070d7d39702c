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

// RoomCreate はルーム作成ハンドラです。作成者がホストかつ最初のプレイヤーになる。
// コードが空なら採番し、指定されたコードが使用中ならエラーを返す。
func RoomCreate(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	userID := middlewares.GetUserID(c)

	var request models.RoomActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room create request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	randGen := createLocalRandGenerator()

	code := game.GenerateRoomCode(randGen)
	if request.Code != "" {
		code = game.ValidateRoomCode(request.Code)
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
			return
		}
	}

	name := request.Name
	if name == "" {
		name = middlewares.GetDisplayName(c)
	}
	if name == "" {
		name = game.RandomName(randGen)
	}

	now := time.Now()
	room := game.DefaultRoomState(userID, now)
	color := game.ChooseUniqueColor(room.Players, request.Color, randGen)
	if err := game.AddPlayer(room, game.NewPlayer(userID, name, color)); err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if err := st.Create(c.Request.Context(), code, room); err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	// 台帳にも1行追加。ライブ状態はあくまでRedis側のドキュメントが持つ
	record := models.RoomRecord{
		RoomCode:     code,
		HostID:       userID,
		GameState:    game.PhaseLobby,
		CreationTime: now.Unix(),
	}
	if err := db.Create(&record).Error; err != nil {
		logger.Error("Failed to create room record", zap.String("RoomCode", code), zap.Error(err))
	}

	logger.Info("Room created", zap.String("RoomCode", code), zap.Uint("HostID", userID))
	c.JSON(http.StatusOK, gin.H{"code": code, "room": room})
}
