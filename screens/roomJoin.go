package screens

import (
	"net/http"

	"slserver/game"
	"slserver/middlewares"
	"slserver/models"
	"slserver/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoomJoin はルーム参加ハンドラです。二重参加はそのまま成功扱い（冪等）、
// 満室はエラー。カラーは参加時点の他プレイヤーと重複しないよう選ばれる。
func RoomJoin(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	userID := middlewares.GetUserID(c)

	var request models.RoomActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Room join request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := game.ValidateRoomCode(request.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
		return
	}

	randGen := createLocalRandGenerator()
	name := request.Name
	if name == "" {
		name = middlewares.GetDisplayName(c)
	}
	if name == "" {
		name = game.RandomName(randGen)
	}

	room, err := st.Transact(c.Request.Context(), code, func(room *models.Room) (*models.Room, error) {
		color := game.ChooseUniqueColor(room.Players, request.Color, randGen)
		return room, game.AddPlayer(room, game.NewPlayer(userID, name, color))
	})
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Info("Player joined room", zap.String("RoomCode", code), zap.Uint("UserID", userID))
	c.JSON(http.StatusOK, gin.H{"code": code, "room": room})
}

// RoomLeave はルーム退出ハンドラです。手番インデックスは書き換えず、
// 読み手側の正規化でずれを吸収する。
func RoomLeave(c *gin.Context, db *gorm.DB, st *store.RoomStore, logger *zap.Logger) {
	userID := middlewares.GetUserID(c)

	code := game.ValidateRoomCode(c.Query("room"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 6-character room code"})
		return
	}

	_, err := st.Transact(c.Request.Context(), code, func(room *models.Room) (*models.Room, error) {
		game.RemovePlayer(room, userID)
		return room, nil
	})
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Info("Player left room", zap.String("RoomCode", code), zap.Uint("UserID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Left room"})
}
