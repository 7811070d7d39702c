package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"slserver/game"
	"slserver/middlewares"
	"slserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler はプレイヤー識別用トークンの発行・更新を行うハンドラです。
// 既存トークンが有効ならそのまま（期限間近なら更新して）返し、
// なければ新規ユーザーを作成してトークンを発行する。
func AuthHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var request models.AuthRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Auth request bind error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	displayName := request.DisplayName
	if displayName == "" {
		// 表示名未入力ならランダム名を割り当てる
		randGen := rand.New(rand.NewSource(time.Now().UnixNano()))
		displayName = game.RandomName(randGen)
	}

	if request.Token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+request.Token)
	}

	userID, newToken, tokenValid, err := middlewares.TokenAuthentication(c, db, logger, displayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
		return
	}

	if newToken != "" {
		c.JSON(http.StatusOK, gin.H{"token": newToken, "userId": userID, "displayName": displayName})
		return
	}
	if tokenValid {
		c.JSON(http.StatusOK, gin.H{"message": "認証成功", "userId": userID})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "認証失敗"})
}
