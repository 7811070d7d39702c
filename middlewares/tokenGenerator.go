package middlewares

import (
	"time"

	"slserver/auth"
	"slserver/models"

	"gorm.io/gorm"

	jwt "github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

const tokenLifetime = 72 * time.Hour

// GenerateToken はJWTトークンを生成する。existingUserIDが0なら
// 新しいユーザー行を作成し、そのオートインクリメントIDをプレイヤーIDとして使う。
func GenerateToken(db *gorm.DB, logger *zap.Logger, displayName string, existingUserID uint) (string, uint, error) {
	var userID uint
	var err error

	if existingUserID > 0 {
		// 既存のユーザーIDを再利用
		userID = existingUserID
	} else {
		// 新しいユーザーIDを生成
		userID, err = GenerateUserID(db, logger, displayName)
		if err != nil {
			logger.Error("トークン生成中にエラー発生", zap.Error(err))
			return "", 0, err
		}
	}

	expirationTime := time.Now().Add(tokenLifetime)

	// JWTトークン生成時に内包するデータ
	claims := &models.MyClaims{
		UserID:      userID,
		DisplayName: displayName,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JwtKey)

	return tokenString, userID, err
}

// GORMによるオートインクリメントユーザーIDを生成する関数
func GenerateUserID(db *gorm.DB, logger *zap.Logger, displayName string) (uint, error) {
	user := models.User{
		DisplayName: displayName,
	}
	if err := db.Create(&user).Error; err != nil {
		logger.Error("ユーザーID生成中にエラー発生", zap.Error(err))
		return 0, err
	}
	return user.ID, nil
}
