package connection

import (
	"fmt"
	"net/http"
	"strings"

	"slserver/auth"
	"slserver/models"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ClientContext はWebSocket接続時に確定するクライアントの身元情報。
type ClientContext struct {
	UserID uint
	Name   string
	Claims *models.MyClaims
}

// TokenValidation はAuthorizationヘッダまたはクエリパラメータのJWTを検証する。
// ブラウザのWebSocket APIはヘッダを付けられないためクエリも受け付ける。
func TokenValidation(r *http.Request, logger *zap.Logger) (*models.MyClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if strings.HasPrefix(tokenString, "Bearer ") {
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}
	if tokenString == "" {
		tokenString = r.URL.Query().Get("token")
	}

	claims := &models.MyClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JwtKey, nil
	})
	if err != nil || !token.Valid {
		logger.Error("Failed to validate token", zap.Error(err))
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return claims, nil
}

// FetchClientContext はトークンを検証し、usersテーブルの表示名と合わせて
// クライアントコンテキストを返す。ルーム所属の確認は呼び出し側が
// ルームドキュメント自体に対して行う（ドキュメントが所属の正）。
func FetchClientContext(r *http.Request, db *gorm.DB, logger *zap.Logger) (*ClientContext, error) {
	claims, err := TokenValidation(r, logger)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		logger.Error("Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("user fetch failed: %w", err)
	}

	name := user.DisplayName
	if name == "" {
		name = claims.DisplayName
	}

	return &ClientContext{
		UserID: claims.UserID,
		Name:   name,
		Claims: claims,
	}, nil
}
