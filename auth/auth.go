package auth

import (
	"os"

	"slserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// JwtKey はトークン署名鍵。本番環境では必ず環境変数で設定すること。
var JwtKey = []byte(jwtKeyFromEnv())

func jwtKeyFromEnv() string {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key
	}
	return "dev-only-secret" // ローカル開発用のデフォルト
}

func IsValidToken(tokenString string) (bool, error) {
	claims := &models.MyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})

	if err != nil {
		return false, err
	}

	return token.Valid, nil
}
