package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// MyClaims はJWTクレームの構造体定義です。
type MyClaims struct {
	UserID      uint   `json:"userid"`
	DisplayName string `json:"displayName"`
	jwt.StandardClaims
}
