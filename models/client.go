package models

import (
	"github.com/gorilla/websocket"
)

// Websocketクライアントを定義
type Client struct {
	Conn     *websocket.Conn
	UserID   uint   // JWTから抽出したユーザーID
	RoomCode string // 接続先ルームの6文字コード
	Name     string // 表示名
}
