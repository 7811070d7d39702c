package models

// AuthRequest はトークン発行リクエストのボディ。
// 既存トークンがあれば検証・更新し、なければ新規ユーザーを作成する。
type AuthRequest struct {
	Token       string `json:"token"`
	DisplayName string `json:"displayName"`
}

// RoomActionRequest はルーム作成・参加リクエストのボディ。
// Codeが空のままルーム作成した場合はサーバー側で採番する。
type RoomActionRequest struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
