package models

import (
	"gorm.io/gorm"
)

// RoomRecord モデルの定義。ライブのゲーム状態はRedis側のRoomドキュメントが持ち、
// こちらは台帳（作成・終了時刻、勝者、クリーンナップ対象の判定）専用。
type RoomRecord struct {
	gorm.Model
	RoomCode     string `gorm:"uniqueIndex;not null"` // 6文字のルームコード
	HostID       uint   `gorm:"not null"`
	GameState    string `gorm:"not null"` // "lobby", "placing", "playing", "finished", "expired"
	CreationTime int64  `gorm:"not null"`
	FinishTime   int64
	WinnerID     uint
}
