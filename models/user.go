package models

import (
	"gorm.io/gorm"
)

// User モデルの定義。JWT発行時に1行作成され、オートインクリメントIDが
// そのままルームドキュメント内のプレイヤーIDになる。
type User struct {
	gorm.Model
	DisplayName string `gorm:"not null"` // 表示名。未指定の場合はランダム生成名
}
