package game

import "time"

// ゲーム全体の定数
const (
	MaxPlayers = 6   // 1ルームの最大人数
	GoalCell   = 100 // ゴールマス。ちょうど止まらないと勝てない
	StartCell  = 1

	// 1プレイヤーあたりの設置上限
	MaxLaddersPerPlayer = 2
	MaxSnakesPerPlayer  = 2

	// クライアント側の1マスあたりアニメーション時間。animの期限切れ判定に使う
	StepMS = 180 * time.Millisecond
)

// フェーズ
const (
	PhaseLobby    = "lobby"
	PhasePlacing  = "placing"
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// パワーアップ
const (
	PowerBoost      = "BOOST"       // ロールに+2（上限6）
	PowerReroll     = "REROLL"      // 2回振って高い方
	PowerShield     = "SHIELD"      // 次のヘビを無効化
	PowerSwapLeader = "SWAP_LEADER" // 先頭のプレイヤーと位置を交換
	PowerMiniLeap   = "MINI_LEAP"   // 即座に+6マス
)

// Powers は全パワーの一覧。ボックスのパワーが未設定の場合の抽選に使う。
var Powers = []string{PowerBoost, PowerReroll, PowerShield, PowerSwapLeader, PowerMiniLeap}

// PowerDescriptions はUI表示用の説明文。
var PowerDescriptions = map[string]string{
	PowerBoost:      "Add +2 to your roll",
	PowerReroll:     "Roll twice, take the higher",
	PowerShield:     "Ignore the next snake",
	PowerSwapLeader: "Swap positions with the leader",
	PowerMiniLeap:   "Jump forward 6 spaces immediately",
}

// ColorPalette はプレイヤーカラーの固定パレット（6色）。
var ColorPalette = []string{"#ff6b6b", "#4dd2ff", "#ffd166", "#06d6a0", "#f78c6b", "#c792ea"}

// プレイヤー設置モード
const (
	ModeLadder = "ladder"
	ModeSnake  = "snake"
	ModeBox    = "box"
)

// IsPower は文字列が既知のパワー名かどうかを返す。
func IsPower(power string) bool {
	for _, p := range Powers {
		if p == power {
			return true
		}
	}
	return false
}
