package game

import (
	"math/rand"
	"strings"
	"time"

	"slserver/models"
)

// DefaultRoomState は作成直後・リセット後のルーム状態を返す。
// hostIdだけが引き継がれ、プレイヤーと設置物はすべて消える。
func DefaultRoomState(hostID uint, now time.Time) *models.Room {
	return &models.Room{
		Status:    PhaseLobby,
		HostID:    hostID,
		TurnIndex: 0,
		CreatedAt: now.UnixMilli(),
		Players:   []models.Player{},
	}
}

// NewPlayer は参加直後のプレイヤーを返す。位置はスタートマス、設置物は空。
func NewPlayer(id uint, name, color string) models.Player {
	return models.Player{
		ID:    id,
		Name:  name,
		Color: color,
		Pos:   StartCell,
		Placements: models.Placements{
			Ladders: []models.Link{},
			Snakes:  []models.Link{},
		},
	}
}

// ChooseUniqueColor は参加プレイヤーと重複しない色を選ぶ。
// 希望色が空いていればそれを、埋まっていればパレットの先頭から未使用色を返す。
// 6色すべて使用中の場合のみ重複を許し、ランダムに1色返す（エラーにはしない）。
func ChooseUniqueColor(players []models.Player, preferred string, randGen *rand.Rand) string {
	used := make(map[string]bool, len(players))
	for _, p := range players {
		used[strings.ToLower(p.Color)] = true
	}

	if preferred == "" {
		preferred = ColorPalette[0]
	}
	if !used[strings.ToLower(preferred)] {
		return preferred
	}
	for _, color := range ColorPalette {
		if !used[strings.ToLower(color)] {
			return color
		}
	}
	return ColorPalette[randGen.Intn(len(ColorPalette))]
}

// AggregatedPlacements は全プレイヤーの設置物を解決用にまとめたもの。
// プレイヤーは他人のハシゴ・ヘビ・ボックスにも乗る。
type AggregatedPlacements struct {
	Ladders []models.Link
	Snakes  []models.Link
}

// AggregatePlacements は移動解決時点の全設置物の合算を返す。
func AggregatePlacements(room *models.Room) AggregatedPlacements {
	var agg AggregatedPlacements
	for _, p := range room.Players {
		agg.Ladders = append(agg.Ladders, p.Placements.Ladders...)
		agg.Snakes = append(agg.Snakes, p.Placements.Snakes...)
	}
	return agg
}

// NormalizeTurnIndex はTurnIndexを[0, len(players))に正規化する。
// 退出などでインデックスがずれてもここで吸収する。
func NormalizeTurnIndex(turnIndex, playerCount int) int {
	if playerCount <= 0 {
		return 0
	}
	return ((turnIndex % playerCount) + playerCount) % playerCount
}

// FindPlayer はIDでプレイヤーを探し、見つかればそのポインタとインデックスを返す。
func FindPlayer(room *models.Room, playerID uint) (*models.Player, int) {
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return &room.Players[i], i
		}
	}
	return nil, -1
}

// Clamp はvalueを[min,max]に収める。
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

var randomNameAdjectives = []string{"Swift", "Bold", "Calm", "Lucky", "Neon", "Cosmic", "Turbo", "Zen", "Witty", "Merry"}
var randomNameAnimals = []string{"Fox", "Otter", "Panda", "Koala", "Hawk", "Whale", "Tiger", "Yak", "Raven", "Moose"}

// RandomName は表示名が未入力のプレイヤー用のランダム名を返す。
func RandomName(randGen *rand.Rand) string {
	return randomNameAdjectives[randGen.Intn(len(randomNameAdjectives))] + " " +
		randomNameAnimals[randGen.Intn(len(randomNameAnimals))]
}
