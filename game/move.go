package game

import (
	"fmt"
	"math/rand"
	"time"

	"slserver/models"
)

// RollResult は1回のロール解決の結果。パスはアニメーション用に1マスずつ並ぶ。
type RollResult struct {
	Roll int
	Path []int
	Note string // 「あとNでゴール」などの情報メッセージ。エラーではない
	Won  bool
}

// ComputeMovePath はロール値から移動パス（マスの列）を計算する。
// ぴったり100でなければ移動は丸ごとキャンセルされ、パスは現在地1要素のみになる。
// 着地マスでのハザード解決は1回だけ：まずハシゴ（常に優先）、その移動先でヘビを1回判定。
// ヘビはシールド持ちなら無効化され、そのときだけシールドを消費する。連鎖はしない。
func ComputeMovePath(room *models.Room, player *models.Player, roll int) (path []int, note string) {
	start := player.Pos
	if start < StartCell {
		start = StartCell
	}
	path = []int{start}

	target := start + roll
	if target > GoalCell {
		// ちょうど100ルール：超過したら動かない
		note = fmt.Sprintf("%s needs exactly %d to win", player.Name, GoalCell-start)
		return path, note
	}

	for cell := start + 1; cell <= target; cell++ {
		path = append(path, cell)
	}

	agg := AggregatePlacements(room)
	landing := path[len(path)-1]

	for _, ladder := range agg.Ladders {
		if ladder.From == landing {
			path = append(path, ladder.To)
			break
		}
	}

	// ハシゴ移動後のマスでヘビを1回だけ判定する
	current := path[len(path)-1]
	for _, snake := range agg.Snakes {
		if snake.From == current {
			if player.Shield {
				player.Shield = false // 実際にヘビを無効化したときだけ消費
			} else {
				path = append(path, snake.To)
			}
			break
		}
	}

	return path, note
}

// ApplyRoll は手番プレイヤーのサイコロを振り、パワー効果・移動・ボックス取得・
// 勝利判定・手番送りまでを1つのドキュメント更新として適用する。
// 一時効果の適用順序は REROLL → BOOST → MINI_LEAP（位置加算はロールと独立）で固定。
func ApplyRoll(room *models.Room, actorID uint, randGen *rand.Rand, now time.Time) (*RollResult, error) {
	if room.Status != PhasePlaying {
		return nil, &PreconditionError{Msg: "Game not started"}
	}
	if len(room.Players) < 2 {
		return nil, &PreconditionError{Msg: "Need 2+ players"}
	}

	turnIndex := NormalizeTurnIndex(room.TurnIndex, len(room.Players))
	current := &room.Players[turnIndex]
	if current.ID != actorID {
		return nil, &PreconditionError{Msg: fmt.Sprintf("Not your turn - it's %s's turn", current.Name)}
	}

	// animはソフトロック。期限切れなら誰の読み取りでも冪等にクリアしてよい
	if room.Anim != nil {
		if !AnimExpired(room.Anim, now) {
			return nil, &PreconditionError{Msg: "Animation in progress"}
		}
		room.Anim = nil
	}

	roll := 1 + randGen.Intn(6)

	if current.TempReroll {
		second := 1 + randGen.Intn(6)
		if second > roll {
			roll = second
		}
	}
	if current.TempBoost {
		roll = roll + 2
		if roll > 6 {
			roll = 6
		}
	}
	if current.TempMiniLeap {
		current.Pos = Clamp(current.Pos+6, StartCell, GoalCell)
	}
	// 一時効果は使った瞬間に消える（MINI_LEAPで先にゴールしても同じ）
	current.TempReroll = false
	current.TempBoost = false
	current.TempMiniLeap = false

	path, note := ComputeMovePath(room, current, roll)
	current.Pos = path[len(path)-1]

	// ミステリーボックス取得。ロック中（他人が未消費のパワーを持っている間）は全員停止
	if owner := boxOwnerAt(room, current.Pos); owner != nil {
		if (room.BoxLockedBy == 0 || room.BoxLockedBy == actorID) && current.HeldPower == "" {
			power := owner.Placements.Box.Power
			if power == "" {
				// パワーは設置時ではなく取得時に抽選する
				power = Powers[randGen.Intn(len(Powers))]
			}
			current.HeldPower = power
			room.BoxLockedBy = actorID
		}
	}

	won := current.Pos == GoalCell
	if won {
		// 勝利でゲーム終了。手番は進めない
		room.Status = PhaseFinished
		room.TurnIndex = turnIndex
	} else {
		room.TurnIndex = (turnIndex + 1) % len(room.Players)
	}

	room.LastRoll = roll
	room.LastActor = actorID
	room.Anim = &models.Anim{
		ActorID: actorID,
		Path:    path,
		Start:   now.UnixMilli(),
	}

	return &RollResult{Roll: roll, Path: path, Note: note, Won: won}, nil
}

func boxOwnerAt(room *models.Room, cell int) *models.Player {
	for i := range room.Players {
		box := room.Players[i].Placements.Box
		if box != nil && box.Cell == cell {
			return &room.Players[i]
		}
	}
	return nil
}
