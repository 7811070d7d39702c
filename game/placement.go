package game

import (
	"fmt"

	"github.com/google/uuid"

	"slserver/models"
)

// 設置エンジン。placingフェーズ中の自分の設置物だけを書き換える純粋なミューテータ群。
// 他プレイヤーのスロットには一切触れないため、異なるプレイヤーの同時編集は
// 論理的には衝突しない（ストア層の楽観的リトライが直列化するだけ）。

func placingPlayer(room *models.Room, actorID uint) (*models.Player, error) {
	if room.Status != PhasePlacing {
		return nil, &PreconditionError{Msg: "Not in placement phase"}
	}
	player, _ := FindPlayer(room, actorID)
	if player == nil {
		return nil, &PreconditionError{Msg: "Player not in room"}
	}
	return player, nil
}

// CommitLadderSnake は自分のハシゴまたはヘビを1本追加する。
// 方向の妥当性（ハシゴは上り、ヘビは下り）は呼び出し側が事前に検証する契約。
func CommitLadderSnake(room *models.Room, actorID uint, mode string, from, to int) error {
	player, err := placingPlayer(room, actorID)
	if err != nil {
		return err
	}
	if player.Ready {
		return &PreconditionError{Msg: "Unready yourself to edit placements"}
	}

	link := models.Link{ID: uuid.NewString(), From: from, To: to}
	switch mode {
	case ModeLadder:
		if len(player.Placements.Ladders) >= MaxLaddersPerPlayer {
			return &ValidationError{Msg: fmt.Sprintf("You can only have %d ladders", MaxLaddersPerPlayer)}
		}
		player.Placements.Ladders = append(player.Placements.Ladders, link)
	case ModeSnake:
		if len(player.Placements.Snakes) >= MaxSnakesPerPlayer {
			return &ValidationError{Msg: fmt.Sprintf("You can only have %d snakes", MaxSnakesPerPlayer)}
		}
		player.Placements.Snakes = append(player.Placements.Snakes, link)
	default:
		return &ValidationError{Msg: "Unknown placement mode: " + mode}
	}
	return nil
}

// CommitBox は自分のミステリーボックスを設置する。1つしか持てないため常に上書き。
func CommitBox(room *models.Room, actorID uint, cell int, power string) error {
	player, err := placingPlayer(room, actorID)
	if err != nil {
		return err
	}
	if player.Ready {
		return &PreconditionError{Msg: "Unready yourself to edit placements"}
	}
	if cell < StartCell || cell > GoalCell {
		return &ValidationError{Msg: "Cell out of range"}
	}
	if power != "" && !IsPower(power) {
		return &ValidationError{Msg: "Unknown power: " + power}
	}
	player.Placements.Box = &models.MysteryBox{Cell: cell, Power: power}
	return nil
}

// DeletePlacement は自分の設置物を1つ削除する（kind=boxはクリア）。
// IDが他プレイヤーの設置物を指していても自分の持ち物しか走査しないため無害なno-opになる。
func DeletePlacement(room *models.Room, actorID uint, kind, itemID string) error {
	player, err := placingPlayer(room, actorID)
	if err != nil {
		return err
	}

	switch kind {
	case ModeLadder:
		player.Placements.Ladders = removeLink(player.Placements.Ladders, itemID)
	case ModeSnake:
		player.Placements.Snakes = removeLink(player.Placements.Snakes, itemID)
	case ModeBox:
		player.Placements.Box = nil
	default:
		return &ValidationError{Msg: "Unknown placement kind: " + kind}
	}
	return nil
}

func removeLink(links []models.Link, itemID string) []models.Link {
	kept := links[:0]
	for _, link := range links {
		if link.ID != itemID {
			kept = append(kept, link)
		}
	}
	return kept
}

// ToggleReady は自分のready状態を反転する。設置が完了しているかどうかは
// ここでは検証しない（ゲーム開始時にまとめて検証される）。
func ToggleReady(room *models.Room, actorID uint) error {
	player, err := placingPlayer(room, actorID)
	if err != nil {
		return err
	}
	player.Ready = !player.Ready
	return nil
}
