package game

import (
	"time"

	"slserver/models"
)

// ルームライフサイクル。lobby → placing → playing → finished の一方向で、
// 例外はホストによるリセット（hostIdだけ残してlobbyへ戻る）のみ。

// AddPlayer はプレイヤーを末尾に追加する（参加順＝手番順）。
// 既に参加済みなら何もしない。満室ならErrRoomFull。
func AddPlayer(room *models.Room, player models.Player) error {
	if existing, _ := FindPlayer(room, player.ID); existing != nil {
		return nil
	}
	if len(room.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	room.Players = append(room.Players, player)
	return nil
}

// RemovePlayer はプレイヤーを取り除く。TurnIndexは書き換えず、
// 読み手側のNormalizeTurnIndexでずれを吸収する。
func RemovePlayer(room *models.Room, playerID uint) {
	kept := room.Players[:0]
	for _, p := range room.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	room.Players = kept
}

// ChangePhase はホスト専用のフェーズ変更。設置フェーズ開始には2人以上必要。
func ChangePhase(room *models.Room, actorID uint, phase string) error {
	if room.HostID != actorID {
		return ErrNotHost
	}
	switch phase {
	case PhaseLobby, PhasePlacing, PhasePlaying, PhaseFinished:
	default:
		return &ValidationError{Msg: "Unknown phase: " + phase}
	}
	if phase == PhasePlacing && len(room.Players) < 2 {
		return &PreconditionError{Msg: "Need 2+ players"}
	}
	room.Status = phase
	return nil
}

// PlacementComplete はプレイヤーの設置がちょうど規定数（ハシゴ2・ヘビ2・ボックス1）か返す。
func PlacementComplete(p *models.Player) bool {
	return len(p.Placements.Ladders) == MaxLaddersPerPlayer &&
		len(p.Placements.Snakes) == MaxSnakesPerPlayer &&
		p.Placements.Box != nil
}

// AllReady は全員がready済みかつ設置完了かを返す。2人未満ではfalse。
func AllReady(room *models.Room) bool {
	if len(room.Players) < 2 {
		return false
	}
	for i := range room.Players {
		p := &room.Players[i]
		if !p.Ready || !PlacementComplete(p) {
			return false
		}
	}
	return true
}

// StartGame はホスト専用のゲーム開始。全員のready・設置完了を検証し、
// 手番・アニメーション・ボックスロックを初期化してplayingへ移行する。
func StartGame(room *models.Room, actorID uint) error {
	if room.HostID != actorID {
		return ErrNotHost
	}
	if !AllReady(room) {
		return &PreconditionError{Msg: "All players must finish placement and be ready"}
	}
	room.Status = PhasePlaying
	room.TurnIndex = 0
	room.Anim = nil
	room.BoxLockedBy = 0
	return nil
}

// ResetRoom はホスト専用のリセット。hostIdだけ引き継いだ初期lobby状態を返す。
func ResetRoom(room *models.Room, actorID uint, now time.Time) (*models.Room, error) {
	if room.HostID != actorID {
		return nil, ErrNotHost
	}
	return DefaultRoomState(room.HostID, now), nil
}
