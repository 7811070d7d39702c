package game

import (
	"fmt"
	"time"

	"slserver/models"
)

// UseHeldPower は所持パワーを発動する。戻り値は実際に発動したかどうか。
// 所持パワーと要求が一致しない場合は古いUI状態からの競合とみなし、
// エラーではなく無言のno-opにする（楽観的リトライと多重クリックに安全）。
func UseHeldPower(room *models.Room, actorID uint, power string, now time.Time) bool {
	player, playerIndex := FindPlayer(room, actorID)
	if player == nil {
		return false
	}
	if player.HeldPower != power {
		return false
	}

	var text string
	switch power {
	case PowerBoost:
		player.TempBoost = true
		text = fmt.Sprintf("%s used BOOST!", player.Name)
	case PowerReroll:
		player.TempReroll = true
		text = fmt.Sprintf("%s used REROLL!", player.Name)
	case PowerMiniLeap:
		player.TempMiniLeap = true
		text = fmt.Sprintf("%s used MINI_LEAP!", player.Name)
	case PowerShield:
		player.Shield = true
		text = fmt.Sprintf("%s used SHIELD!", player.Name)
	case PowerSwapLeader:
		// 自分より厳密に前にいる中で最前のプレイヤーと位置を交換する
		leaderIndex := -1
		leaderPos := player.Pos
		for i := range room.Players {
			if room.Players[i].Pos > leaderPos {
				leaderPos = room.Players[i].Pos
				leaderIndex = i
			}
		}
		if leaderIndex != -1 && leaderIndex != playerIndex {
			leader := &room.Players[leaderIndex]
			player.Pos, leader.Pos = leader.Pos, player.Pos
			text = fmt.Sprintf("%s swapped with %s!", player.Name, leader.Name)
		} else {
			text = fmt.Sprintf("%s is already the leader!", player.Name)
		}
	default:
		return false
	}

	// パワーを消費し、ボックスのロックを誰が握っていても解除する
	player.HeldPower = ""
	room.BoxLockedBy = 0

	room.LastReaction = &models.Reaction{
		PlayerName: player.Name,
		Emoji:      "⚡",
		Timestamp:  now.UnixMilli(),
		Text:       text,
	}
	return true
}

// SendReaction は絵文字リアクションを記録する。ゲーム進行には影響しない一時イベント。
func SendReaction(room *models.Room, actorID uint, emoji string, now time.Time) error {
	player, _ := FindPlayer(room, actorID)
	if player == nil {
		return &PreconditionError{Msg: "Player not in room"}
	}
	room.LastReaction = &models.Reaction{
		PlayerName: player.Name,
		Emoji:      emoji,
		Timestamp:  now.UnixMilli(),
	}
	return nil
}
