package game

import (
	"math/rand"
	"time"

	"slserver/models"
)

// テスト用のルーム・プレイヤー生成ヘルパー

func testPlayer(id uint, name string, pos int) models.Player {
	p := NewPlayer(id, name, "#ff6b6b")
	p.Pos = pos
	return p
}

func testRoom(status string, players ...models.Player) *models.Room {
	room := DefaultRoomState(1, time.Now())
	room.Status = status
	room.Players = append(room.Players, players...)
	return room
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
