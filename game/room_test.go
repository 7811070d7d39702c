package game

import (
	"testing"
	"time"

	"slserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoomState(t *testing.T) {
	now := time.Now()
	room := DefaultRoomState(7, now)

	assert.Equal(t, PhaseLobby, room.Status)
	assert.Equal(t, uint(7), room.HostID)
	assert.Equal(t, 0, room.TurnIndex)
	assert.Equal(t, now.UnixMilli(), room.CreatedAt)
	assert.Empty(t, room.Players)
	assert.Nil(t, room.Anim)
}

func TestChooseUniqueColor(t *testing.T) {
	players := []models.Player{
		{ID: 1, Color: ColorPalette[0]},
		{ID: 2, Color: ColorPalette[1]},
	}

	t.Run("preferred color wins when free", func(t *testing.T) {
		assert.Equal(t, ColorPalette[3], ChooseUniqueColor(players, ColorPalette[3], testRand()))
	})

	t.Run("case-insensitive match falls back to the palette", func(t *testing.T) {
		taken := []models.Player{{ID: 1, Color: "#FF6B6B"}} // パレット先頭の大文字表記
		got := ChooseUniqueColor(taken, "#ff6b6b", testRand())
		assert.Equal(t, ColorPalette[1], got)
	})

	t.Run("empty preference takes the first free color", func(t *testing.T) {
		assert.Equal(t, ColorPalette[2], ChooseUniqueColor(players, "", testRand()))
	})

	t.Run("exhausted palette allows a duplicate", func(t *testing.T) {
		var full []models.Player
		for i, color := range ColorPalette {
			full = append(full, models.Player{ID: uint(i + 1), Color: color})
		}
		got := ChooseUniqueColor(full, "", testRand())
		assert.Contains(t, ColorPalette, got)
	})
}

func TestAggregatePlacements(t *testing.T) {
	a := testPlayer(1, "A", 1)
	a.Placements.Ladders = []models.Link{{ID: "l1", From: 5, To: 20}}
	b := testPlayer(2, "B", 1)
	b.Placements.Ladders = []models.Link{{ID: "l2", From: 8, To: 25}}
	b.Placements.Snakes = []models.Link{{ID: "s1", From: 30, To: 10}}
	room := testRoom(PhasePlaying, a, b)

	agg := AggregatePlacements(room)
	assert.Len(t, agg.Ladders, 2)
	assert.Len(t, agg.Snakes, 1)
}

func TestNormalizeTurnIndex(t *testing.T) {
	assert.Equal(t, 0, NormalizeTurnIndex(3, 3))
	assert.Equal(t, 1, NormalizeTurnIndex(4, 3))
	assert.Equal(t, 2, NormalizeTurnIndex(-1, 3))
	assert.Equal(t, 0, NormalizeTurnIndex(5, 0), "空ルームでも落ちない")
}

func TestFindPlayer(t *testing.T) {
	room := testRoom(PhaseLobby, testPlayer(1, "A", 1), testPlayer(2, "B", 1))

	p, i := FindPlayer(room, 2)
	require.NotNil(t, p)
	assert.Equal(t, "B", p.Name)
	assert.Equal(t, 1, i)

	p.Pos = 42
	assert.Equal(t, 42, room.Players[1].Pos, "ルーム内の実体を指すポインタを返す")

	missing, j := FindPlayer(room, 99)
	assert.Nil(t, missing)
	assert.Equal(t, -1, j)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-5, 1, 100))
	assert.Equal(t, 100, Clamp(120, 1, 100))
	assert.Equal(t, 42, Clamp(42, 1, 100))
}

func TestRandomName(t *testing.T) {
	name := RandomName(testRand())
	assert.NotEmpty(t, name)
	assert.Contains(t, name, " ")
}
