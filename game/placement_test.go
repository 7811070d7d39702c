package game

import (
	"testing"

	"slserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitLadderSnake(t *testing.T) {
	t.Run("adds a ladder with a generated id", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))

		require.NoError(t, CommitLadderSnake(room, 1, ModeLadder, 5, 20))

		ladders := room.Players[0].Placements.Ladders
		require.Len(t, ladders, 1)
		assert.Equal(t, 5, ladders[0].From)
		assert.Equal(t, 20, ladders[0].To)
		assert.NotEmpty(t, ladders[0].ID)
	})

	t.Run("enforces the per-player limits", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))

		require.NoError(t, CommitLadderSnake(room, 1, ModeLadder, 5, 20))
		require.NoError(t, CommitLadderSnake(room, 1, ModeLadder, 30, 44))
		err := CommitLadderSnake(room, 1, ModeLadder, 50, 60)
		var val *ValidationError
		require.ErrorAs(t, err, &val)
		assert.Len(t, room.Players[0].Placements.Ladders, 2)

		require.NoError(t, CommitLadderSnake(room, 1, ModeSnake, 20, 5))
		require.NoError(t, CommitLadderSnake(room, 1, ModeSnake, 44, 30))
		require.ErrorAs(t, CommitLadderSnake(room, 1, ModeSnake, 60, 50), &val)
	})

	t.Run("rejects outside the placing phase", func(t *testing.T) {
		room := testRoom(PhasePlaying, testPlayer(1, "A", 1))
		var pre *PreconditionError
		require.ErrorAs(t, CommitLadderSnake(room, 1, ModeLadder, 5, 20), &pre)
	})

	t.Run("rejects while ready", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.Ready = true
		room := testRoom(PhasePlacing, a)
		var pre *PreconditionError
		require.ErrorAs(t, CommitLadderSnake(room, 1, ModeLadder, 5, 20), &pre)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))
		var val *ValidationError
		require.ErrorAs(t, CommitLadderSnake(room, 1, "bridge", 5, 20), &val)
	})

	t.Run("rejects a non-member", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))
		var pre *PreconditionError
		require.ErrorAs(t, CommitLadderSnake(room, 99, ModeLadder, 5, 20), &pre)
	})
}

func TestCommitBox(t *testing.T) {
	t.Run("places and overwrites the single box", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))

		require.NoError(t, CommitBox(room, 1, 42, PowerShield))
		require.NoError(t, CommitBox(room, 1, 77, ""))

		box := room.Players[0].Placements.Box
		require.NotNil(t, box)
		assert.Equal(t, 77, box.Cell)
		assert.Empty(t, box.Power, "パワー未指定は取得時に抽選")
	})

	t.Run("validates cell range and power name", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))
		var val *ValidationError
		require.ErrorAs(t, CommitBox(room, 1, 0, ""), &val)
		require.ErrorAs(t, CommitBox(room, 1, 101, ""), &val)
		require.ErrorAs(t, CommitBox(room, 1, 42, "MEGA_JUMP"), &val)
	})
}

func TestDeletePlacement(t *testing.T) {
	t.Run("removes only the named item from own placements", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.Placements.Ladders = []models.Link{{ID: "l1", From: 5, To: 20}, {ID: "l2", From: 30, To: 44}}
		a.Placements.Box = &models.MysteryBox{Cell: 42}
		room := testRoom(PhasePlacing, a)

		require.NoError(t, DeletePlacement(room, 1, ModeLadder, "l1"))
		require.Len(t, room.Players[0].Placements.Ladders, 1)
		assert.Equal(t, "l2", room.Players[0].Placements.Ladders[0].ID)

		require.NoError(t, DeletePlacement(room, 1, ModeBox, ""))
		assert.Nil(t, room.Players[0].Placements.Box)
	})

	t.Run("foreign item id is a harmless no-op", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.Placements.Ladders = []models.Link{{ID: "l1", From: 5, To: 20}}
		b := testPlayer(2, "B", 1)
		b.Placements.Ladders = []models.Link{{ID: "l2", From: 8, To: 25}}
		room := testRoom(PhasePlacing, a, b)

		require.NoError(t, DeletePlacement(room, 1, ModeLadder, "l2"))
		assert.Len(t, room.Players[0].Placements.Ladders, 1)
		assert.Len(t, room.Players[1].Placements.Ladders, 1, "他人の設置物は消えない")
	})

	t.Run("unknown kind", func(t *testing.T) {
		room := testRoom(PhasePlacing, testPlayer(1, "A", 1))
		var val *ValidationError
		require.ErrorAs(t, DeletePlacement(room, 1, "portal", "x"), &val)
	})
}

func TestToggleReady(t *testing.T) {
	room := testRoom(PhasePlacing, testPlayer(1, "A", 1), testPlayer(2, "B", 1))

	require.NoError(t, ToggleReady(room, 1))
	assert.True(t, room.Players[0].Ready)
	assert.False(t, room.Players[1].Ready, "他プレイヤーには影響しない")

	require.NoError(t, ToggleReady(room, 1))
	assert.False(t, room.Players[0].Ready)

	room.Status = PhaseLobby
	var pre *PreconditionError
	require.ErrorAs(t, ToggleReady(room, 1), &pre)
}
