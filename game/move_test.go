package game

import (
	"testing"
	"time"

	"slserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMovePath_PlainMove(t *testing.T) {
	// ハザードなし：p+r<=100 なら path は p から p+r まで1マスずつ、長さ r+1
	for _, tc := range []struct {
		pos, roll int
	}{
		{1, 1}, {1, 6}, {50, 3}, {94, 6}, {99, 1},
	} {
		room := testRoom(PhasePlaying, testPlayer(1, "A", tc.pos), testPlayer(2, "B", 1))
		path, note := ComputeMovePath(room, &room.Players[0], tc.roll)

		assert.Len(t, path, tc.roll+1)
		assert.Equal(t, tc.pos, path[0])
		assert.Equal(t, tc.pos+tc.roll, path[len(path)-1])
		assert.Empty(t, note)
	}
}

func TestComputeMovePath_OvershootCancelsMove(t *testing.T) {
	room := testRoom(PhasePlaying, testPlayer(1, "A", 98), testPlayer(2, "B", 1))
	path, note := ComputeMovePath(room, &room.Players[0], 5)

	assert.Equal(t, []int{98}, path)
	assert.Contains(t, note, "needs exactly 2 to win")
}

func TestComputeMovePath_LadderAtLanding(t *testing.T) {
	// 仕様シナリオ：pos1のAが6を出し、7→20のハシゴにちょうど乗る
	a := testPlayer(1, "A", 1)
	a.Placements.Ladders = []models.Link{{ID: "l1", From: 7, To: 20}}
	room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

	path, _ := ComputeMovePath(room, &room.Players[0], 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 20}, path)
}

func TestComputeMovePath_SnakeWithoutShield(t *testing.T) {
	b := testPlayer(2, "B", 1)
	b.Placements.Snakes = []models.Link{{ID: "s1", From: 10, To: 3}}
	room := testRoom(PhasePlaying, testPlayer(1, "A", 7), b)

	path, _ := ComputeMovePath(room, &room.Players[0], 3)
	assert.Equal(t, []int{7, 8, 9, 10, 3}, path)
}

func TestComputeMovePath_ShieldNegatesSnakeAndIsConsumed(t *testing.T) {
	b := testPlayer(2, "B", 1)
	b.Placements.Snakes = []models.Link{{ID: "s1", From: 10, To: 3}}
	a := testPlayer(1, "A", 7)
	a.Shield = true
	room := testRoom(PhasePlaying, a, b)

	path, _ := ComputeMovePath(room, &room.Players[0], 3)
	assert.Equal(t, []int{7, 8, 9, 10}, path, "シールド中はヘビに落ちない")
	assert.False(t, room.Players[0].Shield, "ヘビを実際に無効化したのでシールドは消費される")
}

func TestComputeMovePath_ShieldKeptWhenNoSnake(t *testing.T) {
	a := testPlayer(1, "A", 1)
	a.Shield = true
	room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

	ComputeMovePath(room, &room.Players[0], 3)
	assert.True(t, room.Players[0].Shield, "ヘビに遭遇しなければシールドは残る")
}

func TestComputeMovePath_LadderThenSnakeChain(t *testing.T) {
	// ハシゴの行き先でヘビを1回だけ判定する
	a := testPlayer(1, "A", 1)
	a.Placements.Ladders = []models.Link{{ID: "l1", From: 5, To: 30}}
	b := testPlayer(2, "B", 1)
	b.Placements.Snakes = []models.Link{{ID: "s1", From: 30, To: 12}}
	room := testRoom(PhasePlaying, a, b)

	path, _ := ComputeMovePath(room, &room.Players[0], 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 30, 12}, path)
}

func TestComputeMovePath_NoChainBeyondSingleLookup(t *testing.T) {
	// ヘビの行き先にさらにヘビやハシゴがあっても連鎖しない
	a := testPlayer(1, "A", 1)
	a.Placements.Snakes = []models.Link{{ID: "s1", From: 5, To: 3}}
	b := testPlayer(2, "B", 1)
	b.Placements.Snakes = []models.Link{{ID: "s2", From: 3, To: 2}}
	b.Placements.Ladders = []models.Link{{ID: "l1", From: 3, To: 50}}
	room := testRoom(PhasePlaying, a, b)

	path, _ := ComputeMovePath(room, &room.Players[0], 4)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 3}, path)
}

func TestApplyRoll_Preconditions(t *testing.T) {
	t.Run("not playing", func(t *testing.T) {
		room := testRoom(PhaseLobby, testPlayer(1, "A", 1), testPlayer(2, "B", 1))
		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		var pre *PreconditionError
		require.ErrorAs(t, err, &pre)
	})

	t.Run("not your turn names expected player", func(t *testing.T) {
		room := testRoom(PhasePlaying, testPlayer(1, "Alice", 1), testPlayer(2, "Bob", 1))
		_, err := ApplyRoll(room, 2, testRand(), time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Not your turn")
		assert.Contains(t, err.Error(), "Alice")
	})

	t.Run("animation in progress", func(t *testing.T) {
		room := testRoom(PhasePlaying, testPlayer(1, "A", 1), testPlayer(2, "B", 1))
		now := time.Now()
		room.Anim = &models.Anim{ActorID: 2, Path: []int{1, 2, 3, 4, 5, 6}, Start: now.UnixMilli()}
		_, err := ApplyRoll(room, 1, testRand(), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Animation in progress")
	})

	t.Run("expired animation is cleared and roll proceeds", func(t *testing.T) {
		room := testRoom(PhasePlaying, testPlayer(1, "A", 1), testPlayer(2, "B", 1))
		now := time.Now()
		room.Anim = &models.Anim{ActorID: 2, Path: []int{1, 2}, Start: now.Add(-10 * time.Second).UnixMilli()}
		result, err := ApplyRoll(room, 1, testRand(), now)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Path[0])
	})
}

func TestApplyRoll_AdvancesTurnAndRecordsRoll(t *testing.T) {
	room := testRoom(PhasePlaying, testPlayer(1, "A", 1), testPlayer(2, "B", 1))
	now := time.Now()

	result, err := ApplyRoll(room, 1, testRand(), now)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.Roll, 1)
	assert.LessOrEqual(t, result.Roll, 6)
	assert.Equal(t, result.Roll, room.LastRoll)
	assert.Equal(t, uint(1), room.LastActor)
	assert.Equal(t, 1, room.TurnIndex, "勝利していないので手番はBへ")
	require.NotNil(t, room.Anim)
	assert.Equal(t, uint(1), room.Anim.ActorID)
	assert.Equal(t, result.Path, room.Anim.Path)
	assert.Equal(t, now.UnixMilli(), room.Anim.Start)
}

func TestApplyRoll_TempEffects(t *testing.T) {
	t.Run("boost adds 2 capped at 6 and is consumed", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.TempBoost = true
		room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

		result, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Roll, 3)
		assert.LessOrEqual(t, result.Roll, 6)
		assert.False(t, room.Players[0].TempBoost)
	})

	t.Run("reroll is consumed", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.TempReroll = true
		room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.False(t, room.Players[0].TempReroll)
	})

	t.Run("mini leap bumps position before the roll", func(t *testing.T) {
		a := testPlayer(1, "A", 1)
		a.TempMiniLeap = true
		room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

		result, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, 7, result.Path[0])
		assert.False(t, room.Players[0].TempMiniLeap)
	})

	t.Run("mini leap win before roll applies", func(t *testing.T) {
		a := testPlayer(1, "A", 95)
		a.TempMiniLeap = true
		room := testRoom(PhasePlaying, a, testPlayer(2, "B", 1))

		result, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, GoalCell, room.Players[0].Pos)
		assert.Equal(t, PhaseFinished, room.Status)
		assert.Equal(t, 0, room.TurnIndex, "勝利時は手番が進まない")
		assert.False(t, room.Players[0].TempMiniLeap)
	})
}

// どの出目でも必ずボックスに着地するよう、到達可能マス全部にボックスを置く
func roomWithBoxesEverywhere(actor models.Player, power string) *models.Room {
	players := []models.Player{actor}
	for i := 0; i < 6; i++ {
		owner := testPlayer(uint(10+i), "Owner", 1)
		owner.Placements.Box = &models.MysteryBox{Cell: actor.Pos + 1 + i, Power: power}
		players = append(players, owner)
	}
	return testRoom(PhasePlaying, players...)
}

func TestApplyRoll_BoxPickup(t *testing.T) {
	t.Run("grants power and locks the box", func(t *testing.T) {
		room := roomWithBoxesEverywhere(testPlayer(1, "A", 1), PowerShield)

		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, PowerShield, room.Players[0].HeldPower)
		assert.Equal(t, uint(1), room.BoxLockedBy)
	})

	t.Run("locked by someone else grants nothing", func(t *testing.T) {
		room := roomWithBoxesEverywhere(testPlayer(1, "A", 1), PowerShield)
		room.BoxLockedBy = 99

		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.Empty(t, room.Players[0].HeldPower)
		assert.Equal(t, uint(99), room.BoxLockedBy)
	})

	t.Run("full hand grants nothing", func(t *testing.T) {
		actor := testPlayer(1, "A", 1)
		actor.HeldPower = PowerBoost
		room := roomWithBoxesEverywhere(actor, PowerShield)

		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, PowerBoost, room.Players[0].HeldPower)
		assert.Zero(t, room.BoxLockedBy)
	})

	t.Run("unset box power is drawn at pickup time", func(t *testing.T) {
		room := roomWithBoxesEverywhere(testPlayer(1, "A", 1), "")

		_, err := ApplyRoll(room, 1, testRand(), time.Now())
		require.NoError(t, err)
		assert.True(t, IsPower(room.Players[0].HeldPower))
	})
}

func TestApplyRoll_WinEndsGame(t *testing.T) {
	// pos99からの出目はどれも「1で勝ち」か「超過で動かない」のどちらか
	room := testRoom(PhasePlaying, testPlayer(1, "A", 99), testPlayer(2, "B", 1))

	result, err := ApplyRoll(room, 1, testRand(), time.Now())
	require.NoError(t, err)

	if result.Won {
		assert.Equal(t, GoalCell, room.Players[0].Pos)
		assert.Equal(t, PhaseFinished, room.Status)
		assert.Equal(t, 0, room.TurnIndex)
	} else {
		assert.Equal(t, 99, room.Players[0].Pos)
		assert.Equal(t, PhasePlaying, room.Status)
		assert.Equal(t, 1, room.TurnIndex)
		assert.Contains(t, result.Note, "needs exactly 1 to win")
	}
}

func TestApplyRoll_NoRollsAfterFinish(t *testing.T) {
	room := testRoom(PhaseFinished, testPlayer(1, "A", 100), testPlayer(2, "B", 1))
	_, err := ApplyRoll(room, 2, testRand(), time.Now())
	require.Error(t, err)
}
