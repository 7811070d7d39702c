package actions

import (
	"context"

	"slserver/game"
	"slserver/models"
	"slserver/store"

	"go.uber.org/zap"
)

// handlePlaceLadderSnake は自分のハシゴ・ヘビの設置。
// 方向の検証（ハシゴは上り、ヘビは下り）は設置エンジンの契約上、ここで済ませる。
func handlePlaceLadderSnake(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	mode, okMode := stringField(msg, "mode")
	from, okFrom := intField(msg, "from")
	to, okTo := intField(msg, "to")
	if !okMode || !okFrom || !okTo {
		sendErrorMessage(client, "Invalid placement parameters")
		return
	}

	if from < game.StartCell || from > game.GoalCell || to < game.StartCell || to > game.GoalCell {
		sendErrorMessage(client, "Cell out of range")
		return
	}
	switch mode {
	case game.ModeLadder:
		if to <= from {
			sendErrorMessage(client, "Ladder must go up (higher number)")
			return
		}
	case game.ModeSnake:
		if to >= from {
			sendErrorMessage(client, "Snake must go down (lower number)")
			return
		}
	default:
		sendErrorMessage(client, "Unknown placement mode")
		return
	}

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.CommitLadderSnake(room, client.UserID, mode, from, to)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
	logger.Info("Placement committed",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode),
		zap.String("mode", mode), zap.Int("from", from), zap.Int("to", to))
}

// handlePlaceBox は自分のミステリーボックスの設置（常に上書き）。
// powerを省略すると取得時にランダムで決まるボックスになる。
func handlePlaceBox(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	cell, okCell := intField(msg, "cell")
	if !okCell {
		sendErrorMessage(client, "Invalid box cell")
		return
	}
	power, _ := stringField(msg, "power")

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.CommitBox(room, client.UserID, cell, power)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
	logger.Info("Box committed",
		zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode), zap.Int("cell", cell))
}

func handleDeletePlacement(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	kind, okKind := stringField(msg, "kind")
	itemID, _ := stringField(msg, "id") // boxの削除にIDは不要
	if !okKind {
		sendErrorMessage(client, "Invalid placement kind")
		return
	}

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.DeletePlacement(room, client.UserID, kind, itemID)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
}

func handleToggleReady(ctx context.Context, client *models.Client, st *store.RoomStore, logger *zap.Logger) {
	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.ToggleReady(room, client.UserID)
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
	}
}
