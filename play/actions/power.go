package actions

import (
	"context"
	"time"

	"slserver/game"
	"slserver/models"
	"slserver/store"

	"go.uber.org/zap"
)

// handleUsePower は所持パワーの発動。所持と要求が食い違う場合は
// 古いUIからの操作とみなして黙って無視する（エラーにしない）。
func handleUsePower(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	power, ok := stringField(msg, "power")
	if !ok {
		sendErrorMessage(client, "Invalid power")
		return
	}

	applied := false
	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		applied = game.UseHeldPower(room, client.UserID, power, time.Now())
		return room, nil
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
		return
	}
	if applied {
		logger.Info("Power used",
			zap.Uint("UserID", client.UserID), zap.String("RoomCode", client.RoomCode), zap.String("power", power))
	}
}

func handleReaction(ctx context.Context, client *models.Client, msg map[string]interface{}, st *store.RoomStore, logger *zap.Logger) {
	emoji, ok := stringField(msg, "emoji")
	if !ok || emoji == "" {
		sendErrorMessage(client, "Invalid reaction")
		return
	}

	_, err := st.Transact(ctx, client.RoomCode, func(room *models.Room) (*models.Room, error) {
		return room, game.SendReaction(room, client.UserID, emoji, time.Now())
	})
	if err != nil {
		sendErrorMessage(client, gameErrorText(err))
	}
}
