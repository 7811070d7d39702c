package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"slserver/game"
	"slserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RoomStore はRedis上のルームドキュメントに対するトランザクショナルなストア。
// 1ルームコードにつき1つのJSON値を持ち、更新はWATCH/MULTIによる
// 楽観的トランザクション（読み取り→純粋な計算→compare-and-set、衝突時は再試行）で行う。
// 渡されるミューテータは再試行のたびに呼び直されるため純粋でなければならない。
type RoomStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

const (
	keyPrefix     = "room:"
	eventSuffix   = ":events"
	roomTTL       = 24 * time.Hour // 放置ルームはRedis側でも消える。クーロンの削除はこの保険
	maxTxRetries  = 20
	deletedSignal = "null" // 購読者へのルーム削除通知
)

// ErrStoreUnavailable はRedisへの接続・転送の失敗、またはリトライ上限到達。
var ErrStoreUnavailable = errors.New("store unavailable")

func NewRoomStore(rdb *redis.Client, logger *zap.Logger) *RoomStore {
	return &RoomStore{rdb: rdb, logger: logger}
}

func roomKey(code string) string     { return keyPrefix + code }
func roomChannel(code string) string { return keyPrefix + code + eventSuffix }

// Get はルームドキュメントを読み出す。存在しなければgame.ErrRoomNotFound。
// 旧形式の設置物はデシリアライズ時に一度だけ正規化される（models.Placements参照）。
func (s *RoomStore) Get(ctx context.Context, code string) (*models.Room, error) {
	data, err := s.rdb.Get(ctx, roomKey(code)).Bytes()
	if err == redis.Nil {
		return nil, game.ErrRoomNotFound
	}
	if err != nil {
		s.logger.Error("Failed to read room document", zap.String("code", code), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	room := &models.Room{}
	if err := json.Unmarshal(data, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Create は新規ルームドキュメントを書き込む。コードが使用中ならエラー。
func (s *RoomStore) Create(ctx context.Context, code string, room *models.Room) error {
	payload, err := json.Marshal(room)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, roomKey(code), payload, roomTTL).Result()
	if err != nil {
		s.logger.Error("Failed to create room document", zap.String("code", code), zap.Error(err))
		return ErrStoreUnavailable
	}
	if !ok {
		return &game.ValidationError{Msg: "Room code already in use"}
	}
	s.publish(ctx, code, payload)
	return nil
}

// Transact はルームドキュメントへの楽観的トランザクション。
// fnは現在のドキュメントを受け取り、次のドキュメント（同じポインタの書き換えでも
// 差し替えでもよい）を返す。fnがエラーを返せば全体が中断され何も書き込まれない。
// 書き込み競合（WATCH失敗）はここで透過的に再試行され、呼び出し側には見えない。
func (s *RoomStore) Transact(ctx context.Context, code string, fn func(*models.Room) (*models.Room, error)) (*models.Room, error) {
	key := roomKey(code)
	var committed *models.Room
	var payload []byte

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return game.ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		room := &models.Room{}
		if err := json.Unmarshal(data, room); err != nil {
			return err
		}

		next, err := fn(room)
		if err != nil {
			return err
		}

		payload, err = json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, roomTTL)
			return nil
		})
		if err == nil {
			committed = next
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			s.publish(ctx, code, payload)
			return committed, nil
		}
		if err == redis.TxFailedErr {
			// 競合。読み直して最初からやり直す
			continue
		}
		return nil, err
	}

	s.logger.Error("Room transaction retries exhausted", zap.String("code", code))
	return nil, ErrStoreUnavailable
}

// Delete はルームドキュメントを削除し、購読者に削除を通知する。
func (s *RoomStore) Delete(ctx context.Context, code string) error {
	if err := s.rdb.Del(ctx, roomKey(code)).Err(); err != nil {
		s.logger.Error("Failed to delete room document", zap.String("code", code), zap.Error(err))
		return ErrStoreUnavailable
	}
	s.publish(ctx, code, []byte(deletedSignal))
	return nil
}

// Subscribe はルームの変更通知を購読する。コミット済みの新しいドキュメントごとに
// onChangeが呼ばれ、ルーム削除時はnilが渡される。戻り値は購読解除関数。
func (s *RoomStore) Subscribe(ctx context.Context, code string, onChange func(*models.Room)) func() {
	pubsub := s.rdb.Subscribe(ctx, roomChannel(code))
	go func() {
		for msg := range pubsub.Channel() {
			if msg.Payload == deletedSignal {
				onChange(nil)
				continue
			}
			room := &models.Room{}
			if err := json.Unmarshal([]byte(msg.Payload), room); err != nil {
				s.logger.Error("Failed to decode room event", zap.String("code", code), zap.Error(err))
				continue
			}
			onChange(room)
		}
	}()
	return func() {
		if err := pubsub.Close(); err != nil {
			s.logger.Error("Failed to close room subscription", zap.String("code", code), zap.Error(err))
		}
	}
}

func (s *RoomStore) publish(ctx context.Context, code string, payload []byte) {
	if err := s.rdb.Publish(ctx, roomChannel(code), payload).Err(); err != nil {
		// 通知に失敗してもコミット自体は成立している。購読側はTTL内の再読込で追い付く
		s.logger.Error("Failed to publish room event", zap.String("code", code), zap.Error(err))
	}
}
