package screens

import (
	"math/rand"
	"net/http"
	"time"

	"slserver/game"
	"slserver/store"
)

func createLocalRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}

// statusForError は型付きゲームエラーをHTTPステータスに対応付ける。
func statusForError(err error) (int, string) {
	switch e := err.(type) {
	case *game.ValidationError:
		return http.StatusBadRequest, e.Msg
	case *game.PreconditionError:
		switch err {
		case game.ErrRoomNotFound:
			return http.StatusNotFound, e.Msg
		case game.ErrRoomFull:
			return http.StatusConflict, e.Msg
		case game.ErrNotHost:
			return http.StatusForbidden, e.Msg
		}
		return http.StatusConflict, e.Msg
	}
	if err == store.ErrStoreUnavailable {
		return http.StatusServiceUnavailable, "Store unavailable"
	}
	return http.StatusInternalServerError, "Internal error"
}
