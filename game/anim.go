package game

import (
	"time"

	"slserver/models"
)

// animの期限切れはスケジューラではなく読み取り時に遅延評価する。
// パス長に応じた期限に加え、クリアし損ねたクライアントからの復旧用に
// 絶対上限を設ける（正しさではなく生存性のための保険）。
const animHardExpiry = 5 * time.Second
const animBuffer = 100 * time.Millisecond

// AnimExpired はアニメーションが期限切れかどうかを返す。
// 期限切れのanimはどのクライアントが何度クリアしても冪等。
func AnimExpired(anim *models.Anim, now time.Time) bool {
	if anim == nil {
		return true
	}
	elapsed := now.Sub(time.UnixMilli(anim.Start))
	done := time.Duration(len(anim.Path))*StepMS + animBuffer
	return elapsed > done || elapsed > animHardExpiry
}

// ClearAnim はアニメーションを外す。進行中でも明示要求（アニメ再生完了の通知）なら
// 無条件にクリアし、そうでなければ期限切れの場合だけクリアする。
func ClearAnim(room *models.Room, now time.Time, force bool) {
	if room.Anim == nil {
		return
	}
	if force || AnimExpired(room.Anim, now) {
		room.Anim = nil
	}
}
