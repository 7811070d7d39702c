package game

import (
	"math/rand"
	"strings"
)

const roomCodeLength = 6
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ValidateRoomCode は入力を大文字化し英数字以外を除去した上で、
// ちょうど6文字ならそのコードを、そうでなければ空文字を返す。
func ValidateRoomCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	sanitized := b.String()
	if len(sanitized) != roomCodeLength {
		return ""
	}
	return sanitized
}

// GenerateRoomCode は6文字のランダムなルームコードを返す。
func GenerateRoomCode(randGen *rand.Rand) string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[randGen.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}
